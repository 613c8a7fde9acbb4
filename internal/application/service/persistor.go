package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"bookarb/internal/application/port"
	"bookarb/internal/domain/book"
	"bookarb/internal/domain/model"
)

// Persistor drains the persist gate and commits each round to the
// durable sinks: the opportunity text log and the relational summary
// store. Sink failures are logged and skipped; the pipeline never
// stops for them.
type Persistor struct {
	gate  *book.Gate
	round *Round
	oplog *OpportunityLog
	repo  port.SummaryRepository
	pub   port.OpportunityPublisher // optional

	now     func() time.Time
	scratch []model.Opportunity
}

func NewPersistor(gate *book.Gate, round *Round, oplog *OpportunityLog, repo port.SummaryRepository, pub port.OpportunityPublisher) *Persistor {
	return &Persistor{
		gate:  gate,
		round: round,
		oplog: oplog,
		repo:  repo,
		pub:   pub,
		now:   time.Now,
	}
}

// Run loops until ctx is cancelled, then flushes the log.
func (p *Persistor) Run(ctx context.Context) {
	for p.gate.Acquire(ctx) {
		p.runOnce(ctx)
	}
	if err := p.oplog.Flush(); err != nil {
		log.Error().Err(err).Msg("opportunity log flush on shutdown failed")
	}
}

func (p *Persistor) runOnce(ctx context.Context) {
	// local copy first; the detector owns the batch again once it
	// starts its next round
	p.scratch = append(p.scratch[:0], p.round.Batch...)
	latest := p.round.Latest

	for i := range p.scratch {
		if err := p.oplog.Append(&p.scratch[i]); err != nil {
			log.Error().Err(err).Msg("opportunity log write failed")
		}
	}
	if err := p.oplog.Flush(); err != nil {
		log.Error().Err(err).Msg("opportunity log flush failed")
	}

	summary := Summarize(&latest, p.now())
	if err := p.repo.InsertSummary(ctx, &summary); err != nil {
		log.Error().Err(err).Msg("summary insert failed, row skipped")
	}

	if p.pub != nil {
		for i := range p.scratch {
			if err := p.pub.PublishOpportunity(ctx, &p.scratch[i]); err != nil {
				log.Error().Err(err).Msg("opportunity publish failed")
			}
		}
	}
}
