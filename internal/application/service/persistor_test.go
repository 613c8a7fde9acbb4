package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bookarb/internal/domain/book"
	"bookarb/internal/domain/model"
)

type mockSummaryRepo struct {
	rows []model.BookSummary
	err  error
}

func (m *mockSummaryRepo) InsertSummary(ctx context.Context, s *model.BookSummary) error {
	if m.err != nil {
		return m.err
	}
	m.rows = append(m.rows, *s)
	return nil
}

func (m *mockSummaryRepo) Close() error { return nil }

type mockPublisher struct {
	published []model.Opportunity
}

func (m *mockPublisher) PublishOpportunity(ctx context.Context, o *model.Opportunity) error {
	m.published = append(m.published, *o)
	return nil
}

func newTestPersistor(t *testing.T, repo *mockSummaryRepo, pub *mockPublisher) (*Persistor, *Round, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "opportunities.txt")
	oplog, err := OpenOpportunityLog(path, "BTC")
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	t.Cleanup(func() { _ = oplog.Close() })

	gate := book.NewGate()
	round := &Round{}
	var p *Persistor
	if pub != nil {
		p = NewPersistor(gate, round, oplog, repo, pub)
	} else {
		p = NewPersistor(gate, round, oplog, repo, nil)
	}
	return p, round, path
}

func primeRound(round *Round) {
	round.Batch = []model.Opportunity{
		{BuyVenue: 0, SellVenue: 1, BuyLevels: 1, SellLevels: 1, BuyVWAP: 100, SellVWAP: 101, NetProfitPct: 1, OrderSize: 5},
	}
	round.Latest.AskPrice[0], round.Latest.AskQty[0] = 101, 3
	round.Latest.BidPrice[0], round.Latest.BidQty[0] = 100, 7
	round.Latest.AskSize, round.Latest.BidSize = 1, 1
	round.Latest.CapturedAt = time.Now()
}

func TestPersistorWritesLogAndSummary(t *testing.T) {
	repo := &mockSummaryRepo{}
	p, round, path := newTestPersistor(t, repo, nil)
	primeRound(round)

	p.runOnce(context.Background())

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), "Buy on OKX at 100.00") {
		t.Error("opportunity record not flushed to log")
	}

	if len(repo.rows) != 1 {
		t.Fatalf("got %d summary rows, want 1", len(repo.rows))
	}
	row := repo.rows[0]
	if row.TopAsk != 101 || row.TopBid != 100 || row.MidPrice != 100.5 || row.Spread != 1 {
		t.Errorf("summary mismatch: %+v", row)
	}
}

func TestPersistorContinuesOnInsertFailure(t *testing.T) {
	repo := &mockSummaryRepo{err: errors.New("db gone")}
	p, round, path := newTestPersistor(t, repo, nil)
	primeRound(round)

	p.runOnce(context.Background()) // must not panic or stall
	p.runOnce(context.Background())

	b, _ := os.ReadFile(path)
	if got := strings.Count(string(b), RecordRule); got != 2 {
		t.Errorf("log writes must survive repo failure, got %d records", got)
	}
}

func TestPersistorPublishesBatch(t *testing.T) {
	repo := &mockSummaryRepo{}
	pub := &mockPublisher{}
	p, round, _ := newTestPersistor(t, repo, pub)
	primeRound(round)

	p.runOnce(context.Background())

	if len(pub.published) != 1 {
		t.Fatalf("published %d opportunities, want 1", len(pub.published))
	}
	if pub.published[0].SellVenue != 1 {
		t.Errorf("published record mismatch: %+v", pub.published[0])
	}
}

func TestPersistorCopiesBatchBeforeWriting(t *testing.T) {
	repo := &mockSummaryRepo{}
	p, round, path := newTestPersistor(t, repo, nil)
	primeRound(round)

	p.runOnce(context.Background())

	// detector reclaims the batch for its next round; the persistor's
	// copy must already be durable
	round.Batch = round.Batch[:0]

	b, _ := os.ReadFile(path)
	if !strings.Contains(string(b), "Order Size: 5.000000 BTC") {
		t.Error("persisted record lost after detector reclaimed the batch")
	}
}
