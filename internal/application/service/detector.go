package service

import (
	"context"
	"time"

	"bookarb/internal/domain/book"
	"bookarb/internal/domain/model"
)

// Round is the detector's output cell: the opportunity batch and the
// book copy whose arrival triggered it. Written by the detector,
// read by the persistor, serialized by the persist gate.
type Round struct {
	Batch  []model.Opportunity
	Latest book.Snapshot
}

// Detector drains the ingest gate, snapshots the first fresh slot in
// venue order, runs the VWAP sweep over all cross-venue pairs and
// hands the resulting batch to the persistor. Single goroutine; the hot path allocates nothing
// in steady state.
type Detector struct {
	slots   []*book.Slot
	params  book.Params
	metrics *book.Metrics
	ingest  *book.Gate
	persist *book.Gate
	round   *Round

	now func() time.Time // injectable for deterministic latency tests

	// last-known per-venue copies; only the trigger venue is refreshed
	// each round, the rest keep their previous state
	local [book.NumVenues]book.Snapshot

	buyQty   [book.NumVenues][book.MaxLevels]float64
	buyCost  [book.NumVenues][book.MaxLevels]float64
	buyN     [book.NumVenues]int
	sellQty  [book.NumVenues][book.MaxLevels]float64
	sellCost [book.NumVenues][book.MaxLevels]float64
	sellN    [book.NumVenues]int
}

func NewDetector(slots []*book.Slot, params book.Params, metrics *book.Metrics, ingest, persist *book.Gate, round *Round) *Detector {
	return &Detector{
		slots:   slots,
		params:  params,
		metrics: metrics,
		ingest:  ingest,
		persist: persist,
		round:   round,
		now:     time.Now,
	}
}

// Run loops until ctx is cancelled. One loop body per acquired ingest
// signal; updates_processed counts loop bodies, not opportunities.
func (d *Detector) Run(ctx context.Context) {
	for d.ingest.Acquire(ctx) {
		d.runOnce()
	}
}

func (d *Detector) runOnce() {
	defer d.metrics.IncrementUpdates()

	// Take the first fresh slot only. One release corresponds to one
	// publish; scanning further would mix transport ticks into one
	// round and inflate measured latency. No fresh slot means the
	// gate saturated earlier; nothing to do.
	trigger := -1
	for i, slot := range d.slots {
		if slot.TryTake(&d.local[i]) {
			trigger = i
			break
		}
	}
	if trigger < 0 {
		return
	}

	d.round.Batch = d.round.Batch[:0]
	d.buildCumulatives()
	d.sweep(&d.local[trigger])

	d.round.Latest = d.local[trigger]
	d.persist.Release()
}

// buildCumulatives fills per-venue cumulative quantity/cost tables,
// asks in ascending price order and bids in descending, both capped
// at max_order_size.
func (d *Detector) buildCumulatives() {
	maxSize := d.params.MaxOrderSize
	for i := range d.local {
		d.buyN[i], d.sellN[i] = 0, 0
		if !d.params.Enabled[i] {
			continue
		}
		b := &d.local[i]

		totalQ, totalC := 0.0, 0.0
		for lvl := 0; lvl < b.AskSize && totalQ < maxSize; lvl++ {
			avail := min(b.AskQty[lvl], maxSize-totalQ)
			totalQ += avail
			totalC += avail * b.AskPrice[lvl]
			d.buyQty[i][d.buyN[i]] = totalQ
			d.buyCost[i][d.buyN[i]] = totalC
			d.buyN[i]++
		}

		totalQ, totalC = 0.0, 0.0
		for lvl := 0; lvl < b.BidSize && totalQ < maxSize; lvl++ {
			avail := min(b.BidQty[lvl], maxSize-totalQ)
			totalQ += avail
			totalC += avail * b.BidPrice[lvl]
			d.sellQty[i][d.sellN[i]] = totalQ
			d.sellCost[i][d.sellN[i]] = totalC
			d.sellN[i]++
		}
	}
}

// sweep runs the two-pointer merge over buy and sell cumulatives for
// every cross-venue pair, emitting a tranche at each size quantum
// where net-of-fees VWAP spread clears the absolute profit threshold.
func (d *Detector) sweep(trigger *book.Snapshot) {
	for i := 0; i < book.NumVenues; i++ {
		if !d.params.Enabled[i] || d.buyN[i] == 0 {
			continue
		}
		for j := 0; j < book.NumVenues; j++ {
			// same-venue pairs can never clear positive fees; skipping
			// them keeps buy_venue != sell_venue on every record
			if j == i || !d.params.Enabled[j] || d.sellN[j] == 0 {
				continue
			}

			bi, si := 0, 0
			for bi < d.buyN[i] && si < d.sellN[j] {
				commonQty := min(d.buyQty[i][bi], d.sellQty[j][si])
				buyVWAP := d.buyCost[i][bi] / d.buyQty[i][bi]
				sellVWAP := d.sellCost[j][si] / d.sellQty[j][si]
				grossPct := (sellVWAP - buyVWAP) / buyVWAP * 100.0
				netPct := grossPct - (d.params.Fees[i] + d.params.Fees[j])
				netQuote := netPct * commonQty * buyVWAP / 100.0

				if netQuote >= d.params.MinProfit {
					now := d.now()
					latencyUS := float64(now.Sub(trigger.CapturedAt).Nanoseconds()) / 1e3
					d.round.Batch = append(d.round.Batch, model.Opportunity{
						BuyVenue:           i,
						SellVenue:          j,
						BuyLevels:          bi + 1,
						SellLevels:         si + 1,
						BuyVWAP:            buyVWAP,
						SellVWAP:           sellVWAP,
						NetProfitPct:       netPct,
						OrderSize:          commonQty,
						DetectionLatencyUS: latencyUS,
						DetectedAt:         now,
					})
					d.metrics.IncrementOpportunities()
					d.metrics.RecordLatency(uint64(latencyUS))
				}

				// advance the side with the smaller cumulative; ties
				// advance the sell pointer for determinism
				if d.buyQty[i][bi] < d.sellQty[j][si] {
					bi++
				} else {
					si++
				}
			}
		}
	}
}
