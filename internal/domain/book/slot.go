package book

import (
	"sync/atomic"
	"time"
)

// Snapshot is one L2 view of a venue's book. Ask prices are
// non-decreasing in index, bid prices non-increasing; quantities are
// strictly positive up to AskSize/BidSize and undefined beyond.
type Snapshot struct {
	AskPrice [MaxLevels]float64
	AskQty   [MaxLevels]float64
	BidPrice [MaxLevels]float64
	BidQty   [MaxLevels]float64
	AskSize  int
	BidSize  int
	// CapturedAt is stamped by the ingest adapter on message arrival,
	// before parsing, so downstream latency is end-to-end.
	CapturedAt time.Time
}

// Slot is the per-venue shared snapshot cell: one writer (the venue's
// ingest adapter), one reader (the detector). It is not a queue; a
// burst of publishes coalesces into one visible update and detection
// only ever needs the freshest state.
type Slot struct {
	snap  Snapshot
	fresh atomic.Bool
}

// Publish overwrites the slot and then raises the fresh flag. The
// atomic store sequences the whole snapshot before any acquiring
// reader can observe fresh == true.
func (s *Slot) Publish(src *Snapshot) {
	s.snap = *src
	s.fresh.Store(true)
}

// TryTake copies the slot into dst and clears the fresh flag if there
// is unread data. Returns false (dst untouched) otherwise.
func (s *Slot) TryTake(dst *Snapshot) bool {
	if !s.fresh.Load() {
		return false
	}
	*dst = s.snap
	s.fresh.Store(false)
	return true
}

// Fresh reports whether the slot holds an unread publication.
func (s *Slot) Fresh() bool { return s.fresh.Load() }
