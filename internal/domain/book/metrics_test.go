package book

import (
	"math"
	"sync"
	"testing"
)

func TestMetricsInitialState(t *testing.T) {
	m := NewMetrics()
	if m.MinLatencyUS.Load() != math.MaxUint64 {
		t.Error("min latency must start at MaxUint64")
	}
	if m.AvgLatencyUS() != 0 {
		t.Error("avg must be 0 before any sample")
	}
	if m.StartTime.IsZero() {
		t.Error("start time must be set")
	}
}

func TestMetricsRecordLatency(t *testing.T) {
	m := NewMetrics()
	for _, us := range []uint64{50, 10, 90, 30} {
		m.OpportunitiesFound.Add(1)
		m.RecordLatency(us)
	}

	if got := m.MinLatencyUS.Load(); got != 10 {
		t.Errorf("min = %d, want 10", got)
	}
	if got := m.MaxLatencyUS.Load(); got != 90 {
		t.Errorf("max = %d, want 90", got)
	}
	if got := m.AvgLatencyUS(); got != 45 {
		t.Errorf("avg = %d, want 45", got)
	}
}

func TestMetricsExactMinMaxUnderConcurrency(t *testing.T) {
	m := NewMetrics()
	const workers = 8
	const perWorker = 1000

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				m.OpportunitiesFound.Add(1)
				m.RecordLatency(uint64(w*perWorker + i + 1))
			}
		}(w)
	}
	wg.Wait()

	if got := m.MinLatencyUS.Load(); got != 1 {
		t.Errorf("min = %d, want 1", got)
	}
	if got := m.MaxLatencyUS.Load(); got != workers*perWorker {
		t.Errorf("max = %d, want %d", got, workers*perWorker)
	}

	// min <= avg <= max whenever opportunities > 0
	avg := m.AvgLatencyUS()
	if avg < m.MinLatencyUS.Load() || avg > m.MaxLatencyUS.Load() {
		t.Errorf("avg %d outside [min, max]", avg)
	}
}
