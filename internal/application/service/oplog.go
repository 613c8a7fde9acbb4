package service

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bookarb/internal/domain/book"
	"bookarb/internal/domain/model"
)

// RecordRule terminates every opportunity record in the log; the
// console pages on it.
var RecordRule = strings.Repeat("-", 50)

// OpportunityLog is the append-only human-readable opportunity sink.
// Single writer (the persistor); the console reads the file by path.
type OpportunityLog struct {
	f    *os.File
	w    *bufio.Writer
	base string // base currency of the traded pair, for display
}

func OpenOpportunityLog(path, base string) (*OpportunityLog, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		_ = os.MkdirAll(dir, 0o755)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &OpportunityLog{f: f, w: bufio.NewWriter(f), base: base}, nil
}

// Append writes one record block. Flushing is the caller's round-end
// responsibility.
func (l *OpportunityLog) Append(o *model.Opportunity) error {
	_, err := fmt.Fprintf(l.w,
		"\nArbitrage Opportunity:\n"+
			"Buy on %s at %.2f using %d levels\n"+
			"Sell on %s at %.2f using %d levels\n"+
			"Profit: %.3f%%\n"+
			"Order Size: %.6f %s\n"+
			"Market Impact: %d levels deep\n"+
			"Detection Latency: %.2f μs\n"+
			"%s\n",
		book.DisplayNames[o.BuyVenue], o.BuyVWAP, o.BuyLevels,
		book.DisplayNames[o.SellVenue], o.SellVWAP, o.SellLevels,
		o.NetProfitPct,
		o.OrderSize, l.base,
		o.BuyLevels+o.SellLevels,
		o.DetectionLatencyUS,
		RecordRule)
	return err
}

func (l *OpportunityLog) Flush() error { return l.w.Flush() }

func (l *OpportunityLog) Close() error {
	if err := l.w.Flush(); err != nil {
		_ = l.f.Close()
		return err
	}
	return l.f.Close()
}
