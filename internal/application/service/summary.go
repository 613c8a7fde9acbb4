package service

import (
	"time"

	"bookarb/internal/domain/book"
	"bookarb/internal/domain/model"
)

// imbalanceEps keeps the imbalance ratio defined when both top
// quantities are zero (empty sides).
const imbalanceEps = 1e-9

// Summarize reduces a snapshot to its top-of-book row. Empty sides
// contribute zeros.
func Summarize(s *book.Snapshot, ts time.Time) model.BookSummary {
	var topAsk, topAskQty, topBid, topBidQty float64
	if s.AskSize > 0 {
		topAsk, topAskQty = s.AskPrice[0], s.AskQty[0]
	}
	if s.BidSize > 0 {
		topBid, topBidQty = s.BidPrice[0], s.BidQty[0]
	}
	return model.BookSummary{
		TimestampUS: ts.UnixMicro(),
		TopAsk:      topAsk,
		TopAskQty:   topAskQty,
		TopBid:      topBid,
		TopBidQty:   topBidQty,
		MidPrice:    (topAsk + topBid) / 2,
		Spread:      topAsk - topBid,
		Imbalance:   (topBidQty - topAskQty) / (topBidQty + topAskQty + imbalanceEps),
	}
}
