package model

import "time"

// Opportunity is one tranche of a cross-venue arbitrage: buy the ask
// side of one venue and drain the bid side of another at a net-of-fees
// profit. BuyVenue and SellVenue are venue indices.
type Opportunity struct {
	BuyVenue   int
	SellVenue  int
	BuyLevels  int // 1-based count of ask levels consumed
	SellLevels int // 1-based count of bid levels consumed
	BuyVWAP    float64
	SellVWAP   float64
	// NetProfitPct is the VWAP spread in percent after both venues'
	// fees are subtracted.
	NetProfitPct float64
	// OrderSize is the tranche size in base units: the smaller of the
	// two cumulative quantities at the emission point.
	OrderSize float64
	// DetectionLatencyUS measures arrival of the triggering snapshot
	// to emission, including parse, signal wait, copy and sweep.
	DetectionLatencyUS float64
	DetectedAt         time.Time
}

// BookSummary is the per-tick top-of-book row persisted to the
// relational store.
type BookSummary struct {
	TimestampUS int64
	TopAsk      float64
	TopAskQty   float64
	TopBid      float64
	TopBidQty   float64
	MidPrice    float64
	Spread      float64
	Imbalance   float64
}
