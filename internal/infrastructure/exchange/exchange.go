package exchange

import (
	"fmt"

	"bookarb/internal/domain/book"
)

// NewFeed builds the ingest adapter for a venue index.
func NewFeed(venue int, host, pair string, slot *book.Slot, gate *book.Gate) (*WSFeed, error) {
	switch venue {
	case book.VenueIndex("okx"):
		return NewOKXFeed(host, pair, slot, gate), nil
	case book.VenueIndex("deribit"):
		return NewDeribitFeed(host, pair, slot, gate), nil
	case book.VenueIndex("bybit"):
		return NewBybitFeed(host, pair, slot, gate), nil
	default:
		return nil, fmt.Errorf("no feed for venue index %d", venue)
	}
}
