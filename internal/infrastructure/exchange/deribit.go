package exchange

import (
	"fmt"

	"bookarb/internal/domain/book"
)

// NewDeribitFeed subscribes to the Deribit L2 stream. Deribit sends
// plain numbers and formats the pair as BASE_QUOTE.
func NewDeribitFeed(host, pair string, slot *book.Slot, gate *book.Gate) *WSFeed {
	base, quote := book.SplitPair(pair)
	url := fmt.Sprintf("wss://%s/ws/l2-orderbook/deribit/%s_%s", host, base, quote)
	return newWSFeed("deribit", url, false, slot, gate)
}
