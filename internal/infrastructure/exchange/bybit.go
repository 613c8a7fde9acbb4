package exchange

import (
	"fmt"

	"bookarb/internal/domain/book"
)

// NewBybitFeed subscribes to the Bybit spot L2 stream. Bybit
// string-encodes its numbers and formats the pair as BASEQUOTE/spot.
func NewBybitFeed(host, pair string, slot *book.Slot, gate *book.Gate) *WSFeed {
	base, quote := book.SplitPair(pair)
	url := fmt.Sprintf("wss://%s/ws/l2-orderbook/bybit/%s%s/spot", host, base, quote)
	return newWSFeed("bybit", url, true, slot, gate)
}
