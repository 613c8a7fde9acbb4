package exchange

import (
	"fmt"

	"bookarb/internal/domain/book"
)

// NewOKXFeed subscribes to the OKX L2 stream. OKX string-encodes its
// numbers and formats the pair as BASE-QUOTE.
func NewOKXFeed(host, pair string, slot *book.Slot, gate *book.Gate) *WSFeed {
	base, quote := book.SplitPair(pair)
	url := fmt.Sprintf("wss://%s/ws/l2-orderbook/okx/%s-%s", host, base, quote)
	return newWSFeed("okx", url, true, slot, gate)
}
