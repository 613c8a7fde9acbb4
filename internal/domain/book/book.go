package book

import "strings"

// MaxLevels is the deepest L2 view any venue delivers; extra levels
// in a message are ignored.
const MaxLevels = 50

// NumVenues is fixed at compile time. Venue indices key the slots,
// the fee and enabled tables and the name tables below, so the order
// here must stay the same across all of them.
const NumVenues = 3

var VenueNames = [NumVenues]string{"okx", "deribit", "bybit"}

// DisplayNames are the operator-facing venue labels.
var DisplayNames = [NumVenues]string{"OKX", "Deribit", "Bybit"}

var PairNames = []string{"BTC/USDT", "ETH/USDT", "SOL/USDT"}

// VenueIndex maps a venue name to its index, or -1 if unknown.
func VenueIndex(name string) int {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, v := range VenueNames {
		if v == name {
			return i
		}
	}
	return -1
}

// PairIndex maps a pair name (e.g. "BTC/USDT") to its index, or -1.
func PairIndex(name string) int {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, p := range PairNames {
		if p == name {
			return i
		}
	}
	return -1
}

// SplitPair splits "BTC/USDT" into base and quote.
func SplitPair(pair string) (base, quote string) {
	if i := strings.IndexByte(pair, '/'); i >= 0 {
		return pair[:i], pair[i+1:]
	}
	return pair, ""
}

// Params is the immutable detection configuration derived from the
// config file before the pipeline starts.
type Params struct {
	Enabled      [NumVenues]bool
	Fees         [NumVenues]float64 // percent per venue
	MinProfit    float64            // absolute quote-currency threshold
	MaxOrderSize float64            // base units
}
