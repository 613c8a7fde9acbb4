package exchange

import (
	"encoding/json"
	"fmt"
	"strconv"

	"bookarb/internal/domain/book"
)

// wireBook is the common venue message shape: ordered [price, qty]
// tuples, asks ascending and bids descending. Values may be numbers
// or string-encoded numbers depending on the venue.
type wireBook struct {
	Asks [][2]json.RawMessage `json:"asks"`
	Bids [][2]json.RawMessage `json:"bids"`
}

func parseNum(raw json.RawMessage, quoted bool) (float64, error) {
	s := string(raw)
	if quoted {
		u, err := strconv.Unquote(s)
		if err != nil {
			return 0, fmt.Errorf("expected string-encoded number, got %s", s)
		}
		s = u
	}
	return strconv.ParseFloat(s, 64)
}

// decodeBook parses a venue message into dst's price, quantity and
// size fields, consuming at most MaxLevels per side. CapturedAt is
// the caller's concern. dst is left partially written on error; the
// caller must drop it without publishing.
func decodeBook(data []byte, stringNums bool, dst *book.Snapshot) error {
	var w wireBook
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	n := 0
	for _, lvl := range w.Asks {
		if n == book.MaxLevels {
			break
		}
		p, err := parseNum(lvl[0], stringNums)
		if err != nil {
			return fmt.Errorf("ask price: %w", err)
		}
		q, err := parseNum(lvl[1], stringNums)
		if err != nil {
			return fmt.Errorf("ask qty: %w", err)
		}
		dst.AskPrice[n], dst.AskQty[n] = p, q
		n++
	}
	dst.AskSize = n

	n = 0
	for _, lvl := range w.Bids {
		if n == book.MaxLevels {
			break
		}
		p, err := parseNum(lvl[0], stringNums)
		if err != nil {
			return fmt.Errorf("bid price: %w", err)
		}
		q, err := parseNum(lvl[1], stringNums)
		if err != nil {
			return fmt.Errorf("bid qty: %w", err)
		}
		dst.BidPrice[n], dst.BidQty[n] = p, q
		n++
	}
	dst.BidSize = n
	return nil
}
