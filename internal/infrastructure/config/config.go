package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"bookarb/internal/domain/book"
)

type Config struct {
	Venues struct {
		List []string `toml:"list"` // subset of okx, deribit, bybit
	} `toml:"venues"`

	Pairs struct {
		List []string `toml:"list"` // exactly one of BTC/USDT, ETH/USDT, SOL/USDT
	} `toml:"pairs"`

	// Fees maps venue name to fee percentage.
	Fees map[string]float64 `toml:"fees"`

	Arbitrage struct {
		// MinProfit is an absolute quote-currency threshold, not a
		// percentage: a tranche emits when net profit in quote units
		// reaches it.
		MinProfit    float64 `toml:"min_profit"`
		MaxOrderSize float64 `toml:"max_order_size"` // base units
		LatencyMS    float64 `toml:"latency_ms"`     // expected transport latency
	} `toml:"arbitrage"`

	Feed struct {
		WsHost string `toml:"ws_host"`
	} `toml:"feed"`

	Storage struct {
		OpportunityLog string `toml:"opportunity_log"`
		SQLitePath     string `toml:"sqlite_path"`
		PostgresDSN    string `toml:"postgres_dsn"` // optional mirror
		RedisAddr      string `toml:"redis_addr"`   // optional publisher
		RedisStream    string `toml:"redis_stream"`
		RedisChannel   string `toml:"redis_channel"`
	} `toml:"storage"`
}

func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Feed.WsHost) == "" {
		cfg.Feed.WsHost = "ws.gomarket-cpp.goquant.io"
	}
	if strings.TrimSpace(cfg.Storage.OpportunityLog) == "" {
		cfg.Storage.OpportunityLog = "storage/opportunities.txt"
	}
	if strings.TrimSpace(cfg.Storage.SQLitePath) == "" {
		cfg.Storage.SQLitePath = "storage/orderbook_summary.db"
	}
	if strings.TrimSpace(cfg.Storage.RedisStream) == "" {
		cfg.Storage.RedisStream = "bookarb:opportunities"
	}
	if strings.TrimSpace(cfg.Storage.RedisChannel) == "" {
		cfg.Storage.RedisChannel = "bookarb:opportunities:pub"
	}
}

func validate(cfg *Config) error {
	if len(cfg.Venues.List) == 0 {
		return errors.New("venues.list is empty")
	}
	seen := map[int]bool{}
	for _, v := range cfg.Venues.List {
		idx := book.VenueIndex(v)
		if idx < 0 {
			return fmt.Errorf("unknown venue %q (supported: %s)", v, strings.Join(book.VenueNames[:], ", "))
		}
		seen[idx] = true
	}

	if len(cfg.Pairs.List) == 0 {
		return errors.New("pairs.list is empty")
	}
	if len(cfg.Pairs.List) > 1 {
		return errors.New("pairs.list must contain exactly one pair")
	}
	if book.PairIndex(cfg.Pairs.List[0]) < 0 {
		return fmt.Errorf("unknown pair %q (supported: %s)", cfg.Pairs.List[0], strings.Join(book.PairNames, ", "))
	}

	for name := range cfg.Fees {
		idx := book.VenueIndex(name)
		if idx < 0 {
			return fmt.Errorf("unknown venue %q in fees", name)
		}
		if !seen[idx] {
			return fmt.Errorf("fee for venue %q not present in venues.list", name)
		}
	}

	if cfg.Arbitrage.MaxOrderSize <= 0 {
		return errors.New("arbitrage.max_order_size must be positive")
	}
	if cfg.Arbitrage.MinProfit < 0 {
		return errors.New("arbitrage.min_profit must not be negative")
	}
	return nil
}

// Pair returns the single configured trading pair.
func (c *Config) Pair() string { return strings.ToUpper(strings.TrimSpace(c.Pairs.List[0])) }

// Params flattens the config into the immutable detection parameters.
func (c *Config) Params() book.Params {
	p := book.Params{
		MinProfit:    c.Arbitrage.MinProfit,
		MaxOrderSize: c.Arbitrage.MaxOrderSize,
	}
	for _, v := range c.Venues.List {
		p.Enabled[book.VenueIndex(v)] = true
	}
	for name, fee := range c.Fees {
		p.Fees[book.VenueIndex(name)] = fee
	}
	return p
}
