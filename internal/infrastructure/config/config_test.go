package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const validConfig = `
[venues]
list = ["okx", "bybit"]

[pairs]
list = ["BTC/USDT"]

[fees]
okx = 0.1
bybit = 0.2

[arbitrage]
min_profit = 1.5
max_order_size = 10.0
latency_ms = 50.0
`

func TestLoadValidConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Pair() != "BTC/USDT" {
		t.Errorf("pair = %q, want BTC/USDT", cfg.Pair())
	}

	p := cfg.Params()
	if !p.Enabled[0] || p.Enabled[1] || !p.Enabled[2] {
		t.Errorf("enabled = %v, want okx and bybit only", p.Enabled)
	}
	if p.Fees[0] != 0.1 || p.Fees[2] != 0.2 {
		t.Errorf("fees = %v", p.Fees)
	}
	if p.MinProfit != 1.5 || p.MaxOrderSize != 10.0 {
		t.Errorf("thresholds = %v / %v", p.MinProfit, p.MaxOrderSize)
	}

	// defaults
	if cfg.Feed.WsHost == "" || cfg.Storage.OpportunityLog == "" || cfg.Storage.SQLitePath == "" {
		t.Error("defaults not applied")
	}
}

func TestLoadRejections(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			"unknown venue",
			strings.Replace(validConfig, `"okx"`, `"binance"`, 1),
			"unknown venue",
		},
		{
			"empty venues",
			strings.Replace(validConfig, `list = ["okx", "bybit"]`, `list = []`, 1),
			"venues.list is empty",
		},
		{
			"empty pairs",
			strings.Replace(validConfig, `list = ["BTC/USDT"]`, `list = []`, 1),
			"pairs.list is empty",
		},
		{
			"more than one pair",
			strings.Replace(validConfig, `list = ["BTC/USDT"]`, `list = ["BTC/USDT", "ETH/USDT"]`, 1),
			"exactly one pair",
		},
		{
			"unknown pair",
			strings.Replace(validConfig, `"BTC/USDT"`, `"DOGE/USDT"`, 1),
			"unknown pair",
		},
		{
			"fee for venue outside venues set",
			strings.Replace(validConfig, "okx = 0.1", "okx = 0.1\nderibit = 0.3", 1),
			"not present in venues.list",
		},
		{
			"fee for unknown venue",
			strings.Replace(validConfig, "okx = 0.1", "okx = 0.1\nbinance = 0.3", 1),
			"unknown venue",
		},
		{
			"non-positive max order size",
			strings.Replace(validConfig, "max_order_size = 10.0", "max_order_size = 0.0", 1),
			"max_order_size",
		},
		{
			"negative min profit",
			strings.Replace(validConfig, "min_profit = 1.5", "min_profit = -1.0", 1),
			"min_profit",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
