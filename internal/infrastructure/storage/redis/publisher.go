package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"bookarb/internal/application/port"
	"bookarb/internal/domain/book"
	"bookarb/internal/domain/model"
)

// Publisher fans opportunities out over a redis stream for durable
// consumers plus a pub/sub channel for live ones.
type Publisher struct {
	rdb     *redis.Client
	stream  string
	channel string
}

func New(rdb *redis.Client, stream, channel string) *Publisher {
	return &Publisher{rdb: rdb, stream: stream, channel: channel}
}

type wireOpportunity struct {
	BuyVenue     string  `json:"buy_venue"`
	SellVenue    string  `json:"sell_venue"`
	BuyLevels    int     `json:"buy_levels"`
	SellLevels   int     `json:"sell_levels"`
	BuyVWAP      float64 `json:"buy_vwap"`
	SellVWAP     float64 `json:"sell_vwap"`
	NetProfitPct float64 `json:"net_profit_pct"`
	OrderSize    float64 `json:"order_size"`
	LatencyUS    float64 `json:"detection_latency_us"`
	DetectedAt   int64   `json:"detected_at_us"`
}

func (p *Publisher) PublishOpportunity(ctx context.Context, o *model.Opportunity) error {
	w := wireOpportunity{
		BuyVenue:     book.VenueNames[o.BuyVenue],
		SellVenue:    book.VenueNames[o.SellVenue],
		BuyLevels:    o.BuyLevels,
		SellLevels:   o.SellLevels,
		BuyVWAP:      o.BuyVWAP,
		SellVWAP:     o.SellVWAP,
		NetProfitPct: o.NetProfitPct,
		OrderSize:    o.OrderSize,
		LatencyUS:    o.DetectionLatencyUS,
		DetectedAt:   o.DetectedAt.UnixMicro(),
	}
	b, _ := json.Marshal(w)

	if _, err := p.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{"payload": string(b)},
	}).Result(); err != nil {
		return err
	}
	return p.rdb.Publish(ctx, p.channel, string(b)).Err()
}

var _ port.OpportunityPublisher = (*Publisher)(nil)
