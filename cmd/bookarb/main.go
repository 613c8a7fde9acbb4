package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"bookarb/internal/application/port"
	"bookarb/internal/application/service"
	"bookarb/internal/domain/book"
	"bookarb/internal/domain/model"
	"bookarb/internal/infrastructure/config"
	"bookarb/internal/infrastructure/exchange"
	"bookarb/internal/infrastructure/logger"
	"bookarb/internal/infrastructure/storage/composite"
	"bookarb/internal/infrastructure/storage/postgres"
	"bookarb/internal/infrastructure/storage/redis"
	"bookarb/internal/infrastructure/storage/sqlite"
	"bookarb/internal/interfaces/console"
)

func main() {
	logger.Setup()

	configPath := flag.String("config", "configs/config.toml", "path to config.toml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("config", *configPath).Msg("load config failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	params := cfg.Params()
	pair := cfg.Pair()
	base, _ := book.SplitPair(pair)

	metrics := book.NewMetrics()
	ingestGate := book.NewGate()
	persistGate := book.NewGate()

	slots := make([]*book.Slot, book.NumVenues)
	for i := range slots {
		slots[i] = &book.Slot{}
	}

	// durable sinks
	oplog, err := service.OpenOpportunityLog(cfg.Storage.OpportunityLog, base)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Storage.OpportunityLog).Msg("open opportunity log failed")
	}

	sqliteRepo, err := sqlite.New(cfg.Storage.SQLitePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Storage.SQLitePath).Msg("open sqlite failed")
	}
	repos := []port.SummaryRepository{sqliteRepo}

	if cfg.Storage.PostgresDSN != "" {
		pgRepo, err := postgres.New(cfg.Storage.PostgresDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("open postgres failed")
		}
		repos = append(repos, pgRepo)
		log.Info().Msg("postgres summary mirror enabled")
	}
	repo := composite.New(repos...)

	var pub port.OpportunityPublisher
	if cfg.Storage.RedisAddr != "" {
		rdb := goredis.NewClient(&goredis.Options{Addr: cfg.Storage.RedisAddr})
		pub = redis.New(rdb, cfg.Storage.RedisStream, cfg.Storage.RedisChannel)
		log.Info().Str("stream", cfg.Storage.RedisStream).Msg("redis opportunity publisher enabled")
	}

	round := &service.Round{Batch: make([]model.Opportunity, 0, 64)}

	detector := service.NewDetector(slots, params, metrics, ingestGate, persistGate, round)
	persistor := service.NewPersistor(persistGate, round, oplog, repo, pub)

	// one ingest adapter per enabled venue
	var venueNames []string
	var feeds []port.BookFeed
	for i := 0; i < book.NumVenues; i++ {
		if !params.Enabled[i] {
			continue
		}
		feed, err := exchange.NewFeed(i, cfg.Feed.WsHost, pair, slots[i], ingestGate)
		if err != nil {
			log.Fatal().Err(err).Msg("feed construction failed")
		}
		feeds = append(feeds, feed)
		venueNames = append(venueNames, book.DisplayNames[i])
		log.Info().Str("feed", feed.Name()).Str("url", feed.URL()).Msg("feed configured")
	}

	log.Info().
		Str("pair", pair).
		Strs("venues", venueNames).
		Float64("min_profit", params.MinProfit).
		Float64("max_order_size", params.MaxOrderSize).
		Float64("expected_latency_ms", cfg.Arbitrage.LatencyMS).
		Msg("bookarb started")

	var wg sync.WaitGroup
	for _, feed := range feeds {
		wg.Add(1)
		go func(f port.BookFeed) {
			defer wg.Done()
			if err := f.Run(ctx); err != nil && ctx.Err() == nil {
				log.Error().Str("feed", f.Name()).Err(err).Msg("feed exited")
			}
		}(feed)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		detector.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		persistor.Run(ctx)
	}()

	// operator prompt owns stdin; quit requests shutdown
	go func() {
		cons := console.New(metrics, cfg.Storage.OpportunityLog, venueNames, stop)
		_ = cons.Run(ctx)
	}()

	<-ctx.Done()
	wg.Wait()

	if err := oplog.Close(); err != nil {
		log.Error().Err(err).Msg("close opportunity log failed")
	}
	if err := repo.Close(); err != nil {
		log.Error().Err(err).Msg("close summary store failed")
	}
	log.Info().Msg("exit")
}
