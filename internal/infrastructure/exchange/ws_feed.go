package exchange

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"bookarb/internal/domain/book"
)

// WSFeed streams one venue's L2 snapshots into its book slot over a
// secure websocket. Every decoded message is stamped on arrival,
// published, and signalled to the detector. Reconnects forever with
// exponential backoff; the core tolerates arbitrary silence.
type WSFeed struct {
	name       string
	url        string
	stringNums bool
	slot       *book.Slot
	gate       *book.Gate

	scratch book.Snapshot
}

func newWSFeed(name, url string, stringNums bool, slot *book.Slot, gate *book.Gate) *WSFeed {
	return &WSFeed{name: name, url: url, stringNums: stringNums, slot: slot, gate: gate}
}

func (f *WSFeed) Name() string { return f.name }

// URL exposes the endpoint for startup logging.
func (f *WSFeed) URL() string { return f.url }

func (f *WSFeed) Run(ctx context.Context) error {
	backoff := 500 * time.Millisecond
	maxBackoff := 10 * time.Second

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		log.Warn().Str("feed", f.name).Str("url", f.url).Msg("ws connecting")
		cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		conn, _, err := websocket.DefaultDialer.DialContext(cctx, f.url, nil)
		cancel()
		if err != nil {
			log.Error().Str("feed", f.name).Err(err).Msg("ws dial failed")
			time.Sleep(backoff)
			backoff = minDur(backoff*2, maxBackoff)
			continue
		}

		backoff = 500 * time.Millisecond
		log.Info().Str("feed", f.name).Msg("ws connected")

		err = readLoop(ctx, conn, f.onMessage)

		_ = conn.Close()

		if ctx.Err() != nil {
			return ctx.Err()
		}

		log.Warn().Str("feed", f.name).Err(err).Msg("ws disconnected, reconnecting")
		time.Sleep(backoff)
		backoff = minDur(backoff*2, maxBackoff)
	}
}

func (f *WSFeed) onMessage(b []byte) {
	// stamp before parsing so downstream latency covers parse time
	f.scratch.CapturedAt = time.Now()

	if err := decodeBook(b, f.stringNums, &f.scratch); err != nil {
		// malformed message: drop, no publish, no signal
		log.Error().Str("feed", f.name).Err(err).Msg("book decode failed, message dropped")
		return
	}

	f.slot.Publish(&f.scratch)
	f.gate.Release()
}

func readLoop(ctx context.Context, conn *websocket.Conn, onMsg func([]byte)) error {
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	pingTicker := time.NewTicker(25 * time.Second)
	defer pingTicker.Stop()

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		for {
			_, b, err := conn.ReadMessage()
			if err == nil {
				_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			}
			if err != nil {
				errCh <- err
				return
			}
			onMsg(b)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errCh:
			return err
		case <-pingTicker.C:
			_ = conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second))
		}
	}
}

func minDur(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
