package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"bookarb/internal/application/port"
	"bookarb/internal/domain/model"
)

type Repo struct {
	db *sql.DB
}

func New(path string) (*Repo, error) {
	// ensure directory exists
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		_ = os.MkdirAll(dir, 0o755)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	r := &Repo{db: db}
	if err := r.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return r, nil
}

func (r *Repo) Close() error { return r.db.Close() }

func (r *Repo) migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS OrderBook (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  timestamp INTEGER NOT NULL,
  topAsk REAL NOT NULL,
  topAskQty REAL NOT NULL,
  topBid REAL NOT NULL,
  topBidQty REAL NOT NULL,
  midPrice REAL NOT NULL,
  spread REAL NOT NULL,
  imbalance REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orderbook_ts ON OrderBook(timestamp);
`)
	return err
}

// InsertSummary writes one top-of-book row inside a transaction.
func (r *Repo) InsertSummary(ctx context.Context, s *model.BookSummary) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO OrderBook(timestamp, topAsk, topAskQty, topBid, topBidQty, midPrice, spread, imbalance)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	`, s.TimestampUS, s.TopAsk, s.TopAskQty, s.TopBid, s.TopBidQty, s.MidPrice, s.Spread, s.Imbalance)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// CountSummaries reports the number of persisted rows.
func (r *Repo) CountSummaries(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM OrderBook`).Scan(&n)
	return n, err
}

var _ port.SummaryRepository = (*Repo)(nil)
