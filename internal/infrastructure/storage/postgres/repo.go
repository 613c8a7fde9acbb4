package postgres

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"

	"bookarb/internal/application/port"
	"bookarb/internal/domain/model"
)

// Repo mirrors summary rows into Postgres for off-box analysis.
type Repo struct {
	db *sql.DB
}

func New(dsn string) (*Repo, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

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
CREATE TABLE IF NOT EXISTS orderbook (
  id BIGSERIAL PRIMARY KEY,
  ts_us BIGINT NOT NULL,
  top_ask DOUBLE PRECISION NOT NULL,
  top_ask_qty DOUBLE PRECISION NOT NULL,
  top_bid DOUBLE PRECISION NOT NULL,
  top_bid_qty DOUBLE PRECISION NOT NULL,
  mid_price DOUBLE PRECISION NOT NULL,
  spread DOUBLE PRECISION NOT NULL,
  imbalance DOUBLE PRECISION NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orderbook_ts ON orderbook(ts_us);
`)
	return err
}

func (r *Repo) InsertSummary(ctx context.Context, s *model.BookSummary) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO orderbook(ts_us, top_ask, top_ask_qty, top_bid, top_bid_qty, mid_price, spread, imbalance)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
	`, s.TimestampUS, s.TopAsk, s.TopAskQty, s.TopBid, s.TopBidQty, s.MidPrice, s.Spread, s.Imbalance)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

var _ port.SummaryRepository = (*Repo)(nil)
