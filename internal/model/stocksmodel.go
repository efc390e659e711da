package model

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ StocksModel = (*defaultStocksModel)(nil)

type (
	// StocksModel persists listing summaries in public.stocks. The HTTP read
	// path never consults the table; it exists for the sync job and for
	// consumers querying the database directly.
	StocksModel interface {
		Upsert(ctx context.Context, data *Stock) error
		Count(ctx context.Context) (int64, error)
	}

	defaultStocksModel struct {
		conn sqlx.SqlConn
	}

	// Stock mirrors one row of public.stocks.
	Stock struct {
		Symbol        string          `db:"symbol"`
		Name          string          `db:"name"`
		Exchange      string          `db:"exchange"`
		CurrentPrice  sql.NullFloat64 `db:"current_price"`
		ChangePercent sql.NullFloat64 `db:"change_percent"`
		Volume        sql.NullInt64   `db:"volume"`
		MarketCap     sql.NullFloat64 `db:"market_cap"`
		UpdatedAt     time.Time       `db:"updated_at"`
	}
)

// NewStocksModel returns a model for the database table.
func NewStocksModel(conn sqlx.SqlConn) StocksModel {
	return &defaultStocksModel{conn: conn}
}

func (m *defaultStocksModel) Upsert(ctx context.Context, data *Stock) error {
	query := `
INSERT INTO public.stocks (symbol, name, exchange, current_price, change_percent, volume, market_cap, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (symbol) DO UPDATE SET
    name = EXCLUDED.name,
    exchange = EXCLUDED.exchange,
    current_price = EXCLUDED.current_price,
    change_percent = EXCLUDED.change_percent,
    volume = EXCLUDED.volume,
    market_cap = EXCLUDED.market_cap,
    updated_at = EXCLUDED.updated_at`
	_, err := m.conn.ExecCtx(ctx, query,
		data.Symbol, data.Name, data.Exchange, data.CurrentPrice,
		data.ChangePercent, data.Volume, data.MarketCap, data.UpdatedAt)
	if err != nil {
		return fmt.Errorf("stocks upsert %s: %w", data.Symbol, err)
	}
	return nil
}

func (m *defaultStocksModel) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := m.conn.QueryRowCtx(ctx, &count, "SELECT count(*) FROM public.stocks"); err != nil {
		return 0, err
	}
	return count, nil
}
