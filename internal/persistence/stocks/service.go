// Package stockspersist stores provider listing snapshots in Postgres so the
// sync job can keep a queryable copy of the universe. The HTTP read path does
// not depend on it; a deployment without a DSN simply skips persistence.
package stockspersist

import (
	"context"
	"database/sql"

	"github.com/zeromicro/go-zero/core/logx"

	"astock-api/internal/model"
	"astock-api/pkg/market"
)

// Service persists stock listing snapshots.
type Service struct {
	stocksModel model.StocksModel
}

// NewService wires a persistence service. Returns nil when the model is
// missing so callers can treat persistence as optional.
func NewService(stocksModel model.StocksModel) *Service {
	if stocksModel == nil {
		return nil
	}
	return &Service{stocksModel: stocksModel}
}

// UpsertStocks writes one listing snapshot. Row-level failures are logged and
// skipped; the snapshot is best-effort, not transactional.
func (s *Service) UpsertStocks(ctx context.Context, stocks []market.Stock) (int, error) {
	if s == nil || len(stocks) == 0 {
		return 0, nil
	}
	written := 0
	for i := range stocks {
		row := toRow(&stocks[i])
		if row.Symbol == "" {
			continue
		}
		if err := s.stocksModel.Upsert(ctx, row); err != nil {
			logx.WithContext(ctx).Errorf("stocks persist: upsert symbol=%s err=%v", row.Symbol, err)
			continue
		}
		written++
	}
	return written, nil
}

// Count reports the stored universe size.
func (s *Service) Count(ctx context.Context) (int64, error) {
	if s == nil {
		return 0, nil
	}
	return s.stocksModel.Count(ctx)
}

func toRow(stock *market.Stock) *model.Stock {
	return &model.Stock{
		Symbol:        stock.Symbol,
		Name:          stock.Name,
		Exchange:      stock.Exchange,
		CurrentPrice:  nullFloat(stock.CurrentPrice),
		ChangePercent: nullFloat(stock.ChangePercent),
		Volume:        nullInt(stock.Volume),
		MarketCap:     nullFloat(stock.MarketCap),
		UpdatedAt:     stock.UpdatedAt,
	}
}

func nullFloat(v float64) sql.NullFloat64 {
	if v == 0 {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func nullInt(v int64) sql.NullInt64 {
	if v == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: v, Valid: true}
}
