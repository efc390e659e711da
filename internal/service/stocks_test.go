package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astock-api/pkg/kline"
	"astock-api/pkg/market"
	"astock-api/pkg/market/providers/fake"
)

func seededProvider() *fake.Provider {
	p := fake.New()
	p.AddStock(market.Stock{Symbol: "000001", Name: "平安银行", Exchange: market.ExchangeSZSE, UpdatedAt: time.Now()})
	p.AddStock(market.Stock{Symbol: "300750", Name: "宁德时代", Exchange: market.ExchangeSZSE, UpdatedAt: time.Now()})
	p.AddStock(market.Stock{Symbol: "600519", Name: "贵州茅台", Exchange: market.ExchangeSSE, UpdatedAt: time.Now()})
	p.SeedDays("600519", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 60)
	return p
}

func TestParseEmptyResultPolicy(t *testing.T) {
	policy, err := ParseEmptyResultPolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyReturnEmpty, policy)

	policy, err = ParseEmptyResultPolicy("unavailable")
	require.NoError(t, err)
	assert.Equal(t, PolicyUnavailable, policy)

	_, err = ParseEmptyResultPolicy("explode")
	assert.Error(t, err)
}

func TestListStocksPaging(t *testing.T) {
	svc := NewStockService(seededProvider(), PolicyReturnEmpty)
	ctx := context.Background()

	page, err := svc.ListStocks(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "000001", page[0].Symbol)

	page, err = svc.ListStocks(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "600519", page[0].Symbol)

	page, err = svc.ListStocks(ctx, 10, 99)
	require.NoError(t, err)
	assert.Empty(t, page, "offset past the end yields an empty page")
}

func TestListStocksProviderDown(t *testing.T) {
	provider := fake.New()
	provider.Err = errors.New("connection refused")
	svc := NewStockService(provider, PolicyReturnEmpty)

	_, err := svc.ListStocks(context.Background(), 10, 0)
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestGetStock(t *testing.T) {
	svc := NewStockService(seededProvider(), PolicyReturnEmpty)

	stock, err := svc.GetStock(context.Background(), "600519")
	require.NoError(t, err)
	assert.Equal(t, "贵州茅台", stock.Name)

	_, err = svc.GetStock(context.Background(), "999999")
	assert.ErrorIs(t, err, market.ErrSymbolNotFound, "not-found passes through for the 404 mapping")
}

func TestKlineDaily(t *testing.T) {
	svc := NewStockService(seededProvider(), PolicyReturnEmpty)

	candles, err := svc.Kline(context.Background(), "600519", kline.FreqDaily, 30)
	require.NoError(t, err)
	assert.Len(t, candles, 30)
}

func TestKlineWeeklyLimit(t *testing.T) {
	svc := NewStockService(seededProvider(), PolicyReturnEmpty)

	candles, err := svc.Kline(context.Background(), "600519", kline.FreqWeekly, 5)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(candles), 5)
	assert.NotEmpty(t, candles)
}

func TestKlineEmptyPolicyReturnEmpty(t *testing.T) {
	svc := NewStockService(seededProvider(), PolicyReturnEmpty)

	candles, err := svc.Kline(context.Background(), "000001", kline.FreqDaily, 30)
	require.NoError(t, err, "no history means an empty 200, not an error")
	assert.NotNil(t, candles)
	assert.Empty(t, candles)
}

func TestKlineEmptyPolicyUnavailable(t *testing.T) {
	svc := NewStockService(seededProvider(), PolicyUnavailable)

	_, err := svc.Kline(context.Background(), "000001", kline.FreqDaily, 30)
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestKlineProviderDown(t *testing.T) {
	provider := fake.New()
	provider.Err = errors.New("timeout")
	svc := NewStockService(provider, PolicyReturnEmpty)

	_, err := svc.Kline(context.Background(), "600519", kline.FreqDaily, 30)
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}
