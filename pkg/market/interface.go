// Package market defines the provider abstraction over upstream equity data
// sources and the configuration that selects between them.
package market

import (
	"context"
	"errors"
	"strings"
	"time"

	"astock-api/pkg/kline"
)

// ErrSymbolNotFound indicates the requested symbol is not listed upstream.
var ErrSymbolNotFound = errors.New("market: symbol not found")

// Provider exposes source-agnostic equity market data. Implementations wrap
// one upstream source (EastMoney scraping endpoints, Tushare Pro, a test
// fake) behind the same capability surface.
type Provider interface {
	// ListStocks returns the full listing universe with basic quote fields
	// where the source supplies them.
	ListStocks(ctx context.Context) ([]Stock, error)
	// GetStock returns the summary for a single symbol, or ErrSymbolNotFound.
	GetStock(ctx context.Context, symbol string) (*Stock, error)
	// DailyHistory returns the raw daily price table for a symbol, covering
	// the source's full available span. Column labels stay provider-native;
	// normalization is the caller's concern.
	DailyHistory(ctx context.Context, symbol string) (kline.RawTable, error)
}

// Stock is one listing summary.
type Stock struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Exchange      string    `json:"exchange"`
	CurrentPrice  float64   `json:"current_price,omitempty"`
	ChangePercent float64   `json:"change_percent,omitempty"`
	Volume        int64     `json:"volume,omitempty"`
	MarketCap     float64   `json:"market_cap,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Exchange codes derived from the symbol prefix convention of the A-share
// market: 6xxxxx lists on Shanghai, 0xxxxx/3xxxxx on Shenzhen.
const (
	ExchangeSSE     = "SSE"
	ExchangeSZSE    = "SZSE"
	ExchangeUnknown = "UNKNOWN"
)

// ExchangeFor resolves the listing exchange from a symbol prefix.
func ExchangeFor(symbol string) string {
	s := strings.TrimSpace(symbol)
	if s == "" {
		return ExchangeUnknown
	}
	switch s[0] {
	case '6':
		return ExchangeSSE
	case '0', '3':
		return ExchangeSZSE
	default:
		return ExchangeUnknown
	}
}
