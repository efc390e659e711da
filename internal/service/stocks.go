// Package service holds the stock business layer between the HTTP logic and
// the market providers.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"astock-api/pkg/kline"
	"astock-api/pkg/market"
)

// EmptyResultPolicy decides what an empty candle result means to callers.
type EmptyResultPolicy string

const (
	// PolicyReturnEmpty surfaces "no data in window" as an empty list.
	PolicyReturnEmpty EmptyResultPolicy = "return-empty"
	// PolicyUnavailable treats an empty result as a provider outage.
	PolicyUnavailable EmptyResultPolicy = "unavailable"
)

// ParseEmptyResultPolicy validates a configured policy value. The empty
// string defaults to PolicyReturnEmpty.
func ParseEmptyResultPolicy(s string) (EmptyResultPolicy, error) {
	switch EmptyResultPolicy(strings.TrimSpace(s)) {
	case "", PolicyReturnEmpty:
		return PolicyReturnEmpty, nil
	case PolicyUnavailable:
		return PolicyUnavailable, nil
	default:
		return "", fmt.Errorf("service: unknown empty-result policy %q", s)
	}
}

// ErrProviderUnavailable marks upstream failures the HTTP layer maps to 503.
var ErrProviderUnavailable = errors.New("service: data provider unavailable")

// StockService answers stock queries through one injected provider. It owns
// no state beyond its collaborators and performs no caching: every call
// re-fetches from the provider.
type StockService struct {
	provider market.Provider
	policy   EmptyResultPolicy
}

// NewStockService wires a service over the given provider.
func NewStockService(provider market.Provider, policy EmptyResultPolicy) *StockService {
	if policy == "" {
		policy = PolicyReturnEmpty
	}
	return &StockService{provider: provider, policy: policy}
}

// ListStocks returns one page of the listing universe.
func (s *StockService) ListStocks(ctx context.Context, limit, offset int) ([]market.Stock, error) {
	stocks, err := s.provider.ListStocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	if offset >= len(stocks) {
		return []market.Stock{}, nil
	}
	end := offset + limit
	if end > len(stocks) {
		end = len(stocks)
	}
	return stocks[offset:end], nil
}

// GetStock returns the summary for one symbol. market.ErrSymbolNotFound
// passes through untouched for the HTTP layer to map to 404.
func (s *StockService) GetStock(ctx context.Context, symbol string) (*market.Stock, error) {
	stock, err := s.provider.GetStock(ctx, symbol)
	if errors.Is(err, market.ErrSymbolNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	return stock, nil
}

// Kline fetches the daily history for a symbol and normalizes it to the
// requested frequency and window. An empty normalized result is surfaced
// according to the configured policy: an empty slice, or
// ErrProviderUnavailable when the deployment prefers a hard 503.
func (s *StockService) Kline(ctx context.Context, symbol string, freq kline.Freq, limit int) ([]kline.Candle, error) {
	table, err := s.provider.DailyHistory(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	candles := kline.Normalize(table, freq, limit)
	if len(candles) == 0 && s.policy == PolicyUnavailable {
		return nil, fmt.Errorf("%w: no kline data for %s", ErrProviderUnavailable, symbol)
	}
	if candles == nil {
		candles = []kline.Candle{}
	}
	return candles, nil
}
