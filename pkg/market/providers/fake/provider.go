// Package fake is an in-memory market.Provider for tests: scripted listings
// and daily tables, optional error injection, no network.
package fake

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"astock-api/pkg/kline"
	"astock-api/pkg/market"
)

// Provider serves scripted data from memory. Safe for concurrent use.
type Provider struct {
	mu      sync.Mutex
	stocks  map[string]market.Stock
	history map[string]kline.RawTable

	// Err, when set, is returned by every call to simulate an unreachable
	// upstream.
	Err error
}

// New constructs an empty fake provider.
func New() *Provider {
	return &Provider{
		stocks:  make(map[string]market.Stock),
		history: make(map[string]kline.RawTable),
	}
}

func canonical(symbol string) string { return strings.TrimSpace(symbol) }

// AddStock registers a listing summary.
func (p *Provider) AddStock(stock market.Stock) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stocks[canonical(stock.Symbol)] = stock
}

// SetHistory registers the raw daily table returned for a symbol.
func (p *Provider) SetHistory(symbol string, table kline.RawTable) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.history[canonical(symbol)] = table
}

// SeedDays registers n consecutive calendar days of synthetic history
// starting at start, with EastMoney-style Chinese column labels.
func (p *Provider) SeedDays(symbol string, start time.Time, n int) {
	table := kline.RawTable{Columns: []string{"日期", "开盘", "收盘", "最高", "最低", "成交量", "成交额"}}
	for i := 0; i < n; i++ {
		day := start.AddDate(0, 0, i)
		base := 10.0 + float64(i)*0.1
		table.AppendRow(
			day.Format("2006-01-02"),
			fmt.Sprintf("%.2f", base),
			fmt.Sprintf("%.2f", base+0.2),
			fmt.Sprintf("%.2f", base+0.5),
			fmt.Sprintf("%.2f", base-0.5),
			"10000",
			"100000000",
		)
	}
	p.SetHistory(symbol, table)
}

// ListStocks implements market.Provider.
func (p *Provider) ListStocks(ctx context.Context) ([]market.Stock, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}
	stocks := make([]market.Stock, 0, len(p.stocks))
	for _, s := range p.stocks {
		stocks = append(stocks, s)
	}
	sort.Slice(stocks, func(i, j int) bool { return stocks[i].Symbol < stocks[j].Symbol })
	return stocks, nil
}

// GetStock implements market.Provider.
func (p *Provider) GetStock(ctx context.Context, symbol string) (*market.Stock, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}
	stock, ok := p.stocks[canonical(symbol)]
	if !ok {
		return nil, market.ErrSymbolNotFound
	}
	copied := stock
	return &copied, nil
}

// DailyHistory implements market.Provider. Unknown symbols yield an empty
// table, mirroring the upstream feeds.
func (p *Provider) DailyHistory(ctx context.Context, symbol string) (kline.RawTable, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return kline.RawTable{}, p.Err
	}
	return p.history[canonical(symbol)], nil
}
