package tushare

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"astock-api/pkg/kline"
	"astock-api/pkg/market"
)

const defaultProviderTimeout = 8 * time.Second

// Provider wraps the Tushare client behind the market.Provider contract.
type Provider struct {
	client  *Client
	timeout time.Duration
}

// NewProvider constructs a Tushare market provider.
func NewProvider(client *Client, timeout time.Duration) *Provider {
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}
	return &Provider{client: client, timeout: timeout}
}

func init() {
	market.RegisterProvider("tushare", func(name string, cfg *market.ProviderConfig) (market.Provider, error) {
		opts := []Option{}
		if cfg.BaseURL != "" {
			opts = append(opts, WithBaseURL(cfg.BaseURL))
		}
		if cfg.HTTPTimeout > 0 {
			opts = append(opts, WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))
		}
		client, err := NewClient(cfg.Token, opts...)
		if err != nil {
			return nil, err
		}
		return NewProvider(client, cfg.Timeout), nil
	})
}

const stockBasicFields = "ts_code,symbol,name,market,list_date"

// ListStocks implements market.Provider via the stock_basic API.
func (p *Provider) ListStocks(ctx context.Context) ([]market.Stock, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	body, err := p.client.call(ctx, "stock_basic", map[string]string{"list_status": "L"}, stockBasicFields)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	table := tableFromResponse(body)
	symbolIdx, nameIdx := columnOf(table.Columns, "symbol"), columnOf(table.Columns, "name")
	if symbolIdx < 0 {
		return nil, nil
	}
	stocks := make([]market.Stock, 0, len(table.Rows))
	for _, row := range table.Rows {
		symbol := row[symbolIdx]
		if symbol == "" {
			continue
		}
		name := ""
		if nameIdx >= 0 {
			name = row[nameIdx]
		}
		stocks = append(stocks, market.Stock{
			Symbol:    symbol,
			Name:      name,
			Exchange:  market.ExchangeFor(symbol),
			UpdatedAt: now,
		})
	}
	return stocks, nil
}

// GetStock implements market.Provider. Tushare has no cheap single-symbol
// summary call, so the listing row is matched client-side.
func (p *Provider) GetStock(ctx context.Context, symbol string) (*market.Stock, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	body, err := p.client.call(ctx, "stock_basic", map[string]string{"ts_code": TsCode(symbol)}, stockBasicFields)
	if err != nil {
		return nil, err
	}
	items := gjson.GetBytes(body, "data.items").Array()
	if len(items) == 0 {
		return nil, market.ErrSymbolNotFound
	}
	table := tableFromResponse(body)
	nameIdx := columnOf(table.Columns, "name")
	name := ""
	if nameIdx >= 0 && len(table.Rows) > 0 {
		name = table.Rows[0][nameIdx]
	}
	return &market.Stock{
		Symbol:    strings.TrimSpace(symbol),
		Name:      name,
		Exchange:  market.ExchangeFor(symbol),
		UpdatedAt: time.Now(),
	}, nil
}

// DailyHistory implements market.Provider via the daily API. The response
// arrives newest-first; ordering is left to the normalizer.
func (p *Provider) DailyHistory(ctx context.Context, symbol string) (kline.RawTable, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	body, err := p.client.call(ctx, "daily", map[string]string{"ts_code": TsCode(symbol)}, "")
	if err != nil {
		return kline.RawTable{}, err
	}
	return tableFromResponse(body), nil
}

func (p *Provider) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, p.timeout)
}

func columnOf(columns []string, name string) int {
	for i, c := range columns {
		if strings.EqualFold(c, name) {
			return i
		}
	}
	return -1
}
