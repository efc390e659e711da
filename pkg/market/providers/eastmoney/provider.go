package eastmoney

import (
	"context"
	"net/http"
	"time"

	"astock-api/pkg/kline"
	"astock-api/pkg/market"
)

const defaultProviderTimeout = 8 * time.Second

// Provider wraps the EastMoney client behind the market.Provider contract.
type Provider struct {
	client  *Client
	timeout time.Duration
}

type providerConfig struct {
	timeout       time.Duration
	clientOptions []Option
}

// ProviderOption customises the EastMoney provider.
type ProviderOption func(*providerConfig)

// WithTimeout overrides the default per-call timeout.
func WithTimeout(timeout time.Duration) ProviderOption {
	return func(cfg *providerConfig) {
		if timeout > 0 {
			cfg.timeout = timeout
		}
	}
}

// WithClientOptions passes options to the underlying client.
func WithClientOptions(options ...Option) ProviderOption {
	return func(cfg *providerConfig) {
		cfg.clientOptions = append(cfg.clientOptions, options...)
	}
}

// NewProvider constructs an EastMoney market provider.
func NewProvider(opts ...ProviderOption) *Provider {
	cfg := &providerConfig{timeout: defaultProviderTimeout}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Provider{
		client:  NewClient(cfg.clientOptions...),
		timeout: cfg.timeout,
	}
}

func init() {
	market.RegisterProvider("eastmoney", func(name string, cfg *market.ProviderConfig) (market.Provider, error) {
		opts := []ProviderOption{}
		clientOptions := []Option{}
		if cfg.Timeout > 0 {
			opts = append(opts, WithTimeout(cfg.Timeout))
		}
		if cfg.HTTPTimeout > 0 {
			clientOptions = append(clientOptions, WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))
		}
		if cfg.BaseURL != "" {
			clientOptions = append(clientOptions, WithBaseURL(cfg.BaseURL))
		}
		if cfg.MaxRetries > 0 {
			clientOptions = append(clientOptions, WithMaxRetries(cfg.MaxRetries))
		}
		if len(clientOptions) > 0 {
			opts = append(opts, WithClientOptions(clientOptions...))
		}
		return NewProvider(opts...), nil
	})
}

// ListStocks implements market.Provider.
func (p *Provider) ListStocks(ctx context.Context) ([]market.Stock, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	return p.client.ListStocks(ctx)
}

// GetStock implements market.Provider.
func (p *Provider) GetStock(ctx context.Context, symbol string) (*market.Stock, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	return p.client.GetStock(ctx, symbol)
}

// DailyHistory implements market.Provider.
func (p *Provider) DailyHistory(ctx context.Context, symbol string) (kline.RawTable, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	return p.client.DailyHistory(ctx, symbol)
}

func (p *Provider) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, p.timeout)
}
