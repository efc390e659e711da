// Package eastmoney adapts the EastMoney push2 quote endpoints to the
// market.Provider contract. The endpoints are the public JSON feeds backing
// quote.eastmoney.com; requests carry browser-like headers and a bounded
// retry budget to survive throttling.
package eastmoney

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultListURL  = "https://82.push2.eastmoney.com/api/qt/clist/get"
	defaultQuoteURL = "https://push2.eastmoney.com/api/qt/stock/get"
	defaultKlineURL = "https://push2his.eastmoney.com/api/qt/stock/kline/get"

	defaultHTTPTimeout      = 10 * time.Second
	defaultMaxRetries       = 3
	defaultRetryBackoffBase = 200 * time.Millisecond
	retryBackoff429         = 2 * time.Second

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	referer   = "https://quote.eastmoney.com/"
)

// Client wraps access to the EastMoney push2 endpoints.
type Client struct {
	listURL    string
	quoteURL   string
	klineURL   string
	httpClient *http.Client
	maxRetries int
}

// Option configures a new Client.
type Option func(*Client)

// WithHTTPClient injects a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL points all endpoints at one root, preserving the push2 paths.
// Used by tests and by configs that front the feeds with a proxy.
func WithBaseURL(root string) Option {
	return func(c *Client) {
		root = strings.TrimRight(root, "/")
		if root == "" {
			return
		}
		c.listURL = root + "/api/qt/clist/get"
		c.quoteURL = root + "/api/qt/stock/get"
		c.klineURL = root + "/api/qt/stock/kline/get"
	}
}

// WithMaxRetries adjusts the retry budget.
func WithMaxRetries(max int) Option {
	return func(c *Client) {
		if max >= 0 {
			c.maxRetries = max
		}
	}
}

// NewClient constructs an EastMoney API client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		listURL:    defaultListURL,
		quoteURL:   defaultQuoteURL,
		klineURL:   defaultKlineURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		maxRetries: defaultMaxRetries,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

// SecID converts a six-digit symbol into the push2 market-prefixed id:
// Shanghai listings (6xxxxx) become "1.<code>", Shenzhen "0.<code>".
func SecID(symbol string) string {
	s := strings.TrimSpace(symbol)
	if s == "" {
		return "0.000000"
	}
	if s[0] == '6' {
		return "1." + s
	}
	return "0." + s
}

// get fetches url with retries and returns the response body.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	backoff := defaultRetryBackoffBase
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("eastmoney: build request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Referer", referer)
		req.Header.Set("Accept", "application/json, text/plain, */*")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("eastmoney: read response: %w", readErr)
			continue
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("eastmoney: http status 429")
			backoff = retryBackoff429
			continue
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			lastErr = fmt.Errorf("eastmoney: http status %d", resp.StatusCode)
			continue
		}
		return body, nil
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("eastmoney: request failed without error detail")
}
