// Package tushare adapts the Tushare Pro commercial quote API to the
// market.Provider contract. All calls are POSTs against a single endpoint
// with {api_name, token, params, fields} payloads; the token is fixed at
// construction and never mutated afterwards.
package tushare

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"astock-api/pkg/kline"
)

const (
	defaultBaseURL     = "http://api.tushare.pro"
	defaultHTTPTimeout = 10 * time.Second
)

// ErrMissingToken is returned when a client is built without an API token.
var ErrMissingToken = errors.New("tushare: api token is required")

// Client wraps the Tushare Pro HTTP API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
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

// WithBaseURL overrides the pro endpoint URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// NewClient constructs a Tushare Pro client.
func NewClient(token string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}
	client := &Client{
		baseURL:    defaultBaseURL,
		token:      token,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type apiRequest struct {
	APIName string            `json:"api_name"`
	Token   string            `json:"token"`
	Params  map[string]string `json:"params,omitempty"`
	Fields  string            `json:"fields,omitempty"`
}

// call posts one API request and returns the raw response body.
func (c *Client) call(ctx context.Context, apiName string, params map[string]string, fields string) ([]byte, error) {
	payload, err := json.Marshal(apiRequest{
		APIName: apiName,
		Token:   c.token,
		Params:  params,
		Fields:  fields,
	})
	if err != nil {
		return nil, fmt.Errorf("tushare: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("tushare: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("tushare: %s: %w", apiName, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tushare: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("tushare: %s: http status %d", apiName, resp.StatusCode)
	}
	if code := gjson.GetBytes(body, "code").Int(); code != 0 {
		return nil, fmt.Errorf("tushare: %s: api code %d: %s", apiName, code, gjson.GetBytes(body, "msg").String())
	}
	return body, nil
}

// tableFromResponse maps the {fields, items} payload onto a RawTable.
// Null cells become empty strings and are dropped downstream.
func tableFromResponse(body []byte) kline.RawTable {
	var table kline.RawTable
	for _, f := range gjson.GetBytes(body, "data.fields").Array() {
		table.Columns = append(table.Columns, f.String())
	}
	for _, item := range gjson.GetBytes(body, "data.items").Array() {
		cells := make([]string, 0, len(table.Columns))
		for _, v := range item.Array() {
			if v.Type == gjson.Null {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, v.String())
		}
		table.AppendRow(cells...)
	}
	return table
}

// TsCode converts a plain six-digit symbol into Tushare's suffixed code.
func TsCode(symbol string) string {
	s := strings.TrimSpace(symbol)
	if strings.Contains(s, ".") {
		return strings.ToUpper(s)
	}
	if s != "" && s[0] == '6' {
		return s + ".SH"
	}
	return s + ".SZ"
}
