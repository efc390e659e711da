package eastmoney

import (
	"context"
	"fmt"
	"time"

	"github.com/tidwall/gjson"

	"astock-api/pkg/market"
)

// clist request fields: f2 price, f3 change pct, f6 volume, f12 code,
// f14 name, f20 total market cap.
const (
	listFields   = "f2,f3,f6,f12,f14,f20"
	listPageSize = 500
	// All A-share boards: Shenzhen main/ChiNext, Shanghai main/STAR.
	listMarkets = "m:0+t:6,m:0+t:80,m:1+t:2,m:1+t:23"

	// stock/get fields: f43 price, f57 code, f58 name, f47 volume,
	// f116 market cap, f170 change pct.
	quoteFields = "f43,f47,f57,f58,f116,f170"
)

// ListStocks pages through the clist feed and returns the full universe.
func (c *Client) ListStocks(ctx context.Context) ([]market.Stock, error) {
	now := time.Now()
	var all []market.Stock
	for page := 1; ; page++ {
		url := fmt.Sprintf("%s?pn=%d&pz=%d&po=0&np=1&fltt=2&invt=2&fid=f12&fs=%s&fields=%s",
			c.listURL, page, listPageSize, listMarkets, listFields)
		body, err := c.get(ctx, url)
		if err != nil {
			return nil, err
		}
		diff := gjson.GetBytes(body, "data.diff")
		if !diff.Exists() {
			break
		}
		count := 0
		diff.ForEach(func(_, item gjson.Result) bool {
			count++
			code := item.Get("f12").String()
			if code == "" {
				return true
			}
			all = append(all, market.Stock{
				Symbol:        code,
				Name:          item.Get("f14").String(),
				Exchange:      market.ExchangeFor(code),
				CurrentPrice:  item.Get("f2").Float(),
				ChangePercent: item.Get("f3").Float(),
				Volume:        item.Get("f6").Int(),
				MarketCap:     item.Get("f20").Float(),
				UpdatedAt:     now,
			})
			return true
		})
		total := int(gjson.GetBytes(body, "data.total").Int())
		if count == 0 || count < listPageSize || len(all) >= total {
			break
		}
	}
	return all, nil
}

// GetStock fetches one symbol from the single-quote endpoint.
func (c *Client) GetStock(ctx context.Context, symbol string) (*market.Stock, error) {
	url := fmt.Sprintf("%s?invt=2&fltt=2&secid=%s&fields=%s", c.quoteURL, SecID(symbol), quoteFields)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	if rc := gjson.GetBytes(body, "rc"); rc.Exists() && rc.Int() != 0 {
		return nil, market.ErrSymbolNotFound
	}
	data := gjson.GetBytes(body, "data")
	if !data.Exists() || data.Type == gjson.Null {
		return nil, market.ErrSymbolNotFound
	}
	name := data.Get("f58").String()
	if name == "" {
		return nil, market.ErrSymbolNotFound
	}
	return &market.Stock{
		Symbol:        symbol,
		Name:          name,
		Exchange:      market.ExchangeFor(symbol),
		CurrentPrice:  data.Get("f43").Float(),
		ChangePercent: data.Get("f170").Float(),
		Volume:        data.Get("f47").Int(),
		MarketCap:     data.Get("f116").Float(),
		UpdatedAt:     time.Now(),
	}, nil
}
