package eastmoney

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"astock-api/pkg/kline"
)

// fields2 f51..f57 map onto date, open, close, high, low, volume, amount.
// The table keeps the feed's native Chinese headers; canonicalisation is
// kline.Normalize's job.
var klineColumns = []string{"日期", "开盘", "收盘", "最高", "最低", "成交量", "成交额"}

// DailyHistory fetches the forward-adjusted daily candle history for a
// symbol, covering the full available span. An empty or missing payload is
// returned as an empty table, not an error.
func (c *Client) DailyHistory(ctx context.Context, symbol string) (kline.RawTable, error) {
	url := fmt.Sprintf("%s?secid=%s&fields1=f1,f2,f3,f4,f5,f6&fields2=f51,f52,f53,f54,f55,f56,f57&klt=101&fqt=1&beg=19700101&end=20500101",
		c.klineURL, SecID(symbol))
	body, err := c.get(ctx, url)
	if err != nil {
		return kline.RawTable{}, err
	}

	table := kline.RawTable{Columns: klineColumns}
	rows := gjson.GetBytes(body, "data.klines")
	if !rows.Exists() || !rows.IsArray() {
		return table, nil
	}
	for _, row := range rows.Array() {
		parts := strings.Split(row.String(), ",")
		if len(parts) < len(klineColumns) {
			continue
		}
		table.AppendRow(parts[:len(klineColumns)]...)
	}
	return table, nil
}
