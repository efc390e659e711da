package kline

import (
	"strconv"
	"strings"
	"time"
)

// RawTable is a provider price table: labeled columns over string cells,
// exactly as decoded from the upstream response. Column labels may use the
// provider's native convention (Chinese or English); canonicalisation happens
// inside Normalize.
type RawTable struct {
	Columns []string
	Rows    [][]string
}

// Empty reports whether the table carries no rows.
func (t RawTable) Empty() bool {
	return len(t.Rows) == 0
}

// AppendRow adds a row, padding or truncating to the column count.
func (t *RawTable) AppendRow(cells ...string) {
	row := make([]string, len(t.Columns))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// canonical column names used by the normalizer.
const (
	colDate   = "date"
	colOpen   = "open"
	colClose  = "close"
	colHigh   = "high"
	colLow    = "low"
	colVolume = "volume"
	colAmount = "amount"
)

// columnAliases maps known provider labels onto canonical names. Covers the
// EastMoney Chinese headers and the Tushare English field names.
var columnAliases = map[string]string{
	"日期":         colDate,
	"开盘":         colOpen,
	"收盘":         colClose,
	"最高":         colHigh,
	"最低":         colLow,
	"成交量":        colVolume,
	"成交额":        colAmount,
	"date":       colDate,
	"trade_date": colDate,
	"open":       colOpen,
	"close":      colClose,
	"high":       colHigh,
	"low":        colLow,
	"volume":     colVolume,
	"vol":        colVolume,
	"amount":     colAmount,
}

// columnIndex resolves canonical name -> column position. Unknown labels are
// ignored; the first column claiming a canonical name wins.
func columnIndex(columns []string) map[string]int {
	index := make(map[string]int, len(columns))
	for i, label := range columns {
		key := strings.ToLower(strings.TrimSpace(label))
		canonical, ok := columnAliases[key]
		if !ok {
			continue
		}
		if _, taken := index[canonical]; taken {
			continue
		}
		index[canonical] = i
	}
	return index
}

var dateLayouts = []string{
	"2006-01-02",
	"20060102",
	"2006/01/02",
	"2006-01-02 15:04:05",
}

func parseDate(cell string) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// parseNumber parses a numeric cell, tolerating thousands separators.
// Returns ok=false for empty, dash or unparseable cells.
func parseNumber(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" || s == "-" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
