// Package kline normalizes raw provider price tables into canonical OHLCV
// candle sequences: column canonicalisation, date parsing, calendar
// resampling to weekly/monthly bars, windowing and display projection.
package kline

import (
	"fmt"
	"sort"
	"time"
)

// Freq selects the candle aggregation period.
type Freq string

const (
	FreqDaily   Freq = "daily"
	FreqWeekly  Freq = "weekly"
	FreqMonthly Freq = "monthly"
)

// DefaultLimit is the window size applied when the caller passes limit <= 0.
const DefaultLimit = 30

// ParseFreq maps a request parameter onto a Freq. The empty string defaults
// to daily; anything else is rejected.
func ParseFreq(s string) (Freq, error) {
	switch Freq(s) {
	case "", FreqDaily:
		return FreqDaily, nil
	case FreqWeekly:
		return FreqWeekly, nil
	case FreqMonthly:
		return FreqMonthly, nil
	default:
		return "", fmt.Errorf("kline: unsupported freq %q", s)
	}
}

// Candle is one normalized OHLCV bar. VolumeStr and AmountStr are
// presentation values: volume scaled to units of 10,000 lots (万手) and
// turnover scaled to units of 100,000,000 CNY (亿), both rounded to two
// decimals. They do not round-trip back to raw numbers.
type Candle struct {
	Date      string  `json:"date"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	VolumeStr string  `json:"volume_str"`
	AmountStr string  `json:"amount_str"`
}

const (
	volumeUnitScale = 1e4
	amountUnitScale = 1e8
	volumeUnit      = "万手"
	amountUnit      = "亿"
	dateLayout      = "2006-01-02"
)

// bar is the working representation between parsing and projection.
type bar struct {
	date      time.Time
	open      float64
	high      float64
	low       float64
	close     float64
	volume    float64
	amount    float64
	hasVolume bool
	hasAmount bool
}

// Normalize converts a raw provider table into an ascending candle sequence
// of at most limit entries. Data-quality problems never produce an error:
// rows with unparseable dates or prices are dropped, and an empty or
// unusable table yields an empty result.
func Normalize(table RawTable, freq Freq, limit int) []Candle {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if table.Empty() {
		return nil
	}
	index := columnIndex(table.Columns)
	if _, ok := index[colDate]; !ok {
		return nil
	}

	bars := parseRows(table, index)
	if len(bars) == 0 {
		return nil
	}
	// Stable sort so rows sharing a date keep input order and dedupeDates
	// deterministically keeps the last one.
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].date.Before(bars[j].date) })
	bars = dedupeDates(bars)

	switch freq {
	case FreqWeekly:
		bars = resample(bars, weekStart)
	case FreqMonthly:
		bars = resample(bars, monthEnd)
	}

	if len(bars) > limit {
		bars = bars[len(bars)-limit:]
	}

	candles := make([]Candle, 0, len(bars))
	for _, b := range bars {
		candles = append(candles, project(b))
	}
	return candles
}

// parseRows extracts valid bars from the table. A row missing a parseable
// date or any present price column is discarded; volume and amount are
// required only when their columns exist.
func parseRows(table RawTable, index map[string]int) []bar {
	cell := func(row []string, canonical string) (string, bool) {
		i, ok := index[canonical]
		if !ok || i >= len(row) {
			return "", false
		}
		return row[i], true
	}

	_, volumePresent := index[colVolume]
	_, amountPresent := index[colAmount]

	bars := make([]bar, 0, len(table.Rows))
	for _, row := range table.Rows {
		raw, _ := cell(row, colDate)
		date, ok := parseDate(raw)
		if !ok {
			continue
		}
		b := bar{date: date}

		valid := true
		for _, field := range []struct {
			name string
			dst  *float64
		}{
			{colOpen, &b.open},
			{colHigh, &b.high},
			{colLow, &b.low},
			{colClose, &b.close},
		} {
			s, present := cell(row, field.name)
			if !present {
				valid = false
				break
			}
			v, ok := parseNumber(s)
			if !ok {
				valid = false
				break
			}
			*field.dst = v
		}
		if !valid {
			continue
		}

		if volumePresent {
			s, _ := cell(row, colVolume)
			v, ok := parseNumber(s)
			if !ok {
				continue
			}
			b.volume, b.hasVolume = v, true
		}
		if amountPresent {
			s, _ := cell(row, colAmount)
			v, ok := parseNumber(s)
			if !ok {
				continue
			}
			b.amount, b.hasAmount = v, true
		}
		bars = append(bars, b)
	}
	return bars
}

// dedupeDates keeps the last bar for each date; input must be sorted.
func dedupeDates(bars []bar) []bar {
	out := bars[:0]
	for _, b := range bars {
		if len(out) > 0 && out[len(out)-1].date.Equal(b.date) {
			out[len(out)-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}

// weekStart returns the Monday of the calendar week containing d.
func weekStart(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// monthEnd returns the last calendar day of the month containing d.
func monthEnd(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month()+1, 1, 0, 0, 0, 0, d.Location()).AddDate(0, 0, -1)
}

// resample aggregates sorted daily bars into calendar buckets keyed by
// bucketOf. Within a bucket: open from the first row, close from the last,
// high = max, low = min, volume and amount summed. Buckets with no rows emit
// nothing; there is no forward-filling.
func resample(bars []bar, bucketOf func(time.Time) time.Time) []bar {
	var out []bar
	for _, b := range bars {
		key := bucketOf(b.date)
		if len(out) > 0 && out[len(out)-1].date.Equal(key) {
			agg := &out[len(out)-1]
			if b.high > agg.high {
				agg.high = b.high
			}
			if b.low < agg.low {
				agg.low = b.low
			}
			agg.close = b.close
			if agg.hasVolume && b.hasVolume {
				agg.volume += b.volume
			} else {
				agg.hasVolume = false
			}
			if agg.hasAmount && b.hasAmount {
				agg.amount += b.amount
			} else {
				agg.hasAmount = false
			}
			continue
		}
		next := b
		next.date = key
		out = append(out, next)
	}
	return out
}

func project(b bar) Candle {
	c := Candle{
		Date:  b.date.Format(dateLayout),
		Open:  b.open,
		High:  b.high,
		Low:   b.low,
		Close: b.close,
	}
	if b.hasVolume {
		c.VolumeStr = fmt.Sprintf("%.2f %s", b.volume/volumeUnitScale, volumeUnit)
	}
	if b.hasAmount {
		c.AmountStr = fmt.Sprintf("%.2f %s", b.amount/amountUnitScale, amountUnit)
	}
	return c
}
