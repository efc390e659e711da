package kline

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var chineseColumns = []string{"日期", "开盘", "收盘", "最高", "最低", "成交量", "成交额"}

// dailyTable builds n consecutive business-day rows starting at start.
func dailyTable(start time.Time, n int) RawTable {
	table := RawTable{Columns: chineseColumns}
	day := start
	for i := 0; i < n; {
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			base := 10.0 + float64(i)
			table.AppendRow(
				day.Format("2006-01-02"),
				fmt.Sprintf("%.2f", base),
				fmt.Sprintf("%.2f", base+0.5),
				fmt.Sprintf("%.2f", base+1.0),
				fmt.Sprintf("%.2f", base-1.0),
				"10000",
				"200000000",
			)
			i++
		}
		day = day.AddDate(0, 0, 1)
	}
	return table
}

func TestParseFreq(t *testing.T) {
	for s, want := range map[string]Freq{
		"":        FreqDaily,
		"daily":   FreqDaily,
		"weekly":  FreqWeekly,
		"monthly": FreqMonthly,
	} {
		got, err := ParseFreq(s)
		require.NoError(t, err, "ParseFreq(%q)", s)
		assert.Equal(t, want, got)
	}
	_, err := ParseFreq("hourly")
	assert.Error(t, err, "hourly is not a supported freq")
}

func TestNormalizeEmptyTable(t *testing.T) {
	assert.Empty(t, Normalize(RawTable{}, FreqDaily, 30))
	assert.Empty(t, Normalize(RawTable{Columns: chineseColumns}, FreqDaily, 30))
}

func TestNormalizeMissingDateColumn(t *testing.T) {
	table := RawTable{Columns: []string{"开盘", "收盘", "最高", "最低"}}
	table.AppendRow("10", "11", "12", "9")
	assert.Empty(t, Normalize(table, FreqDaily, 30), "no date column means no data")
}

func TestNormalizeDropsUnparseableDates(t *testing.T) {
	table := RawTable{Columns: chineseColumns}
	table.AppendRow("2024-03-04", "10", "10.5", "11", "9.5", "10000", "2e8")
	table.AppendRow("not-a-date", "10", "10.5", "11", "9.5", "10000", "2e8")
	table.AppendRow("2024-03-05", "11", "11.5", "12", "10.5", "10000", "2e8")

	candles := Normalize(table, FreqDaily, 30)
	require.Len(t, candles, 2, "malformed row dropped, not fatal")
	assert.Equal(t, "2024-03-04", candles[0].Date)
	assert.Equal(t, "2024-03-05", candles[1].Date)
}

func TestNormalizeAllRowsMalformed(t *testing.T) {
	table := RawTable{Columns: chineseColumns}
	table.AppendRow("n/a", "10", "10.5", "11", "9.5", "10000", "2e8")
	table.AppendRow("", "10", "10.5", "11", "9.5", "10000", "2e8")
	assert.Empty(t, Normalize(table, FreqDaily, 30))
}

func TestNormalizeSortsAscending(t *testing.T) {
	table := RawTable{Columns: chineseColumns}
	table.AppendRow("2024-03-06", "12", "12.5", "13", "11.5", "10000", "2e8")
	table.AppendRow("2024-03-04", "10", "10.5", "11", "9.5", "10000", "2e8")
	table.AppendRow("2024-03-05", "11", "11.5", "12", "10.5", "10000", "2e8")

	candles := Normalize(table, FreqDaily, 30)
	require.Len(t, candles, 3)
	for i := 1; i < len(candles); i++ {
		assert.Less(t, candles[i-1].Date, candles[i].Date, "dates strictly ascending")
	}
}

func TestNormalizeLimitWindow(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	table := dailyTable(start, 40)

	candles := Normalize(table, FreqDaily, 10)
	require.Len(t, candles, 10, "windowed to the last limit rows")

	all := Normalize(table, FreqDaily, 1000)
	require.Len(t, all, 40, "never padded beyond available bars")
	assert.Equal(t, all[len(all)-10:], candles, "window keeps the most recent rows")
}

func TestNormalizeWeeklyResampling(t *testing.T) {
	// 40 business days from Tue 2024-01-02 span 9 calendar weeks.
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	table := dailyTable(start, 40)

	weekly := Normalize(table, FreqWeekly, 1000)
	daily := Normalize(table, FreqDaily, 1000)
	require.NotEmpty(t, weekly)
	assert.LessOrEqual(t, len(weekly), len(daily), "resampling never increases bar count")

	for i, c := range weekly {
		d, err := time.Parse("2006-01-02", c.Date)
		require.NoError(t, err)
		assert.Equal(t, time.Monday, d.Weekday(), "weekly bars keyed by Monday week start")
		if i > 0 {
			assert.Less(t, weekly[i-1].Date, c.Date)
		}
	}

	limited := Normalize(table, FreqWeekly, 5)
	assert.LessOrEqual(t, len(limited), 5)
	assert.Equal(t, weekly[len(weekly)-len(limited):], limited)
}

func TestNormalizeWeeklyAggregates(t *testing.T) {
	table := RawTable{Columns: chineseColumns}
	// One full trading week: Mon 2024-03-04 .. Fri 2024-03-08.
	table.AppendRow("2024-03-04", "10", "10.2", "10.9", "9.8", "100", "1000")
	table.AppendRow("2024-03-05", "10.2", "10.6", "11.5", "10.0", "150", "1500")
	table.AppendRow("2024-03-06", "10.6", "10.4", "10.8", "9.2", "120", "1200")
	table.AppendRow("2024-03-07", "10.4", "10.9", "11.1", "10.3", "130", "1300")
	table.AppendRow("2024-03-08", "10.9", "11.3", "11.4", "10.7", "110", "1100")

	weekly := Normalize(table, FreqWeekly, 30)
	require.Len(t, weekly, 1)
	c := weekly[0]
	assert.Equal(t, "2024-03-04", c.Date)
	assert.Equal(t, 10.0, c.Open, "open from first row of the bucket")
	assert.Equal(t, 11.3, c.Close, "close from last row of the bucket")
	assert.Equal(t, 11.5, c.High, "high = max of highs")
	assert.Equal(t, 9.2, c.Low, "low = min of lows")
	assert.Equal(t, "0.06 万手", c.VolumeStr, "volume summed: 610/1e4")
	assert.Equal(t, "0.00 亿", c.AmountStr, "amount summed: 6100/1e8")
}

func TestNormalizeMonthlyResampling(t *testing.T) {
	table := RawTable{Columns: chineseColumns}
	table.AppendRow("2024-01-30", "10", "10.5", "11", "9.5", "100", "1000")
	table.AppendRow("2024-01-31", "10.5", "10.8", "11.2", "10.1", "100", "1000")
	table.AppendRow("2024-02-01", "10.8", "11.0", "11.6", "10.4", "100", "1000")
	table.AppendRow("2024-02-29", "11.0", "11.4", "11.9", "10.8", "100", "1000")

	monthly := Normalize(table, FreqMonthly, 30)
	require.Len(t, monthly, 2)
	assert.Equal(t, "2024-01-31", monthly[0].Date, "monthly bars keyed by last calendar day")
	assert.Equal(t, "2024-02-29", monthly[1].Date)
	assert.Equal(t, 10.0, monthly[0].Open)
	assert.Equal(t, 10.8, monthly[0].Close)
	assert.Equal(t, 11.9, monthly[1].High)
	assert.Equal(t, 10.4, monthly[1].Low)
}

func TestNormalizeSkipsEmptyBuckets(t *testing.T) {
	table := RawTable{Columns: chineseColumns}
	// Two trading weeks separated by a full-week gap; no forward-filled bucket.
	table.AppendRow("2024-03-04", "10", "10.5", "11", "9.5", "100", "1000")
	table.AppendRow("2024-03-18", "11", "11.5", "12", "10.5", "100", "1000")

	weekly := Normalize(table, FreqWeekly, 30)
	require.Len(t, weekly, 2)
	assert.Equal(t, "2024-03-04", weekly[0].Date)
	assert.Equal(t, "2024-03-18", weekly[1].Date)
}

func TestDisplayProjection(t *testing.T) {
	table := RawTable{Columns: chineseColumns}
	table.AppendRow("2024-03-04", "10", "10.5", "11", "9.5", "123456789", "987654321")

	candles := Normalize(table, FreqDaily, 30)
	require.Len(t, candles, 1)
	assert.Equal(t, "12345.68 万手", candles[0].VolumeStr)
	assert.Equal(t, "9.88 亿", candles[0].AmountStr)
}

func TestNormalizeWithoutAmountColumn(t *testing.T) {
	table := RawTable{Columns: []string{"日期", "开盘", "收盘", "最高", "最低", "成交量"}}
	table.AppendRow("2024-03-04", "10", "10.5", "11", "9.5", "20000")
	table.AppendRow("2024-03-05", "10.5", "10.8", "11.2", "10.1", "30000")

	weekly := Normalize(table, FreqWeekly, 30)
	require.Len(t, weekly, 1)
	assert.Equal(t, "5.00 万手", weekly[0].VolumeStr, "volume still aggregated")
	assert.Empty(t, weekly[0].AmountStr, "no amount column, no amount display")
}

func TestNormalizeDropsRowsWithBadPrices(t *testing.T) {
	table := RawTable{Columns: chineseColumns}
	table.AppendRow("2024-03-04", "10", "10.5", "11", "9.5", "100", "1000")
	table.AppendRow("2024-03-05", "-", "10.8", "11.2", "10.1", "100", "1000")
	table.AppendRow("2024-03-06", "10.8", "11.0", "garbage", "10.4", "100", "1000")

	candles := Normalize(table, FreqDaily, 30)
	require.Len(t, candles, 1)
	assert.Equal(t, "2024-03-04", candles[0].Date)
}

func TestNormalizeEnglishColumns(t *testing.T) {
	table := RawTable{Columns: []string{"trade_date", "open", "high", "low", "close", "vol", "amount"}}
	table.AppendRow("20240304", "10", "11", "9.5", "10.5", "100", "1000")

	candles := Normalize(table, FreqDaily, 30)
	require.Len(t, candles, 1)
	assert.Equal(t, "2024-03-04", candles[0].Date)
	assert.Equal(t, 11.0, candles[0].High)
}

func TestNormalizeDuplicateDatesAmongManyRows(t *testing.T) {
	table := RawTable{Columns: chineseColumns}
	const dup = "2024-03-15"
	day := time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC)
	nextDupOpen := 1
	for i := 0; i < 150; i++ {
		table.AppendRow(day.Format("2006-01-02"), "10", "10.5", "11", "9.5", "100", "1000")
		if i == 10 || i == 100 || i == 140 {
			table.AppendRow(dup, fmt.Sprintf("%d", nextDupOpen), "10.5", "11", "9.5", "100", "1000")
			nextDupOpen++
		}
		day = day.AddDate(0, 0, -1)
	}

	candles := Normalize(table, FreqDaily, 1000)
	require.Len(t, candles, 151, "150 distinct dates plus the collapsed duplicate")
	assert.Equal(t, dup, candles[0].Date, "the duplicated date predates the rest")
	assert.Equal(t, 3.0, candles[0].Open, "last appended row wins regardless of position")
}

func TestNormalizeDuplicateDatesCollapse(t *testing.T) {
	table := RawTable{Columns: chineseColumns}
	table.AppendRow("2024-03-04", "10", "10.5", "11", "9.5", "100", "1000")
	table.AppendRow("2024-03-04", "10.1", "10.6", "11.1", "9.6", "200", "2000")

	candles := Normalize(table, FreqDaily, 30)
	require.Len(t, candles, 1, "no duplicate output dates")
	assert.Equal(t, 10.1, candles[0].Open, "last row wins for a duplicated date")
}
