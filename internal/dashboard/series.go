// Package dashboard provides formatting, series computation and chart
// rendering shared by the TUI and console clients.
package dashboard

import (
	"math"

	"github.com/SrivP/stock-sentiment-analysis/internal/api"
)

// ForecastStart returns the index of the first forecast row, located
// as the first bar without a realized close. It returns len(bars) when
// every bar is realized. The boundary position is never assumed.
func ForecastStart(bars []api.DailyBar) int {
	for i := range bars {
		if bars[i].Close == nil {
			return i
		}
	}
	return len(bars)
}

// BoundaryIndex returns the index of the last realized bar when
// forecast rows follow it, or -1 when the series has no boundary.
func BoundaryIndex(bars []api.DailyBar) int {
	start := ForecastStart(bars)
	if start == 0 || start == len(bars) {
		return -1
	}
	return start - 1
}

// MergeForecast appends forecast rows after the realized tail of bars,
// replacing any forecast rows already present so repeated merges give
// the same result. The last realized bar gets its predicted value set
// to its own close, anchoring the predicted line at the boundary. The
// input slice is not mutated.
func MergeForecast(bars []api.DailyBar, fc *api.StockForecast) []api.DailyBar {
	realized := bars[:ForecastStart(bars)]
	if fc == nil || len(fc.PredictedNext7Days) == 0 {
		return append([]api.DailyBar(nil), realized...)
	}

	merged := make([]api.DailyBar, 0, len(realized)+len(fc.PredictedNext7Days))
	merged = append(merged, realized...)
	if n := len(merged); n > 0 && merged[n-1].Close != nil {
		anchor := *merged[n-1].Close
		merged[n-1].PredictedClose = &anchor
	}
	for _, p := range fc.PredictedNext7Days {
		v := p.PredictedClose
		merged = append(merged, api.DailyBar{Date: p.Date, PredictedClose: &v})
	}
	return merged
}

// pickSeries extracts one column of the bar series as floats, with NaN
// holes where the bar has no value. Holes keep the chart from bridging
// gaps between points.
func pickSeries(bars []api.DailyBar, pick func(api.DailyBar) *float64) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		if v := pick(b); v != nil {
			out[i] = *v
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// CloseSeries extracts realized closing prices.
func CloseSeries(bars []api.DailyBar) []float64 {
	return pickSeries(bars, func(b api.DailyBar) *float64 { return b.Close })
}

// MA5Series extracts the 5-day moving average.
func MA5Series(bars []api.DailyBar) []float64 {
	return pickSeries(bars, func(b api.DailyBar) *float64 { return b.MA5 })
}

// PredictedSeries extracts predicted closing prices.
func PredictedSeries(bars []api.DailyBar) []float64 {
	return pickSeries(bars, func(b api.DailyBar) *float64 { return b.PredictedClose })
}

// LastClose returns the most recent realized close, or NaN when the
// series has none.
func LastClose(bars []api.DailyBar) float64 {
	for i := len(bars) - 1; i >= 0; i-- {
		if bars[i].Close != nil {
			return *bars[i].Close
		}
	}
	return math.NaN()
}

func hasValues(series []float64) bool {
	for _, v := range series {
		if !math.IsNaN(v) {
			return true
		}
	}
	return false
}
