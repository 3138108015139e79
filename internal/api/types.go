// Package api provides the HTTP client for the sentiment backend,
// decoding its comparison and forecast responses into Go types.
package api

import "fmt"

// DailyBar is one day of the historical price series. Close is nil on
// forecast rows appended after the realized tail, MA5 is nil until five
// closes exist, and PredictedClose is populated only on forecast rows.
type DailyBar struct {
	Date           string   `json:"date"`
	Close          *float64 `json:"close"`
	MA5            *float64 `json:"ma5"`
	PredictedClose *float64 `json:"predicted_close,omitempty"`
}

// StockComparison is the response of GET /compare/{symbol}. PriceChange
// and AvgPrice are pointers because the backend may omit them or emit a
// non-finite value, which decodes to nil.
type StockComparison struct {
	Symbol            string     `json:"symbol"`
	AverageSentiment  float64    `json:"average_sentiment"`
	PriceChange       *float64   `json:"price_change"`
	RedditSentiment   float64    `json:"reddit_sentiment"`
	YFinanceSentiment float64    `json:"yfinance_sentiment"`
	AvgPrice          *float64   `json:"avg_price,omitempty"`
	Historical        []DailyBar `json:"historical"`
}

// ForecastPoint is a single predicted trading day.
type ForecastPoint struct {
	Date           string  `json:"date"`
	PredictedClose float64 `json:"predicted_close"`
}

// StockForecast is the response of GET /predict/{symbol}.
type StockForecast struct {
	Symbol             string          `json:"symbol"`
	TestR2Score        float64         `json:"test_r2_score"`
	PredictedNext7Days []ForecastPoint `json:"predicted_next_7_days"`
}

// apiError is the backend's error body shape.
type apiError struct {
	Detail string `json:"detail"`
}

// Error is a failed backend request. Detail carries the backend's own
// message when the error body had one.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}
