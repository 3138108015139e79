package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client talks to the sentiment backend over HTTP.
type Client struct {
	rest   *resty.Client
	logger *slog.Logger
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	rest := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeaders(map[string]string{
			"Accept":     "application/json",
			"User-Agent": "stock-sentiment-dash/1.0",
		})

	return &Client{
		rest:   rest,
		logger: logger,
	}
}

// Compare fetches sentiment scores and the historical price series for
// a symbol.
func (c *Client) Compare(ctx context.Context, symbol string) (*StockComparison, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		Get("/compare/" + url.PathEscape(symbol))
	if err != nil {
		return nil, fmt.Errorf("fetching comparison for %s: %w", symbol, err)
	}
	if resp.StatusCode() != 200 {
		return nil, errorFromResponse(resp)
	}

	var cmp StockComparison
	if err := json.Unmarshal(sanitizeJSON(resp.Body()), &cmp); err != nil {
		return nil, fmt.Errorf("parsing comparison response: %w", err)
	}
	c.logger.Debug("comparison fetched", "symbol", cmp.Symbol, "bars", len(cmp.Historical))
	return &cmp, nil
}

// Predict fetches the seven day price forecast for a symbol.
func (c *Client) Predict(ctx context.Context, symbol string) (*StockForecast, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		Get("/predict/" + url.PathEscape(symbol))
	if err != nil {
		return nil, fmt.Errorf("fetching forecast for %s: %w", symbol, err)
	}
	if resp.StatusCode() != 200 {
		return nil, errorFromResponse(resp)
	}

	var fc StockForecast
	if err := json.Unmarshal(sanitizeJSON(resp.Body()), &fc); err != nil {
		return nil, fmt.Errorf("parsing forecast response: %w", err)
	}
	c.logger.Debug("forecast fetched", "symbol", fc.Symbol, "days", len(fc.PredictedNext7Days))
	return &fc, nil
}

// errorFromResponse builds an *Error from a non-200 response, keeping
// the backend's detail message when the body carries one.
func errorFromResponse(resp *resty.Response) error {
	var body apiError
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Detail != "" {
		return &Error{StatusCode: resp.StatusCode(), Detail: body.Detail}
	}
	return &Error{StatusCode: resp.StatusCode()}
}
