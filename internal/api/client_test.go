package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCompare(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/compare/AAPL" {
			t.Errorf("request path = %q, want %q", r.URL.Path, "/compare/AAPL")
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"symbol": "AAPL",
			"average_sentiment": 0.125,
			"price_change": -0.0532,
			"reddit_sentiment": 0.2,
			"yfinance_sentiment": 0.05,
			"historical": [
				{"date": "2025-08-01", "close": 172.5, "ma5": null},
				{"date": "2025-08-04", "close": 174.1, "ma5": 173.0}
			]
		}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, testLogger())
	cmp, err := client.Compare(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}

	if cmp.Symbol != "AAPL" {
		t.Errorf("Symbol = %q, want %q", cmp.Symbol, "AAPL")
	}
	if cmp.AverageSentiment != 0.125 {
		t.Errorf("AverageSentiment = %v, want 0.125", cmp.AverageSentiment)
	}
	if cmp.PriceChange == nil || *cmp.PriceChange != -0.0532 {
		t.Errorf("PriceChange = %v, want -0.0532", cmp.PriceChange)
	}
	if len(cmp.Historical) != 2 {
		t.Fatalf("len(Historical) = %d, want 2", len(cmp.Historical))
	}
	if cmp.Historical[0].MA5 != nil {
		t.Errorf("Historical[0].MA5 = %v, want nil", *cmp.Historical[0].MA5)
	}
	if cmp.Historical[1].MA5 == nil || *cmp.Historical[1].MA5 != 173.0 {
		t.Errorf("Historical[1].MA5 = %v, want 173.0", cmp.Historical[1].MA5)
	}
	if cmp.Historical[1].Close == nil || *cmp.Historical[1].Close != 174.1 {
		t.Errorf("Historical[1].Close = %v, want 174.1", cmp.Historical[1].Close)
	}
}

func TestCompareNaNPriceChange(t *testing.T) {
	// Python's json encoder writes a bare NaN literal for non-finite
	// floats; the client must decode it as an absent value.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"symbol": "NEWCO",
			"average_sentiment": 0.0,
			"price_change": NaN,
			"reddit_sentiment": 0.0,
			"yfinance_sentiment": 0.0,
			"historical": []
		}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, testLogger())
	cmp, err := client.Compare(context.Background(), "NEWCO")
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if cmp.PriceChange != nil {
		t.Errorf("PriceChange = %v, want nil for NaN payload", *cmp.PriceChange)
	}
}

func TestCompareNotFound(t *testing.T) {
	detail := "ZZZZ data not found or insufficient data from Yahoo Finance."
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"detail": "`+detail+`"}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, testLogger())
	_, err := client.Compare(context.Background(), "ZZZZ")
	if err == nil {
		t.Fatal("Compare should fail on 404")
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if apiErr.StatusCode != 404 {
		t.Errorf("StatusCode = %d, want 404", apiErr.StatusCode)
	}
	if apiErr.Error() != detail {
		t.Errorf("Error() = %q, want %q", apiErr.Error(), detail)
	}
}

func TestCompareGenericError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "upstream exploded")
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, testLogger())
	_, err := client.Compare(context.Background(), "AAPL")
	if err == nil {
		t.Fatal("Compare should fail on 500")
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if want := "request failed with status 500"; apiErr.Error() != want {
		t.Errorf("Error() = %q, want %q", apiErr.Error(), want)
	}
}

func TestPredict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict/TSLA" {
			t.Errorf("request path = %q, want %q", r.URL.Path, "/predict/TSLA")
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"symbol": "TSLA",
			"test_r2_score": 0.87,
			"predicted_next_7_days": [
				{"date": "2025-08-05", "predicted_close": 251.3},
				{"date": "2025-08-06", "predicted_close": 252.9}
			]
		}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, testLogger())
	fc, err := client.Predict(context.Background(), "TSLA")
	if err != nil {
		t.Fatalf("Predict returned error: %v", err)
	}

	if fc.Symbol != "TSLA" {
		t.Errorf("Symbol = %q, want %q", fc.Symbol, "TSLA")
	}
	if fc.TestR2Score != 0.87 {
		t.Errorf("TestR2Score = %v, want 0.87", fc.TestR2Score)
	}
	if len(fc.PredictedNext7Days) != 2 {
		t.Fatalf("len(PredictedNext7Days) = %d, want 2", len(fc.PredictedNext7Days))
	}
	if fc.PredictedNext7Days[0].PredictedClose != 251.3 {
		t.Errorf("PredictedNext7Days[0].PredictedClose = %v, want 251.3", fc.PredictedNext7Days[0].PredictedClose)
	}
}

func TestPredictContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewClient(srv.URL, 5*time.Second, testLogger())
	_, err := client.Predict(ctx, "TSLA")
	if err == nil {
		t.Fatal("Predict should fail when the context expires")
	}
}
