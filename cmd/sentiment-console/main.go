// One-shot dashboard: fetch sentiment and price history for a symbol
// and print the summary cards and chart to stdout.
//
// Usage:
//
//	go run cmd/sentiment-console/main.go -symbol AAPL -forecast
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/SrivP/stock-sentiment-analysis/internal/api"
	"github.com/SrivP/stock-sentiment-analysis/internal/config"
	"github.com/SrivP/stock-sentiment-analysis/internal/dashboard"
	"github.com/SrivP/stock-sentiment-analysis/internal/util"
)

func main() {
	symbol := flag.String("symbol", "", "ticker symbol to fetch (default from config)")
	forecast := flag.Bool("forecast", false, "append the 7-day price forecast to the chart")
	configPath := flag.String("config", "", "path to YAML config file")
	width := flag.Int("width", 100, "chart width in columns")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := util.NewLogger(cfg.Logging.Level)
	util.SetDefault(logger)

	sym := strings.ToUpper(strings.TrimSpace(*symbol))
	if sym == "" {
		sym = cfg.Dashboard.DefaultSymbol
	}
	if sym == "" {
		fmt.Fprintln(os.Stderr, "no symbol given and no default configured")
		os.Exit(1)
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout(), logger)
	ctx := context.Background()

	cmp, err := client.Compare(ctx, sym)
	if err != nil {
		logger.Error("fetching comparison", "symbol", sym, "error", err)
		fmt.Fprintf(os.Stderr, "fetch failed: %v\n", err)
		os.Exit(1)
	}

	bars := cmp.Historical
	var note string
	if *forecast {
		fc, err := client.Predict(ctx, sym)
		if err != nil {
			logger.Warn("forecast unavailable", "symbol", sym, "error", err)
			note = fmt.Sprintf("forecast unavailable: %v", err)
		} else {
			bars = dashboard.MergeForecast(bars, fc)
			note = fmt.Sprintf("forecast: %d days appended (r2 %s)",
				len(fc.PredictedNext7Days), dashboard.FormatScore(fc.TestR2Score))
		}
	}

	printDashboard(cmp, bars, cfg.Dashboard.ChartHeight, *width, note)
}

func printDashboard(cmp *api.StockComparison, bars []api.DailyBar, height, width int, note string) {
	fmt.Printf("========== %s ==========\n\n", cmp.Symbol)

	for _, c := range dashboard.BuildCards(cmp) {
		tag := ""
		if c.Tag != "" {
			tag = "  [" + c.Tag + "]"
		}
		fmt.Printf("  %-20s %12s%s\n", c.Title, c.Value, tag)
	}
	if last := dashboard.LastClose(bars); !math.IsNaN(last) {
		fmt.Printf("  %-20s %12s\n", "Last Close", dashboard.FormatPrice(last))
	}
	fmt.Println()

	if chart := dashboard.RenderChart(bars, height, width); chart != "" {
		fmt.Println(chart)
	} else {
		fmt.Println("  no historical data")
	}
	if note != "" {
		fmt.Println()
		fmt.Println(note)
	}
}
