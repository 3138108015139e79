package dashboard

import (
	"testing"

	"github.com/SrivP/stock-sentiment-analysis/internal/api"
)

func TestBuildCards(t *testing.T) {
	cmp := &api.StockComparison{
		Symbol:            "AAPL",
		AverageSentiment:  0.125,
		PriceChange:       fptr(-0.0532),
		RedditSentiment:   -0.2,
		YFinanceSentiment: 0.01,
	}

	cards := BuildCards(cmp)
	if len(cards) != 5 {
		t.Fatalf("len(cards) = %d, want 5", len(cards))
	}

	if cards[0].Value != "0.125" || cards[0].Tag != "Positive" || !cards[0].Up {
		t.Errorf("average sentiment card = %+v, want 0.125/Positive/up", cards[0])
	}
	if cards[1].Value != "▼ -5.32%" || cards[1].Up {
		t.Errorf("price change card = %+v, want ▼ -5.32%% and down", cards[1])
	}
	if cards[2].Value != "-0.200" || cards[2].Tag != "Negative" || cards[2].Up {
		t.Errorf("reddit card = %+v, want -0.200/Negative/down", cards[2])
	}
	if cards[3].Title != "Market Sentiment" || cards[3].Value != "0.010" || cards[3].Tag != "Neutral" || !cards[3].Up {
		t.Errorf("market sentiment card = %+v, want 0.010/Neutral/up", cards[3])
	}
	if cards[4].Title != "Average Price" || cards[4].Value != "N/A" {
		t.Errorf("average price card = %+v, want N/A when absent", cards[4])
	}
}

func TestBuildCardsAvgPrice(t *testing.T) {
	cmp := &api.StockComparison{AvgPrice: fptr(184.3219)}
	cards := BuildCards(cmp)
	if cards[4].Value != "184.322" {
		t.Errorf("avg price card value = %q, want %q", cards[4].Value, "184.322")
	}
}

func TestBuildCardsAbsentChange(t *testing.T) {
	cards := BuildCards(&api.StockComparison{})
	if cards[1].Value != "N/A" {
		t.Errorf("price change card value = %q, want %q", cards[1].Value, "N/A")
	}
	if cards[1].Up {
		t.Error("absent price change should render as down")
	}
}
