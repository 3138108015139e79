package dashboard

import "github.com/SrivP/stock-sentiment-analysis/internal/api"

// Card is one summary tile of the dashboard.
type Card struct {
	Title string
	Value string
	Tag   string // sentiment classification, empty for non-sentiment cards
	Up    bool
}

// BuildCards builds the summary cards for a comparison response.
func BuildCards(cmp *api.StockComparison) []Card {
	return []Card{
		{
			Title: "Average Sentiment",
			Value: FormatScore(cmp.AverageSentiment),
			Tag:   Classify(cmp.AverageSentiment),
			Up:    cmp.AverageSentiment >= 0,
		},
		{
			Title: "Price Change",
			Value: FormatChange(cmp.PriceChange),
			Up:    PercentUp(cmp.PriceChange),
		},
		{
			Title: "Reddit Sentiment",
			Value: FormatScore(cmp.RedditSentiment),
			Tag:   Classify(cmp.RedditSentiment),
			Up:    cmp.RedditSentiment >= 0,
		},
		{
			Title: "Market Sentiment",
			Value: FormatScore(cmp.YFinanceSentiment),
			Tag:   Classify(cmp.YFinanceSentiment),
			Up:    cmp.YFinanceSentiment >= 0,
		},
		{
			Title: "Average Price",
			Value: FormatScorePtr(cmp.AvgPrice),
			Up:    true,
		},
	}
}
