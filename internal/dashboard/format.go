package dashboard

import (
	"fmt"
	"math"
)

// Direction glyphs for the price-change card. Zero counts as up.
const (
	GlyphUp   = "▲"
	GlyphDown = "▼"
)

// Sentiment classification thresholds, following the VADER
// compound-score convention.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// FormatScore formats a sentiment score or mean price to three decimal
// places, or "N/A" for non-finite values.
func FormatScore(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	return fmt.Sprintf("%.3f", v)
}

// FormatScorePtr is FormatScore for optional values.
func FormatScorePtr(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return FormatScore(*v)
}

// FormatPercent formats a change ratio as value*100 with two decimal
// places and a percent sign, or "N/A" when the value is absent or
// non-finite.
func FormatPercent(v *float64) string {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", *v*100)
}

// PercentUp reports whether a change renders with the up glyph. Zero
// counts as up; absent or non-finite values count as down.
func PercentUp(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && *v >= 0
}

// FormatChange renders a price change ratio with its direction glyph.
// Absent or non-finite values render as a bare "N/A": the glyph marks
// the sign of a figure, and there is no figure.
func FormatChange(v *float64) string {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return "N/A"
	}
	if PercentUp(v) {
		return GlyphUp + " " + FormatPercent(v)
	}
	return GlyphDown + " " + FormatPercent(v)
}

// Classify labels a sentiment score as Positive, Negative or Neutral.
func Classify(score float64) string {
	switch {
	case math.IsNaN(score):
		return "Neutral"
	case score >= positiveThreshold:
		return "Positive"
	case score <= negativeThreshold:
		return "Negative"
	default:
		return "Neutral"
	}
}

// FormatPrice formats a closing price with two decimal places.
func FormatPrice(p float64) string {
	if math.IsNaN(p) {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", p)
}
