// Package presenter projects prediction responses onto display values.
package presenter

import (
	"fmt"
	"math"

	"github.com/Veraticus/trendscope/internal/model"
)

// Confidence thresholds on the largest class probability. Both are inclusive lower bounds.
const (
	HighConfidenceThreshold     = 0.75
	ModerateConfidenceThreshold = 0.55
)

// ConfidenceFor maps the maximum class probability to a confidence tier.
func ConfidenceFor(maxProbability float64) model.ConfidenceTier {
	switch {
	case maxProbability >= HighConfidenceThreshold:
		return model.ConfidenceHigh
	case maxProbability >= ModerateConfidenceThreshold:
		return model.ConfidenceModerate
	default:
		return model.ConfidenceLow
	}
}

// FormatPercent renders a probability as a percentage with one decimal, e.g. 0.6789 -> "67.9%".
func FormatPercent(probability float64) string {
	return fmt.Sprintf("%.1f%%", probability*100)
}

// Present builds the results view for resp. It is a pure function of its input.
func Present(resp model.PredictionResponse) model.ResultsView {
	tier := ConfidenceFor(resp.Probabilities.Max())

	rows := make([]model.ProbabilityRow, 0, len(model.Trends))
	for _, trend := range model.Trends {
		p := resp.Probabilities.Of(trend)
		text := FormatPercent(p)
		rows = append(rows, model.ProbabilityRow{
			Trend:    trend,
			Text:     text,
			BarWidth: text,
			Fraction: clamp(p),
		})
	}

	return model.ResultsView{
		Trend:          resp.Trend,
		BadgeText:      string(resp.Trend),
		BadgeClass:     "trend-badge " + resp.Trend.Class(),
		Confidence:     tier,
		ConfidenceText: tier.Text(),
		Probabilities:  rows,
		ChatbotMessage: resp.ChatbotMessage,
		SeriesLength:   resp.Meta.SeriesLength,
		WindowSize:     resp.Meta.UsedWindowSize,
		FileName:       resp.Meta.FileName,
		RiskProfile:    resp.Meta.RiskProfile,
		Horizon:        resp.Meta.Horizon,
	}
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(1, math.Max(0, v))
}
