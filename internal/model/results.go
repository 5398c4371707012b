package model

// ConfidenceTier is the qualitative label derived from the largest class probability.
type ConfidenceTier string

// Confidence tiers.
const (
	ConfidenceHigh     ConfidenceTier = "High"
	ConfidenceModerate ConfidenceTier = "Moderate"
	ConfidenceLow      ConfidenceTier = "Low"
)

// Text returns the sentence shown under the predicted trend.
func (c ConfidenceTier) Text() string {
	switch c {
	case ConfidenceHigh:
		return "High confidence prediction"
	case ConfidenceModerate:
		return "Moderate confidence prediction"
	default:
		return "Low confidence - mixed signals"
	}
}

// ProbabilityRow is the rendered form of one class probability.
type ProbabilityRow struct {
	Trend    Trend
	Text     string  // e.g. "67.9%"
	BarWidth string  // CSS-style width, identical to Text
	Fraction float64 // Bar fill in [0,1]
}

// ResultsView is everything the results section displays for a prediction.
type ResultsView struct {
	Trend          Trend
	BadgeText      string
	BadgeClass     string
	Confidence     ConfidenceTier
	ConfidenceText string
	ChatbotMessage string
	FileName       string
	RiskProfile    string
	Horizon        string
	Probabilities  []ProbabilityRow
	SeriesLength   int
	WindowSize     int
}
