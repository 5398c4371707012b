package model

import (
	"math"
	"strings"
)

// Trend is the predicted price direction.
type Trend string

// Known trend labels returned by the prediction API.
const (
	TrendDown     Trend = "Down"
	TrendSideways Trend = "Sideways"
	TrendUp       Trend = "Up"
)

// Trends lists the classes in the order the API reports them.
var Trends = []Trend{TrendDown, TrendSideways, TrendUp}

// Class returns the lowercase style class for the trend badge.
func (t Trend) Class() string {
	return strings.ToLower(string(t))
}

// Known reports whether t is one of the three trend classes.
func (t Trend) Known() bool {
	switch t {
	case TrendDown, TrendSideways, TrendUp:
		return true
	default:
		return false
	}
}

// FormValues holds the raw, unparsed prediction parameters as the user typed them.
type FormValues struct {
	YMin        string
	YMax        string
	NPoints     string
	RiskProfile string
	Horizon     string
}

// PredictionRequest is a validated request ready to be sent to the API.
type PredictionRequest struct {
	RiskProfile string `default:"medium" validate:"required"`
	Horizon     string `default:"short" validate:"required"`
	Image       SelectedImage
	YMin        float64 `validate:"finite"`
	YMax        float64 `validate:"finite,gtfield=YMin"`
	NPoints     int     `default:"300" validate:"gte=1"`
}

// Probabilities holds the per-class probabilities of a prediction.
type Probabilities struct {
	Down     float64 `json:"Down"`
	Sideways float64 `json:"Sideways"`
	Up       float64 `json:"Up"`
}

// Of returns the probability of a single class.
func (p Probabilities) Of(t Trend) float64 {
	switch t {
	case TrendDown:
		return p.Down
	case TrendSideways:
		return p.Sideways
	case TrendUp:
		return p.Up
	default:
		return 0
	}
}

// Max returns the largest class probability.
func (p Probabilities) Max() float64 {
	return math.Max(p.Down, math.Max(p.Sideways, p.Up))
}

// Sum returns the total probability mass, which should be close to 1.
func (p Probabilities) Sum() float64 {
	return p.Down + p.Sideways + p.Up
}

// PredictionMeta describes how the server produced the prediction.
type PredictionMeta struct {
	FileName       string `json:"file_name"`
	RiskProfile    string `json:"risk_profile,omitempty"`
	Horizon        string `json:"horizon,omitempty"`
	SeriesLength   int    `json:"series_length"`
	UsedWindowSize int    `json:"used_window_size"`
}

// PredictionResponse is the API's answer to a prediction request.
type PredictionResponse struct {
	ClassIndex     *int           `json:"class_index,omitempty"`
	Trend          Trend          `json:"trend"`
	ChatbotMessage string         `json:"chatbot_message"`
	Meta           PredictionMeta `json:"meta"`
	Probabilities  Probabilities  `json:"probabilities"`
}
