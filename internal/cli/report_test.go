package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Veraticus/trendscope/internal/model"
	"github.com/Veraticus/trendscope/internal/presenter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upResponse() model.PredictionResponse {
	return model.PredictionResponse{
		Trend:          model.TrendUp,
		ChatbotMessage: "Momentum looks **bullish** for now.",
		Probabilities:  model.Probabilities{Down: 0.1, Sideways: 0.2, Up: 0.7},
		Meta: model.PredictionMeta{
			FileName:       "chart.png",
			SeriesLength:   300,
			UsedWindowSize: 64,
			RiskProfile:    "moderate",
			Horizon:        "1d",
		},
	}
}

func TestRenderResults(t *testing.T) {
	out, err := RenderResults(presenter.Present(upResponse()))
	require.NoError(t, err)

	for _, want := range []string{
		"Prediction Result",
		"Up",
		"Moderate confidence prediction",
		"70.0%",
		"10.0%",
		"20.0%",
		"bullish",
		"File: chart.png",
		"Series length: 300",
		"Window size: 64",
		"Risk profile: moderate",
		"Horizon: 1d",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "**", "bold markers are rendered, not printed")
}

func TestRenderResults_Deterministic(t *testing.T) {
	view := presenter.Present(upResponse())
	first, err := RenderResults(view)
	require.NoError(t, err)
	second, err := RenderResults(view)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBar(t *testing.T) {
	tests := []struct {
		name     string
		fraction float64
		width    int
		filled   int
	}{
		{name: "empty", fraction: 0, width: 10, filled: 0},
		{name: "full", fraction: 1, width: 10, filled: 10},
		{name: "rounded", fraction: 0.6789, width: 10, filled: 7},
		{name: "clamped high", fraction: 1.5, width: 4, filled: 4},
		{name: "clamped low", fraction: -0.5, width: 4, filled: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := Bar(tt.fraction, tt.width)
			assert.Equal(t, tt.filled, strings.Count(bar, "█"))
			assert.Equal(t, tt.width-tt.filled, strings.Count(bar, "░"))
		})
	}
}

func TestWriteJSON(t *testing.T) {
	resp := upResponse()
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, &resp))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Up", decoded["trend"])
	assert.Equal(t, "Momentum looks **bullish** for now.", decoded["chatbot_message"])
}
