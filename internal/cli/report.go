package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/trendscope/internal/model"
	"github.com/Veraticus/trendscope/internal/presenter"
	"github.com/olekukonko/tablewriter"
)

const barWidth = 24

// RenderResults formats a results view for the terminal.
func RenderResults(view model.ResultsView) (string, error) {
	var b strings.Builder

	b.WriteString(FormatBadge(view.Trend))
	b.WriteString("  ")
	b.WriteString(SubtleStyle.Render(view.ConfidenceText))
	b.WriteString("\n\n")

	if err := writeProbabilityTable(&b, view.Probabilities); err != nil {
		return "", err
	}

	if view.ChatbotMessage != "" {
		b.WriteString("\n")
		b.WriteString(RobotIcon + " ")
		b.WriteString(presenter.RenderSpans(presenter.Spans(view.ChatbotMessage), BoldStyle.Render))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(metaLine(view)))

	return RenderBox("Prediction Result", b.String()), nil
}

func writeProbabilityTable(w io.Writer, rows []model.ProbabilityRow) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Trend", "Probability", ""}),
	)

	for _, row := range rows {
		if err := table.Append([]string{
			string(row.Trend),
			row.Text,
			Bar(row.Fraction, barWidth),
		}); err != nil {
			return fmt.Errorf("failed to add %s row: %w", row.Trend, err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render probability table: %w", err)
	}
	return nil
}

// Bar draws a fixed-width horizontal bar filled to fraction.
func Bar(fraction float64, width int) string {
	fraction = min(max(fraction, 0), 1)
	filled := int(fraction*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func metaLine(view model.ResultsView) string {
	parts := []string{
		"File: " + view.FileName,
		fmt.Sprintf("Series length: %d", view.SeriesLength),
		fmt.Sprintf("Window size: %d", view.WindowSize),
	}
	if view.RiskProfile != "" {
		parts = append(parts, "Risk profile: "+view.RiskProfile)
	}
	if view.Horizon != "" {
		parts = append(parts, "Horizon: "+view.Horizon)
	}
	return strings.Join(parts, " • ")
}

// WriteJSON writes the raw prediction response as indented JSON.
func WriteJSON(w io.Writer, resp *model.PredictionResponse) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return fmt.Errorf("failed to encode prediction: %w", err)
	}
	return nil
}
