package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/trendscope/internal/model"
	"github.com/Veraticus/trendscope/internal/presenter"
	"github.com/Veraticus/trendscope/internal/tui/themes"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ResultsModel renders a prediction: badge, confidence, probability bars,
// explanation and metadata.
type ResultsModel struct {
	theme themes.Theme
	view  *model.ResultsView
	bars  map[model.Trend]progress.Model
	width int
}

// NewResultsModel creates an empty results panel.
func NewResultsModel(theme themes.Theme) ResultsModel {
	bars := make(map[model.Trend]progress.Model, len(model.Trends))
	for _, trend := range model.Trends {
		bar := progress.New(progress.WithSolidFill(string(theme.TrendColor(trend))))
		bar.ShowPercentage = false
		bar.Width = 30
		bars[trend] = bar
	}
	return ResultsModel{theme: theme, bars: bars}
}

// Set replaces the displayed results. Nil hides the panel.
func (m *ResultsModel) Set(view *model.ResultsView) {
	m.view = view
}

// Visible reports whether there is anything to show.
func (m ResultsModel) Visible() bool {
	return m.view != nil
}

// SetWidth sets the rendering width.
func (m *ResultsModel) SetWidth(width int) {
	m.width = width
	barWidth := min(max(width-30, 10), 50)
	for trend, bar := range m.bars {
		bar.Width = barWidth
		m.bars[trend] = bar
	}
}

// View renders the results panel.
func (m ResultsModel) View() string {
	if m.view == nil {
		return ""
	}
	v := m.view

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		m.theme.TrendBadge(v.Trend),
		"  ",
		m.theme.Subtitle.UnsetMargins().Render(v.ConfidenceText),
	)

	rows := make([]string, 0, len(v.Probabilities))
	for _, row := range v.Probabilities {
		label := lipgloss.NewStyle().Width(10).Render(string(row.Trend))
		pct := lipgloss.NewStyle().Width(8).Align(lipgloss.Right).Render(row.Text)
		rows = append(rows, label+m.bars[row.Trend].ViewAs(row.Fraction)+" "+pct)
	}

	sections := []string{
		m.theme.Title.Render("Prediction Result"),
		header,
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	}

	if v.ChatbotMessage != "" {
		msg := presenter.RenderSpans(presenter.Spans(v.ChatbotMessage), m.theme.Bold.Render)
		style := m.theme.Normal
		if m.width > 8 {
			style = style.Width(m.width - 6)
		}
		sections = append(sections, "", style.Render(msg))
	}

	sections = append(sections, "", lipgloss.NewStyle().Foreground(m.theme.Muted).Render(m.meta()))

	box := m.theme.RoundedBox.BorderForeground(m.theme.TrendColor(v.Trend))
	if m.width > 4 {
		box = box.Width(m.width - 2)
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m ResultsModel) meta() string {
	v := m.view
	parts := []string{
		"File: " + v.FileName,
		fmt.Sprintf("Series length: %d", v.SeriesLength),
		fmt.Sprintf("Window size: %d", v.WindowSize),
	}
	if v.RiskProfile != "" {
		parts = append(parts, "Risk: "+v.RiskProfile)
	}
	if v.Horizon != "" {
		parts = append(parts, "Horizon: "+v.Horizon)
	}
	return strings.Join(parts, " • ")
}
