package tui

import (
	"github.com/Veraticus/trendscope/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.renderForm(),
		m.viewport.View(),
		m.renderFooter(),
	)
}

// body is the scrollable area: preview, then results.
func (m Model) body() string {
	sections := []string{m.preview.View()}
	if m.results.Visible() {
		sections = append(sections, "", m.results.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.theme.Title.UnsetMargins().Render("📈 trendscope")
	subtitle := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("  chart trend prediction")
	return lipgloss.JoinHorizontal(lipgloss.Bottom, title, subtitle)
}

func (m Model) renderForm() string {
	box := m.theme.BorderedBox.Padding(0, 1)
	if m.width > 4 {
		box = box.Width(m.width - 2)
	}
	if m.snapshot.Busy {
		box = box.BorderForeground(m.theme.Muted)
	}
	return box.Render(m.form.View())
}

func (m Model) renderFooter() string {
	lines := []string{}
	if n := m.notifications.View(); n != "" {
		lines = append(lines, n)
	}
	lines = append(lines, m.renderStatus())
	if m.config.ShowHelp {
		lines = append(lines, m.help.View(m.keymap))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderStatus() string {
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)

	switch m.snapshot.State {
	case model.StateSubmitting:
		return m.spinner.View() + " " + m.theme.StatusPending.Render("Analyzing chart...")
	case model.StatePreviewShown:
		return muted.Render("Fill in the Y-axis range and press Ctrl+S to predict")
	case model.StateResultsShown:
		return m.theme.StatusSuccess.Render("Prediction ready") + muted.Render("  PgUp/PgDn to scroll")
	default:
		return muted.Render("Select a chart image to begin")
	}
}
