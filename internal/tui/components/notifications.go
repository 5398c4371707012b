package components

import (
	"github.com/Veraticus/trendscope/internal/model"
	"github.com/Veraticus/trendscope/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

var severityIcons = map[model.Severity]string{
	model.SeverityInfo:    "ℹ",
	model.SeveritySuccess: "✓",
	model.SeverityWarning: "⚠",
	model.SeverityError:   "✗",
}

// NotificationsModel is the stack of transient messages.
type NotificationsModel struct {
	theme themes.Theme
	items []model.Notification
	width int
}

// NewNotificationsModel creates an empty stack.
func NewNotificationsModel(theme themes.Theme) NotificationsModel {
	return NotificationsModel{theme: theme}
}

// Push adds n on top of the stack.
func (m *NotificationsModel) Push(n model.Notification) {
	m.items = append(m.items, n)
}

// Dismiss removes the notification with id.
func (m *NotificationsModel) Dismiss(id string) {
	kept := m.items[:0]
	for _, n := range m.items {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	m.items = kept
}

// Items returns the notifications currently shown, oldest first.
func (m NotificationsModel) Items() []model.Notification {
	return m.items
}

// SetWidth sets the rendering width.
func (m *NotificationsModel) SetWidth(width int) {
	m.width = width
}

// View renders the stack, newest last.
func (m NotificationsModel) View() string {
	if len(m.items) == 0 {
		return ""
	}

	lines := make([]string, 0, len(m.items))
	for _, n := range m.items {
		style := m.theme.SeverityStyle(n.Severity)
		line := style.Render(severityIcons[n.Severity] + " " + n.Message)
		if m.width > 0 {
			line = lipgloss.NewStyle().MaxWidth(m.width).Render(line)
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
