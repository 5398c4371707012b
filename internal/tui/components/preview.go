package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/trendscope/internal/model"
	"github.com/Veraticus/trendscope/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// PreviewModel shows the selected chart, or the drop zone when none is selected.
type PreviewModel struct {
	theme   themes.Theme
	image   *model.SelectedImage
	preview *model.Preview
	width   int
}

// NewPreviewModel creates an empty preview.
func NewPreviewModel(theme themes.Theme) PreviewModel {
	return PreviewModel{theme: theme}
}

// Set replaces the displayed image. Nil values show the drop zone.
func (m *PreviewModel) Set(img *model.SelectedImage, preview *model.Preview) {
	m.image = img
	m.preview = preview
}

// SetWidth sets the rendering width.
func (m *PreviewModel) SetWidth(width int) {
	m.width = width
}

// View renders the preview or the drop zone.
func (m PreviewModel) View() string {
	box := m.theme.RoundedBox
	if m.width > 4 {
		box = box.Width(m.width - 2)
	}

	if m.image == nil {
		hint := lipgloss.JoinVertical(lipgloss.Center,
			m.theme.Subtitle.UnsetMargins().Render("No chart selected"),
			lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Type a PNG or JPG path above and press Enter"),
		)
		return box.BorderForeground(m.theme.Muted).Align(lipgloss.Center).Render(hint)
	}

	var details []string
	if m.preview != nil {
		if m.preview.Format != "" {
			details = append(details, strings.ToUpper(m.preview.Format))
		}
		if m.preview.Width > 0 {
			details = append(details, fmt.Sprintf("%d×%d px", m.preview.Width, m.preview.Height))
		}
	}
	if m.image.Size > 0 {
		details = append(details, humanize.IBytes(uint64(m.image.Size)))
	}

	lines := []string{
		m.theme.Bold.Render(m.image.Name),
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render(strings.Join(details, " • ")),
	}
	if m.image.Path != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(m.theme.Muted).Render(m.image.Path))
	}

	return box.BorderForeground(m.theme.Primary).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
