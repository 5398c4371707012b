// Package components holds the bubbletea building blocks of the trendscope TUI.
package components

import (
	"strings"

	"github.com/Veraticus/trendscope/internal/model"
	"github.com/Veraticus/trendscope/internal/tui/themes"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Field identifies a form input.
type Field int

// Form fields in focus order.
const (
	FieldPath Field = iota
	FieldYMin
	FieldYMax
	FieldNPoints
	FieldRiskProfile
	FieldHorizon
	fieldCount
)

var fieldLabels = [fieldCount]string{
	FieldPath:        "Chart image",
	FieldYMin:        "Y-axis Min",
	FieldYMax:        "Y-axis Max",
	FieldNPoints:     "Points",
	FieldRiskProfile: "Risk profile",
	FieldHorizon:     "Horizon",
}

var fieldPlaceholders = [fieldCount]string{
	FieldPath:        "path/to/chart.png",
	FieldYMin:        "e.g. 100",
	FieldYMax:        "e.g. 200",
	FieldNPoints:     "300",
	FieldRiskProfile: "medium",
	FieldHorizon:     "short",
}

// FormModel collects the chart path and prediction parameters.
type FormModel struct {
	theme    themes.Theme
	inputs   []textinput.Model
	focus    Field
	width    int
	disabled bool
}

// NewFormModel creates a form with the path field focused.
func NewFormModel(theme themes.Theme) FormModel {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = fieldPlaceholders[i]
		ti.Prompt = ""
		ti.CharLimit = 32
		ti.PromptStyle = lipgloss.NewStyle().Foreground(theme.Primary)
		ti.Cursor.Style = lipgloss.NewStyle().Foreground(theme.Primary)
		inputs[i] = ti
	}
	inputs[FieldPath].CharLimit = 4096
	inputs[FieldPath].Focus()

	return FormModel{
		theme:  theme,
		inputs: inputs,
		focus:  FieldPath,
	}
}

// Update forwards key input to the focused field.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	if m.disabled {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// Focused returns the field that receives input.
func (m FormModel) Focused() Field {
	return m.focus
}

// FocusNext moves focus forward, wrapping around.
func (m *FormModel) FocusNext() tea.Cmd {
	return m.FocusField((m.focus + 1) % fieldCount)
}

// FocusPrev moves focus backward, wrapping around.
func (m *FormModel) FocusPrev() tea.Cmd {
	return m.FocusField((m.focus + fieldCount - 1) % fieldCount)
}

// FocusField focuses f.
func (m *FormModel) FocusField(f Field) tea.Cmd {
	if f < 0 || f >= fieldCount {
		return nil
	}
	m.inputs[m.focus].Blur()
	m.focus = f
	return m.inputs[f].Focus()
}

// SetDisabled locks the form while a prediction is in flight.
func (m *FormModel) SetDisabled(disabled bool) {
	m.disabled = disabled
}

// Disabled reports whether the form is locked.
func (m FormModel) Disabled() bool {
	return m.disabled
}

// SetWidth sets the rendering width.
func (m *FormModel) SetWidth(width int) {
	m.width = width
	for i := range m.inputs {
		m.inputs[i].Width = max(width-lipgloss.Width(fieldLabels[FieldPath])-6, 10)
	}
}

// SetValue sets a field's text.
func (m *FormModel) SetValue(f Field, value string) {
	if f >= 0 && f < fieldCount {
		m.inputs[f].SetValue(value)
	}
}

// Value returns a field's text.
func (m FormModel) Value(f Field) string {
	if f < 0 || f >= fieldCount {
		return ""
	}
	return m.inputs[f].Value()
}

// Path returns the chart path as typed.
func (m FormModel) Path() string {
	return strings.TrimSpace(m.inputs[FieldPath].Value())
}

// Values returns the prediction parameters.
func (m FormModel) Values() model.FormValues {
	return model.FormValues{
		YMin:        m.inputs[FieldYMin].Value(),
		YMax:        m.inputs[FieldYMax].Value(),
		NPoints:     m.inputs[FieldNPoints].Value(),
		RiskProfile: m.inputs[FieldRiskProfile].Value(),
		Horizon:     m.inputs[FieldHorizon].Value(),
	}
}

// View renders the form.
func (m FormModel) View() string {
	labelWidth := 0
	for _, l := range fieldLabels {
		labelWidth = max(labelWidth, lipgloss.Width(l))
	}

	rows := make([]string, 0, fieldCount)
	for i := range m.inputs {
		f := Field(i)
		label := lipgloss.NewStyle().Width(labelWidth + 2).Render(fieldLabels[f])
		marker := "  "
		if f == m.focus && !m.disabled {
			marker = lipgloss.NewStyle().Foreground(m.theme.Primary).Render("▸ ")
			label = m.theme.Bold.Render(label)
		} else {
			label = lipgloss.NewStyle().Foreground(m.theme.Muted).Render(label)
		}
		rows = append(rows, marker+label+m.inputs[i].View())
		if f == FieldPath {
			rows = append(rows, "")
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
