// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/Veraticus/trendscope/internal/model"
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#667EEA")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4") // Teal
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D") // Yellow
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B") // Red
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#95E1D3") // Light teal
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// UpColor, DownColor and SidewaysColor tint the trend badge.
	UpColor       = lipgloss.Color("#38A169")
	DownColor     = lipgloss.Color("#E53E3E")
	SidewaysColor = lipgloss.Color("#D69E2E")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)

	// BadgeStyle is the base of the trend badge.
	BadgeStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("#FFFFFF"))

	// PromptStyle is used for user prompts.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)
)

// Icons.
const (
	SuccessIcon  = "✓"
	ErrorIcon    = "✗"
	WarningIcon  = "⚠️"
	InfoIcon     = "ℹ️"
	ChartIcon    = "📈"
	UpIcon       = "▲"
	DownIcon     = "▼"
	SidewaysIcon = "▶"
	RobotIcon    = "🤖"
)

// TrendColor returns the badge color for a trend.
func TrendColor(t model.Trend) lipgloss.Color {
	switch t {
	case model.TrendUp:
		return UpColor
	case model.TrendDown:
		return DownColor
	case model.TrendSideways:
		return SidewaysColor
	default:
		return SubtleColor
	}
}

// TrendIcon returns the arrow shown next to a trend.
func TrendIcon(t model.Trend) string {
	switch t {
	case model.TrendUp:
		return UpIcon
	case model.TrendDown:
		return DownIcon
	default:
		return SidewaysIcon
	}
}

// FormatBadge renders the trend badge.
func FormatBadge(t model.Trend) string {
	return BadgeStyle.Background(TrendColor(t)).Render(TrendIcon(t) + " " + string(t))
}

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatNotification picks the format matching the notification severity.
func FormatNotification(n model.Notification) string {
	switch n.Severity {
	case model.SeverityError:
		return FormatError(n.Message)
	case model.SeverityWarning:
		return FormatWarning(n.Message)
	case model.SeveritySuccess:
		return FormatSuccess(n.Message)
	default:
		return FormatInfo(n.Message)
	}
}

// FormatTitle formats a title with the chart icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(ChartIcon + " " + title)
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	boxContent := lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	)

	return BoxStyle.Render(boxContent)
}
