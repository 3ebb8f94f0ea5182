// Package cli provides styled terminal output and the interactive review prompt.
package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#2A9D8F")
	// SuccessColor indicates successful operations and high confidence.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates warnings and medium confidence.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates errors and low confidence.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#95E1D3")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

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

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(lipgloss.Color("#333"))

	// PromptStyle is used for user prompts.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	CoinIcon    = "🪙"
	ChartIcon   = "📊"
)

// ConfidenceBand buckets a confidence for display.
type ConfidenceBand int

// Confidence bands.
const (
	BandLow ConfidenceBand = iota
	BandMedium
	BandHigh
)

// BandFor returns the display band for a confidence in [0, 1]. The band
// edges apply to the rounded percentage: above 80 is high, above 60 medium.
func BandFor(confidence float64) ConfidenceBand {
	pct := Percent(confidence)
	switch {
	case pct > 80:
		return BandHigh
	case pct > 60:
		return BandMedium
	default:
		return BandLow
	}
}

// Percent converts a confidence in [0, 1] to a whole percentage.
func Percent(confidence float64) int {
	return int(decimal.NewFromFloat(confidence).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}

// FormatConfidence renders a confidence as a colored percentage.
func FormatConfidence(confidence float64) string {
	text := fmt.Sprintf("%d%%", Percent(confidence))
	switch BandFor(confidence) {
	case BandHigh:
		return SuccessStyle.Render(text)
	case BandMedium:
		return WarningStyle.Render(text)
	default:
		return ErrorStyle.Render(text)
	}
}

// FormatAmount renders a money amount with two decimals.
func FormatAmount(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
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

// FormatTitle formats a title with the coin icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(CoinIcon + " " + title)
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

	return BoxStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	))
}
