package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title       lipgloss.Style
	Subtle      lipgloss.Style
	Selected    lipgloss.Style
	Picked      lipgloss.Style
	High        lipgloss.Style
	Medium      lipgloss.Style
	Low         lipgloss.Style
	Done        lipgloss.Style
	Error       lipgloss.Style
	BorderedBox lipgloss.Style
}

// DefaultTheme is the default theme.
var DefaultTheme = Theme{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#2A9D8F")).
		MarginBottom(1),
	Subtle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#404040")).
		Foreground(lipgloss.Color("#fafafa")).
		Bold(true),
	Picked: lipgloss.NewStyle().
		Background(lipgloss.Color("#2A9D8F")).
		Foreground(lipgloss.Color("#fafafa")).
		Padding(0, 1),
	High: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10b981")),
	Medium: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f59e0b")),
	Low: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")),
	Done: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10b981")).
		Bold(true),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")).
		Bold(true),
	BorderedBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(0, 1),
}
