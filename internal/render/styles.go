// Package render turns launcher state into terminal strings. Every function is
// pure: the same input gives the same output and nothing is printed.
package render

import "github.com/charmbracelet/lipgloss"

// Palette of the dark launcher theme.
var (
	Background = lipgloss.Color("#121212")
	Surface    = lipgloss.Color("#1e1e1e")
	Primary    = lipgloss.Color("#90caf9")
	Secondary  = lipgloss.Color("#ce93d8")
	Muted      = lipgloss.Color("#757575")
	Text       = lipgloss.Color("#e0e0e0")
	Danger     = lipgloss.Color("#ef5350")
)

var (
	tileStyle = lipgloss.NewStyle().
			Foreground(Text).
			Padding(0, 1)

	selectedTileStyle = tileStyle.
				Foreground(Background).
				Background(Primary).
				Bold(true)

	iconStyle = lipgloss.NewStyle().
			Foreground(Background).
			Background(Secondary).
			Bold(true).
			Padding(0, 1)

	userStyle = lipgloss.NewStyle().
			Foreground(Background).
			Background(Primary).
			Padding(0, 1)

	systemStyle = lipgloss.NewStyle().
			Foreground(Text).
			Background(Surface).
			Padding(0, 1)

	failureStyle = systemStyle.Foreground(Danger)

	timestampStyle = lipgloss.NewStyle().Foreground(Muted)

	// TitleStyle is used for panel headings.
	TitleStyle = lipgloss.NewStyle().Foreground(Primary).Bold(true)

	// HelpStyle is used for key hints.
	HelpStyle = lipgloss.NewStyle().Foreground(Muted)

	// PanelStyle frames the sidebar and the chat.
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Muted)
)
