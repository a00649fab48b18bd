package tui

import "github.com/charmbracelet/lipgloss"

// Styles used throughout the TUI.
var (
	styleTicker = lipgloss.NewStyle()

	styleLink = lipgloss.NewStyle().
			Underline(true)

	styleLinkHover = lipgloss.NewStyle().
			Underline(true).
			Foreground(lipgloss.Color("6"))

	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252"))

	styleStatusMsg = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleLoading = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)
