package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar produces a full-width inverted status line showing
// playback state, headline count, and speed on the left, with key help
// or a transient status message on the right.
func (m Model) renderStatusBar() string {
	state := "▶ PLAYING"
	if m.ticker.IsPaused() {
		state = "⏸ PAUSED"
	}

	left := fmt.Sprintf(" %s | %d headlines | speed: %d",
		state, m.ticker.HeadlineCount(), m.ticker.Speed())

	right := m.help.ShortHelpView(m.keys.ShortHelp()) + " "
	if m.statusMsg != "" {
		right = styleStatusMsg.Render(m.statusMsg) + " "
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		// Drop the right side rather than wrap the bar.
		right = ""
		gap = m.width - lipgloss.Width(left)
		if gap < 0 {
			gap = 0
		}
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
