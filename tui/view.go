package tui

import (
	"strings"

	"github.com/muesli/termenv"

	"github.com/nathoo/chyron/ticker"
)

// View renders the centered ticker line and, when enabled, the status bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return styleLoading.Render("Loading...")
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("\n", m.tickerRow))
	b.WriteString(m.tickerLine())
	if m.cfg.ShowStatusBar {
		b.WriteString("\n")
		b.WriteString(m.renderStatusBar())
	}
	return b.String()
}

// tickerLine composites one frame of the scroll and applies link styling
// and OSC 8 hyperlinks per cell run.
func (m Model) tickerLine() string {
	visible := m.ticker.VisibleText(m.width)
	if visible == "" {
		return ""
	}

	cells := composeCells(visible, m.width, m.ticker.FractionalOffset())

	hoverX := -1
	if m.mouseY == m.tickerRow {
		hoverX = m.mouseX
	}

	var b strings.Builder
	for _, run := range buildRuns(m.width, m.ticker.VisibleSegments(m.width), hoverX) {
		text := string(cells[run.start:run.end])
		switch {
		case run.url != "" && run.hovered:
			text = styleLinkHover.Render(text)
		case run.url != "":
			text = styleLink.Render(text)
		default:
			text = styleTicker.Render(text)
		}
		if run.url != "" {
			text = termenv.Hyperlink(run.url, text)
		}
		b.WriteString(text)
	}
	return b.String()
}

// composeCells picks the character shown in each of the width cells. The
// visible window carries one extra character; when the fractional offset
// is past the midpoint every cell shows the next character, which reads
// as sub-character movement at low speeds.
func composeCells(visible string, width int, frac float64) []rune {
	chars := []rune(visible)
	shift := 0
	if frac > 0.5 {
		shift = 1
	}

	cells := make([]rune, width)
	for i := range cells {
		if idx := i + shift; idx < len(chars) {
			cells[i] = chars[idx]
		} else {
			cells[i] = ' '
		}
	}
	return cells
}

// cellRun is a span of consecutive cells sharing a link target and hover
// state, so styling is applied per run rather than per cell.
type cellRun struct {
	start, end int
	url        string
	hovered    bool
}

// buildRuns splits the viewport into maximal runs of equal attributes.
func buildRuns(width int, segs []ticker.VisibleSegment, hoverX int) []cellRun {
	urlAt := make([]string, width)
	for _, seg := range segs {
		for i := seg.Start; i < seg.End && i < width; i++ {
			urlAt[i] = seg.URL
		}
	}

	var runs []cellRun
	for i := 0; i < width; {
		run := cellRun{
			start:   i,
			url:     urlAt[i],
			hovered: i == hoverX && urlAt[i] != "",
		}
		j := i + 1
		for j < width && urlAt[j] == run.url && (j == hoverX && urlAt[j] != "") == run.hovered {
			j++
		}
		run.end = j
		runs = append(runs, run)
		i = j
	}
	return runs
}
