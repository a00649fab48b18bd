package ticker

import (
	"strings"
	"unicode/utf8"
)

// placeholderText scrolls when no headlines are available. The clock still
// advances over it; there are no clickable regions.
const placeholderText = "No headlines available. Check your feed configuration."

// rebuild regenerates the character buffer and segment map from the current
// headline list in one pass. Each headline is preceded by the delimiter
// (except the first) and one trailing delimiter closes the loop, so the
// wrap point reads "…last ••• first…" with no visual seam.
//
// Invariant: len(chars) = Σ(display length) + len(headlines) × len(delimiter).
func (t *Ticker) rebuild() {
	t.segments = t.segments[:0]

	if len(t.headlines) == 0 {
		t.chars = []rune(placeholderText)
		return
	}

	var text strings.Builder
	pos := 0

	for i, h := range t.headlines {
		if i > 0 {
			text.WriteString(t.delimiter)
			pos += utf8.RuneCountInString(t.delimiter)
		}

		display := h.Title
		if t.showSource {
			display = "[" + h.Source + "] " + h.Title
		}

		start := pos
		text.WriteString(display)
		pos += utf8.RuneCountInString(display)

		t.segments = append(t.segments, Segment{Start: start, End: pos, URL: h.URL})
	}

	text.WriteString(t.delimiter)

	t.chars = []rune(text.String())
}
