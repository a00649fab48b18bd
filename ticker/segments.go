package ticker

// Segment maps a character range of the ticker buffer to the headline that
// produced it. Start is inclusive, End exclusive. Segments partition the
// buffer in display order; the delimiter falls in the gaps between them.
type Segment struct {
	Start int
	End   int
	URL   string // empty when the headline has no link
}

// VisibleSegment is a segment clipped to viewport-local coordinates
// [0, width).
type VisibleSegment struct {
	Start int
	End   int
	URL   string
}

// VisibleSegments returns every segment (or portion of one) overlapping the
// current viewport, in viewport-local coordinates.
func (t *Ticker) VisibleSegments(width int) []VisibleSegment {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.visibleSegments(width)
}

// visibleSegments is the lock-free inner query shared with URLAt.
func (t *Ticker) visibleSegments(width int) []VisibleSegment {
	if len(t.chars) == 0 || width <= 0 {
		return nil
	}

	n := len(t.chars)
	visStart := int(t.offset)
	visEnd := visStart + width

	var visible []VisibleSegment
	for _, seg := range t.segments {
		// A segment near the end of the buffer can also appear at its
		// wrapped placement when the viewport straddles the loop point, so
		// both placements are checked. A segment may contribute twice only
		// when width exceeds the buffer length.
		for _, shift := range [2]int{0, n} {
			segStart := seg.Start + shift
			segEnd := seg.End + shift

			if segStart >= visEnd || segEnd <= visStart {
				continue
			}

			start := segStart - visStart
			if start < 0 {
				start = 0
			}
			end := segEnd - visStart
			if end > width {
				end = width
			}
			if start < width && end > start {
				visible = append(visible, VisibleSegment{Start: start, End: end, URL: seg.URL})
			}
		}
	}
	return visible
}

// URLAt returns the URL under the given viewport column, or "" when the
// column falls on a delimiter gap or an unlinked headline.
func (t *Ticker) URLAt(column, width int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, seg := range t.visibleSegments(width) {
		if column >= seg.Start && column < seg.End {
			return seg.URL
		}
	}
	return ""
}
