// Package types defines the shared data structures for chyron.
// This package contains only type definitions and trivial accessors.
package types

import "time"

// Headline is a single display unit pulled from an RSS/Atom feed.
// Immutable once ingested; the ticker replaces its headline list
// wholesale on every refresh, never mutating entries in place.
type Headline struct {
	Title     string
	URL       string    // empty when the entry carries no link
	Source    string    // feed title, or the feed URL as a fallback
	Published time.Time // zero when the feed gives no date
}

// Key returns the stable identity key used for rotation and
// shown-cache bookkeeping: the URL when present, else the title.
// Two linkless headlines with the same title are indistinguishable.
func (h Headline) Key() string {
	if h.URL != "" {
		return h.URL
	}
	return h.Title
}
