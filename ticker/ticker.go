// Package ticker implements the scrolling headline engine: it linearizes
// headlines into one looping character buffer, advances a continuous scroll
// offset over externally supplied time deltas, maps screen columns back to
// headline URLs, and enforces fair rotation across feed refreshes.
//
// The engine performs no I/O and owns no clock. The TUI layer drives it
// with elapsed-time increments and replaces its headline list wholesale on
// every refresh.
package ticker

import (
	"math"
	"sync"

	"github.com/nathoo/chyron/config"
	"github.com/nathoo/chyron/types"
)

// Ticker holds the scrolling state for one generation of headlines.
// All methods are safe for concurrent use: the TUI update loop mutates it
// while async refresh results and render queries read it.
type Ticker struct {
	mu sync.RWMutex

	headlines []types.Headline
	chars     []rune    // linearized ticker text, cached as runes for indexing
	segments  []Segment // character ranges of each headline, in display order

	offset float64 // scroll position in characters, always in [0, len(chars))
	speed  int     // characters per second

	delimiter  string
	showSource bool

	paused     bool // user pause (space key)
	autoPaused bool // hover/focus pause; independent of user pause

	rotation   config.RotationMode
	shown      map[string]struct{} // identity keys fully scrolled past
	currentIdx int                 // headline currently crossing the left edge
	currentEnd int                 // character position where it ends
}

// New creates a ticker configured but empty; call SetHeadlines to populate.
func New(cfg *config.Config) *Ticker {
	return &Ticker{
		delimiter:  cfg.Delimiter,
		speed:      cfg.Speed,
		showSource: cfg.ShowSource,
		rotation:   cfg.Rotation,
		shown:      make(map[string]struct{}),
	}
}

// SetHeadlines replaces the current generation. The buffer, segment map,
// and rotation pointer are rebuilt together so a concurrent reader never
// observes them out of step.
func (t *Ticker) SetHeadlines(headlines []types.Headline, sort config.SortMode) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sortHeadlines(headlines, sort)

	if t.rotation == config.RotationFair {
		headlines = t.reconcile(headlines)
	}

	t.headlines = headlines
	t.rebuild()

	// Keep the scroll position across refreshes unless the new buffer is
	// too short for it.
	if n := float64(len(t.chars)); n > 0 && t.offset >= n {
		t.offset = 0
	}

	t.resetCurrent()
}

// Tick advances the scroll offset by speed × delta characters. Large
// deltas (a suspended process catching up) wrap correctly through true
// modulo rather than a single subtraction.
func (t *Ticker) Tick(deltaSecs float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.paused || t.autoPaused || len(t.chars) == 0 {
		return
	}

	oldOffset := int(t.offset)
	t.offset = math.Mod(t.offset+float64(t.speed)*deltaSecs, float64(len(t.chars)))

	if t.rotation != config.RotationFair || len(t.headlines) == 0 {
		return
	}

	// A headline counts as shown once its end has scrolled off the left edge.
	newOffset := int(t.offset)
	switch {
	case newOffset > oldOffset:
		if oldOffset < t.currentEnd && newOffset >= t.currentEnd {
			t.markCurrentShown()
			t.advanceCurrent()
		}
	case newOffset < oldOffset:
		// Wrapped within this tick: the tail headline went past the edge.
		t.markCurrentShown()
		t.resetCurrent()
	}
}

// FractionalOffset returns the sub-character part of the scroll position,
// in [0, 1). Renderers use it to pick between character i and i+1.
func (t *Ticker) FractionalOffset() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.offset - math.Floor(t.offset)
}

// VisibleText returns width+1 characters starting at the discrete scroll
// offset, wrapping around the buffer. The extra character supports
// sub-character blending. A zero width returns the empty string.
func (t *Ticker) VisibleText(width int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(t.chars) == 0 || width <= 0 {
		return ""
	}

	n := len(t.chars)
	base := int(t.offset) % n
	out := make([]rune, 0, width+1)
	for i := 0; i <= width; i++ {
		out = append(out, t.chars[(base+i)%n])
	}
	return string(out)
}

// Pause stops scrolling until Resume.
func (t *Ticker) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.paused = true
}

// Resume restarts scrolling after a user pause.
func (t *Ticker) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.paused = false
}

// TogglePause flips the user pause state.
func (t *Ticker) TogglePause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.paused = !t.paused
}

// AutoPause engages the hover/focus pause. It does not touch the user
// pause, so a user-paused ticker stays paused when the trigger clears.
func (t *Ticker) AutoPause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.autoPaused = true
}

// AutoResume releases the hover/focus pause.
func (t *Ticker) AutoResume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.autoPaused = false
}

// IsPaused reports whether scrolling is currently stopped, by the user or
// by an auto-pause trigger.
func (t *Ticker) IsPaused() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.paused || t.autoPaused
}

// HeadlineCount returns the number of headlines in the current generation.
func (t *Ticker) HeadlineCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.headlines)
}

// Speed returns the scroll speed in characters per second.
func (t *Ticker) Speed() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.speed
}

// SetSpeed sets the scroll speed. Zero freezes motion without pausing.
func (t *Ticker) SetSpeed(speed int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.speed = speed
}

// ShownKeys returns a copy of the identity keys marked shown so far, for
// merging into the on-disk cache and skipping during the next fetch.
func (t *Ticker) ShownKeys() map[string]struct{} {
	t.mu.RLock()
	defer t.mu.RUnlock()

	keys := make(map[string]struct{}, len(t.shown))
	for k := range t.shown {
		keys[k] = struct{}{}
	}
	return keys
}
