package ticker

import (
	"math/rand"
	"sort"
	"time"

	"github.com/nathoo/chyron/config"
	"github.com/nathoo/chyron/types"
)

// sortHeadlines orders a new generation in place according to the mode.
// Undated headlines sort as if published now, so they stay near the front
// under by_date.
func sortHeadlines(headlines []types.Headline, mode config.SortMode) {
	switch mode {
	case config.SortRandom:
		rand.Shuffle(len(headlines), func(i, j int) {
			headlines[i], headlines[j] = headlines[j], headlines[i]
		})
	case config.SortBySource:
		sort.SliceStable(headlines, func(i, j int) bool {
			return headlines[i].Source < headlines[j].Source
		})
	case config.SortByDate:
		now := time.Now()
		sort.SliceStable(headlines, func(i, j int) bool {
			return publishedOr(headlines[i], now).After(publishedOr(headlines[j], now))
		})
	case config.SortByDateAsc:
		now := time.Now()
		sort.SliceStable(headlines, func(i, j int) bool {
			return publishedOr(headlines[i], now).Before(publishedOr(headlines[j], now))
		})
	}
}

func publishedOr(h types.Headline, fallback time.Time) time.Time {
	if h.Published.IsZero() {
		return fallback
	}
	return h.Published
}

// reconcile applies the fair-rotation policy to a new generation: unshown
// headlines play before already-shown ones, shown-set keys for headlines
// that left the feed are dropped, and an exhausted cycle (everything
// shown) clears the set and starts over. Caller holds the write lock.
func (t *Ticker) reconcile(headlines []types.Headline) []types.Headline {
	unshown := make([]types.Headline, 0, len(headlines))
	shown := make([]types.Headline, 0)
	for _, h := range headlines {
		if _, ok := t.shown[h.Key()]; ok {
			shown = append(shown, h)
		} else {
			unshown = append(unshown, h)
		}
	}

	// Retired headlines no longer block rotation, and the set cannot grow
	// without bound.
	live := make(map[string]struct{}, len(headlines))
	for _, h := range headlines {
		live[h.Key()] = struct{}{}
	}
	for key := range t.shown {
		if _, ok := live[key]; !ok {
			delete(t.shown, key)
		}
	}

	if len(unshown) == 0 && len(shown) > 0 {
		// Whole cycle exhausted; begin a fresh one.
		clear(t.shown)
		return shown
	}

	return append(unshown, shown...)
}

// markCurrentShown records the currently displaying headline's identity key.
// Caller holds the write lock.
func (t *Ticker) markCurrentShown() {
	if t.currentIdx < len(t.headlines) {
		t.shown[t.headlines[t.currentIdx].Key()] = struct{}{}
	}
}

// advanceCurrent moves the display pointer to the next headline and tracks
// its end boundary. Caller holds the write lock.
func (t *Ticker) advanceCurrent() {
	t.currentIdx++
	if t.currentIdx < len(t.segments) {
		t.currentEnd = t.segments[t.currentIdx].End
	}
}

// resetCurrent points the tracker back at the first headline. Caller holds
// the write lock.
func (t *Ticker) resetCurrent() {
	t.currentIdx = 0
	if len(t.segments) > 0 {
		t.currentEnd = t.segments[0].End
	} else {
		t.currentEnd = 0
	}
}
