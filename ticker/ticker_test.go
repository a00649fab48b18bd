package ticker

import (
	"math"
	"testing"

	"github.com/nathoo/chyron/config"
	"github.com/nathoo/chyron/types"
)

func testConfig() *config.Config {
	return &config.Config{
		Delimiter:  " | ",
		Speed:      10,
		Sort:       config.SortByDate,
		Rotation:   config.RotationContinuous,
		ShowSource: false,
	}
}

func testHeadlines() []types.Headline {
	return []types.Headline{
		{Title: "Hello", URL: "https://example.com", Source: "Test"},
		{Title: "World", Source: "Test"},
	}
}

func TestVisibleText_ReturnsWidthPlusOne(t *testing.T) {
	tk := New(testConfig())
	tk.SetHeadlines(testHeadlines(), config.SortByDate)

	if got := tk.HeadlineCount(); got != 2 {
		t.Fatalf("HeadlineCount() = %d, want 2", got)
	}

	visible := tk.VisibleText(5)
	if n := len([]rune(visible)); n != 6 {
		t.Errorf("VisibleText(5) returned %d chars, want 6", n)
	}
}

func TestVisibleText_MatchesBufferAtOffsetZero(t *testing.T) {
	tk := New(testConfig())
	tk.SetHeadlines([]types.Headline{
		{Title: "A"},
		{Title: "B", URL: "http://x"},
	}, config.SortByDate)

	// Buffer is "A | B | " (length 8).
	if got := string(tk.chars); got != "A | B | " {
		t.Fatalf("buffer = %q, want %q", got, "A | B | ")
	}
	if got := tk.VisibleText(3); got != "A | " {
		t.Errorf("VisibleText(3) = %q, want %q", got, "A | ")
	}
}

func TestVisibleText_Idempotent(t *testing.T) {
	tk := New(testConfig())
	tk.SetHeadlines(testHeadlines(), config.SortByDate)
	tk.Tick(0.37)

	first := tk.VisibleText(10)
	second := tk.VisibleText(10)
	if first != second {
		t.Errorf("repeated VisibleText differs: %q then %q", first, second)
	}
}

func TestVisibleText_ZeroWidth(t *testing.T) {
	tk := New(testConfig())
	tk.SetHeadlines(testHeadlines(), config.SortByDate)

	if got := tk.VisibleText(0); got != "" {
		t.Errorf("VisibleText(0) = %q, want empty", got)
	}
	if got := tk.VisibleSegments(0); got != nil {
		t.Errorf("VisibleSegments(0) = %v, want nil", got)
	}
	if got := tk.URLAt(0, 0); got != "" {
		t.Errorf("URLAt(0, 0) = %q, want empty", got)
	}
}

func TestTick_AdvancesBySpeedTimesDelta(t *testing.T) {
	tk := New(testConfig())
	tk.SetHeadlines(testHeadlines(), config.SortByDate)

	tk.Tick(0.5) // 10 cps × 0.5 s = 5 chars
	if math.Abs(tk.offset-5.0) > 1e-9 {
		t.Errorf("offset after tick = %v, want 5.0", tk.offset)
	}
}

func TestTick_Associative(t *testing.T) {
	deltas := []float64{0.016, 0.33, 1.25, 0.007, 2.0}

	split := New(testConfig())
	split.SetHeadlines(testHeadlines(), config.SortByDate)
	var sum float64
	for _, d := range deltas {
		split.Tick(d)
		sum += d
	}

	once := New(testConfig())
	once.SetHeadlines(testHeadlines(), config.SortByDate)
	once.Tick(sum)

	if math.Abs(split.offset-once.offset) > 1e-9 {
		t.Errorf("split ticks offset %v != single tick offset %v", split.offset, once.offset)
	}
}

func TestTick_MultiWrapEquivalentToModulo(t *testing.T) {
	tk := New(testConfig())
	tk.SetHeadlines(testHeadlines(), config.SortByDate)
	bufLen := float64(len(tk.chars))

	// 10 cps for 1000 s = 10000 chars, many times around the buffer.
	tk.Tick(1000)

	want := math.Mod(10*1000, bufLen)
	if math.Abs(tk.offset-want) > 1e-6 {
		t.Errorf("offset after huge tick = %v, want %v", tk.offset, want)
	}
	if tk.offset < 0 || tk.offset >= bufLen {
		t.Errorf("offset %v out of [0, %v)", tk.offset, bufLen)
	}
}

func TestTick_PausedIsNoOp(t *testing.T) {
	tk := New(testConfig())
	tk.SetHeadlines(testHeadlines(), config.SortByDate)

	tk.Pause()
	tk.Tick(1.0)
	if tk.offset != 0 {
		t.Errorf("offset advanced while paused: %v", tk.offset)
	}

	tk.Resume()
	tk.Tick(0.1)
	if tk.offset == 0 {
		t.Error("offset did not advance after resume")
	}
}

func TestTick_ZeroSpeedFreezesWithoutPausing(t *testing.T) {
	tk := New(testConfig())
	tk.SetHeadlines(testHeadlines(), config.SortByDate)

	tk.SetSpeed(0)
	tk.Tick(10)
	if tk.offset != 0 {
		t.Errorf("offset moved at speed 0: %v", tk.offset)
	}
	if tk.IsPaused() {
		t.Error("zero speed should not report paused")
	}
}

func TestAutoPause_IndependentOfUserPause(t *testing.T) {
	tk := New(testConfig())
	tk.SetHeadlines(testHeadlines(), config.SortByDate)

	tk.AutoPause()
	if !tk.IsPaused() {
		t.Error("auto-pause should report paused")
	}
	tk.Tick(1.0)
	if tk.offset != 0 {
		t.Error("offset advanced while auto-paused")
	}

	// A user pause survives the auto-pause trigger clearing.
	tk.TogglePause()
	tk.AutoResume()
	if !tk.IsPaused() {
		t.Error("user pause should persist after auto-resume")
	}
}

func TestFractionalOffset_InUnitRange(t *testing.T) {
	tk := New(testConfig())
	tk.SetHeadlines(testHeadlines(), config.SortByDate)

	tk.Tick(0.575) // offset 5.75
	frac := tk.FractionalOffset()
	if math.Abs(frac-0.75) > 1e-9 {
		t.Errorf("FractionalOffset() = %v, want 0.75", frac)
	}
	if frac < 0 || frac >= 1 {
		t.Errorf("FractionalOffset() = %v, out of [0, 1)", frac)
	}
}

func TestSetHeadlines_PreservesOffsetWhenInRange(t *testing.T) {
	tk := New(testConfig())
	tk.SetHeadlines(testHeadlines(), config.SortByDate)
	tk.Tick(0.3) // offset 3

	tk.SetHeadlines(testHeadlines(), config.SortByDate)
	if math.Abs(tk.offset-3.0) > 1e-9 {
		t.Errorf("offset after refresh = %v, want preserved 3.0", tk.offset)
	}
}

func TestSetHeadlines_ResetsOffsetWhenBufferShrinks(t *testing.T) {
	tk := New(testConfig())
	tk.SetHeadlines([]types.Headline{
		{Title: "A reasonably long headline"},
		{Title: "Another reasonably long headline"},
	}, config.SortByDate)
	tk.Tick(3.0) // offset 30

	tk.SetHeadlines([]types.Headline{{Title: "Tiny"}}, config.SortByDate)
	if tk.offset != 0 {
		t.Errorf("offset after shrink = %v, want 0", tk.offset)
	}
}

func TestEmptyHeadlines_PlaceholderScrolls(t *testing.T) {
	tk := New(testConfig())
	tk.SetHeadlines(nil, config.SortByDate)

	if got := tk.HeadlineCount(); got != 0 {
		t.Errorf("HeadlineCount() = %d, want 0", got)
	}
	if len(tk.segments) != 0 {
		t.Errorf("segment count = %d, want 0", len(tk.segments))
	}
	if got := tk.VisibleText(10); len([]rune(got)) != 11 {
		t.Errorf("placeholder window %q has %d chars, want 11", got, len([]rune(got)))
	}

	tk.Tick(1.0)
	if tk.offset == 0 {
		t.Error("clock should still advance over the placeholder")
	}
	if got := tk.URLAt(3, 10); got != "" {
		t.Errorf("placeholder has no clickable regions, URLAt = %q", got)
	}
}

func TestSetSpeed(t *testing.T) {
	tk := New(testConfig())
	if tk.Speed() != 10 {
		t.Errorf("initial speed = %d, want 10", tk.Speed())
	}
	tk.SetSpeed(25)
	if tk.Speed() != 25 {
		t.Errorf("speed = %d, want 25", tk.Speed())
	}
}
