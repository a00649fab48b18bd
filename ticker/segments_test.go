package ticker

import (
	"testing"

	"github.com/nathoo/chyron/config"
	"github.com/nathoo/chyron/types"
)

// twoSegmentTicker builds the buffer "A | B | " (length 8) with
// segments [0,1) unlinked and [4,5) linked to http://x.
func twoSegmentTicker() *Ticker {
	tk := New(testConfig())
	tk.SetHeadlines([]types.Headline{
		{Title: "A"},
		{Title: "B", URL: "http://x"},
	}, config.SortByDate)
	return tk
}

func TestVisibleSegments_AtOrigin(t *testing.T) {
	tk := twoSegmentTicker()

	got := tk.VisibleSegments(8)
	want := []VisibleSegment{
		{Start: 0, End: 1, URL: ""},
		{Start: 4, End: 5, URL: "http://x"},
	}
	if len(got) != len(want) {
		t.Fatalf("VisibleSegments(8) = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("segment %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestVisibleSegments_ClipsToViewport(t *testing.T) {
	tk := twoSegmentTicker()

	// Viewport [0, 4): only the "A" segment is inside; "B" starts at 4.
	got := tk.VisibleSegments(4)
	if len(got) != 1 {
		t.Fatalf("VisibleSegments(4) = %+v, want 1 segment", got)
	}
	if got[0] != (VisibleSegment{Start: 0, End: 1, URL: ""}) {
		t.Errorf("segment = %+v", got[0])
	}
}

func TestVisibleSegments_WrapsAroundLoopPoint(t *testing.T) {
	tk := twoSegmentTicker()

	// Viewport [6, 10) straddles the wrap: "A" at its wrapped placement
	// [8, 9) lands at local column 2.
	tk.offset = 6
	got := tk.VisibleSegments(4)
	if len(got) != 1 {
		t.Fatalf("VisibleSegments(4) at offset 6 = %+v, want 1 segment", got)
	}
	if got[0] != (VisibleSegment{Start: 2, End: 3, URL: ""}) {
		t.Errorf("wrapped segment = %+v, want {2 3 }", got[0])
	}
}

func TestVisibleSegments_PartialOverlapAtLeftEdge(t *testing.T) {
	cfg := testConfig()
	tk := New(cfg)
	tk.SetHeadlines([]types.Headline{
		{Title: "LONGTITLE", URL: "http://long"},
	}, config.SortByDate)

	// Segment [0, 9); viewport [4, 8) sees its tail clipped to [0, 4).
	tk.offset = 4
	got := tk.VisibleSegments(4)
	if len(got) == 0 {
		t.Fatal("expected the clipped segment to be visible")
	}
	if got[0].Start != 0 || got[0].End != 4 {
		t.Errorf("clipped segment = %+v, want [0, 4)", got[0])
	}
}

func TestURLAt(t *testing.T) {
	tk := twoSegmentTicker()

	tests := []struct {
		name   string
		column int
		width  int
		want   string
	}{
		{"unlinked headline", 0, 8, ""},
		{"delimiter gap", 2, 8, ""},
		{"linked headline", 4, 8, "http://x"},
		{"past linked headline", 5, 8, ""},
		{"outside viewport", 20, 8, ""},
	}
	for _, tt := range tests {
		if got := tk.URLAt(tt.column, tt.width); got != tt.want {
			t.Errorf("%s: URLAt(%d, %d) = %q, want %q", tt.name, tt.column, tt.width, got, tt.want)
		}
	}
}

func TestURLAt_AcrossWrap(t *testing.T) {
	tk := twoSegmentTicker()

	// Viewport [3, 8): "B" [4, 5) is at local column 1.
	tk.offset = 3
	if got := tk.URLAt(1, 5); got != "http://x" {
		t.Errorf("URLAt(1, 5) at offset 3 = %q, want http://x", got)
	}
}
