package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileYieldsEmptyCache(t *testing.T) {
	c := Load(filepath.Join(t.TempDir(), "absent.json"))
	if len(c.Entries) != 0 {
		t.Errorf("expected empty cache, got %v", c.Entries)
	}
}

func TestLoad_CorruptFileYieldsEmptyCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shown.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	c := Load(path)
	if len(c.Entries) != 0 {
		t.Errorf("expected empty cache for corrupt file, got %v", c.Entries)
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "shown.json")

	c := Load(path)
	c.Merge(map[string]struct{}{
		"http://a": {},
		"http://b": {},
	})
	if err := c.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := Load(path)
	if len(loaded.Entries) != 2 {
		t.Fatalf("loaded %d entries, want 2", len(loaded.Entries))
	}
	for _, key := range []string{"http://a", "http://b"} {
		if _, ok := loaded.Entries[key]; !ok {
			t.Errorf("missing key %q after round trip", key)
		}
	}
}

func TestMerge_KeepsExistingTimestamps(t *testing.T) {
	c := Load(filepath.Join(t.TempDir(), "shown.json"))
	old := time.Now().Add(-10 * time.Hour).Unix()
	c.Entries["http://a"] = old

	c.Merge(map[string]struct{}{"http://a": {}, "http://b": {}})
	if c.Entries["http://a"] != old {
		t.Errorf("merge overwrote existing stamp: %d", c.Entries["http://a"])
	}
	if _, ok := c.Entries["http://b"]; !ok {
		t.Error("merge did not add new key")
	}
}

func TestPrune_DropsOldEntries(t *testing.T) {
	c := Load(filepath.Join(t.TempDir(), "shown.json"))
	c.Entries["fresh"] = time.Now().Unix()
	c.Entries["stale"] = time.Now().Add(-48 * time.Hour).Unix()

	c.Prune(24 * time.Hour)
	if _, ok := c.Entries["stale"]; ok {
		t.Error("stale entry survived prune")
	}
	if _, ok := c.Entries["fresh"]; !ok {
		t.Error("fresh entry was pruned")
	}
}

func TestKeys(t *testing.T) {
	c := Load(filepath.Join(t.TempDir(), "shown.json"))
	c.Merge(map[string]struct{}{"http://a": {}})

	keys := c.Keys()
	if _, ok := keys["http://a"]; !ok {
		t.Errorf("Keys() = %v, missing http://a", keys)
	}
}
