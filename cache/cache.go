// Package cache persists the set of already-shown headlines between runs,
// so fair rotation carries across process restarts.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// ShownCache maps headline identity keys (URL, or title when linkless) to
// the unix timestamp at which they were marked shown.
type ShownCache struct {
	path    string
	Entries map[string]int64 `json:"entries"`
}

// DefaultPath returns the cache file location (~/.cache/chyron/shown.json
// on Linux).
func DefaultPath() string {
	base, err := os.UserCacheDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "chyron", "shown.json")
}

// Load reads the cache from path. A missing or corrupt file yields an
// empty cache rather than an error — the cache is advisory.
func Load(path string) *ShownCache {
	c := &ShownCache{path: path, Entries: map[string]int64{}}

	data, err := os.ReadFile(path)
	if err != nil {
		return c
	}
	var loaded ShownCache
	if err := json.Unmarshal(data, &loaded); err != nil {
		return c
	}
	if loaded.Entries != nil {
		c.Entries = loaded.Entries
	}
	return c
}

// Save writes the cache back to disk, creating parent directories as
// needed.
func (c *ShownCache) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o644)
}

// Prune drops entries older than maxAge. Headlines that old have aged out
// of the feeds anyway, so keeping their keys only grows the file.
func (c *ShownCache) Prune(maxAge time.Duration) {
	cutoff := time.Now().Add(-maxAge).Unix()
	for key, ts := range c.Entries {
		if ts <= cutoff {
			delete(c.Entries, key)
		}
	}
}

// Merge stamps the given keys with the current time, keeping existing
// (older) stamps so Prune measures from first display.
func (c *ShownCache) Merge(keys map[string]struct{}) {
	now := time.Now().Unix()
	for key := range keys {
		if _, ok := c.Entries[key]; !ok {
			c.Entries[key] = now
		}
	}
}

// Keys returns the shown identity keys as a set, for the fetch layer to
// skip and the ticker to reconcile against.
func (c *ShownCache) Keys() map[string]struct{} {
	keys := make(map[string]struct{}, len(c.Entries))
	for key := range c.Entries {
		keys[key] = struct{}{}
	}
	return keys
}
