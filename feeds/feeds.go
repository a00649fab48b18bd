// Package feeds fetches RSS/Atom feeds and turns their entries into
// ticker headlines. It also parses newsboat-style URLs files, so an
// existing ~/.newsboat/urls works unchanged.
package feeds

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/nathoo/chyron/types"
)

// UserAgent is sent with every feed request. Overridden by main with the
// build version.
var UserAgent = "chyron/dev"

const fetchTimeout = 30 * time.Second

// Options bounds what Fetch keeps from a feed.
type Options struct {
	MaxItems int                 // per-feed cap
	MaxAge   time.Duration       // drop dated entries older than this
	Shown    map[string]struct{} // identity keys to skip, for deeper feed exhaustion
}

// NewClient returns the HTTP client used for all feed fetches.
func NewClient() *http.Client {
	return &http.Client{Timeout: fetchTimeout}
}

// ParseURLsFile reads a newsboat-style URLs file: one URL per line,
// '#' comments, anything after whitespace (newsboat tags) ignored.
// Only http(s) URLs are kept.
func ParseURLsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read feeds file %s: %w", path, err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		url := strings.Fields(line)[0]
		if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
			urls = append(urls, url)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read feeds file %s: %w", path, err)
	}
	return urls, nil
}

// Fetch downloads and parses one feed, returning its display source name
// and the headlines that pass the age, shown-key, and per-feed limits.
func Fetch(ctx context.Context, client *http.Client, url string, opts Options) (string, []types.Headline, error) {
	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = UserAgent

	feed, err := parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return "", nil, fmt.Errorf("fetch feed %s: %w", url, err)
	}

	source := feed.Title
	if source == "" {
		source = url
	}

	cutoff := time.Now().Add(-opts.MaxAge)

	var headlines []types.Headline
	for _, item := range feed.Items {
		if opts.MaxItems > 0 && len(headlines) >= opts.MaxItems {
			break
		}

		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}

		published := publishedTime(item)
		if opts.MaxAge > 0 && !published.IsZero() && published.Before(cutoff) {
			continue
		}

		h := types.Headline{
			Title:     title,
			URL:       item.Link,
			Source:    source,
			Published: published,
		}

		// Skip already-shown entries so the next cycle digs deeper into
		// the feed instead of repeating.
		if _, ok := opts.Shown[h.Key()]; ok {
			continue
		}

		headlines = append(headlines, h)
	}

	return source, headlines, nil
}

// publishedTime prefers the published date and falls back to updated.
func publishedTime(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	return time.Time{}
}

// ValidationResult is the outcome of checking a single feed.
type ValidationResult struct {
	URL       string
	Title     string
	ItemCount int
	Err       error
}

// Validate fetches a feed and reports its title and entry count, for the
// --validate mode.
func Validate(ctx context.Context, client *http.Client, url string) ValidationResult {
	result := ValidationResult{URL: url}

	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = UserAgent

	feed, err := parser.ParseURLWithContext(url, ctx)
	if err != nil {
		result.Err = err
		return result
	}

	result.Title = feed.Title
	if result.Title == "" {
		result.Title = "Untitled"
	}
	result.ItemCount = len(feed.Items)
	return result
}
