// Package cli provides the non-interactive output paths: printing a
// one-shot headline listing for --plain mode (or piped output) and
// reporting feed validation results.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/nathoo/chyron/feeds"
	"github.com/nathoo/chyron/types"
)

// CLI writes plain-text output for non-TTY use.
type CLI struct {
	Out        io.Writer
	ShowSource bool
}

// New creates a CLI writing to stdout.
func New() *CLI {
	return &CLI{Out: os.Stdout}
}

// PrintHeadlines writes one headline per entry, with the link indented
// underneath when present.
func (c *CLI) PrintHeadlines(headlines []types.Headline) {
	if len(headlines) == 0 {
		fmt.Fprintln(c.Out, "No headlines.")
		return
	}
	for _, h := range headlines {
		if c.ShowSource && h.Source != "" {
			fmt.Fprintf(c.Out, "[%s] %s\n", h.Source, h.Title)
		} else {
			fmt.Fprintln(c.Out, h.Title)
		}
		if h.URL != "" {
			fmt.Fprintf(c.Out, "    %s\n", h.URL)
		}
	}
}

// PrintValidation writes one line per feed check plus a summary, and
// reports whether every feed validated.
func (c *CLI) PrintValidation(results []feeds.ValidationResult) bool {
	okCount := 0
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(c.Out, "✗ %s: %v\n", r.URL, r.Err)
			continue
		}
		okCount++
		fmt.Fprintf(c.Out, "✓ %s: %q (%d items)\n", r.URL, r.Title, r.ItemCount)
	}

	failed := len(results) - okCount
	fmt.Fprintf(c.Out, "\n%d ok, %d failed\n", okCount, failed)
	return failed == 0
}
