// Chyron scrolls RSS/Atom headlines across the terminal like a broadcast
// news ticker. Usage: chyron [flags]; see chyron --help.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nathoo/chyron/cache"
	"github.com/nathoo/chyron/cli"
	"github.com/nathoo/chyron/config"
	"github.com/nathoo/chyron/feeds"
	"github.com/nathoo/chyron/filter"
	"github.com/nathoo/chyron/ticker"
	"github.com/nathoo/chyron/tui"
	"github.com/nathoo/chyron/types"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	args, err := config.ParseArgs(os.Args[1:])
	if err != nil {
		// pflag already printed the problem and usage.
		os.Exit(2)
	}

	if args.Version {
		fmt.Printf("chyron %s (commit %s, built %s)\n", version, commit, date)
		return
	}
	if args.PrintConfig {
		fmt.Print(config.Example)
		return
	}

	cfg, err := config.Load(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(args.Debug)
	logger.Info("starting", "version", version)

	feeds.UserAgent = "chyron/" + version

	if cfg.FeedsPath == "" {
		fmt.Fprintln(os.Stderr, "No feeds file found.")
		fmt.Fprintln(os.Stderr, "Create ~/.newsboat/urls or ~/.config/chyron/urls with one feed URL per line,")
		fmt.Fprintln(os.Stderr, "or point at one with --feeds <path>.")
		os.Exit(1)
	}

	urls, err := feeds.ParseURLsFile(cfg.FeedsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading feeds file: %v\n", err)
		os.Exit(1)
	}
	if len(urls) == 0 {
		fmt.Fprintf(os.Stderr, "No feed URLs in %s.\n", cfg.FeedsPath)
		os.Exit(1)
	}

	client := feeds.NewClient()

	if args.Validate {
		runValidate(client, urls)
		return
	}

	if args.Plain || !isTerminal() {
		runPlain(cfg, client, urls, logger)
		return
	}

	shown := cache.Load(cache.DefaultPath())

	var fl *filter.Filter
	if cfg.FilterPath != "" {
		fl, err = filter.Load(cfg.FilterPath)
		if err != nil {
			logger.Warn("filter script not loaded", "path", cfg.FilterPath, "err", err)
		} else {
			defer fl.Close()
			logger.Info("filter script loaded", "path", cfg.FilterPath)
		}
	}

	// Watch the config file so edits apply without a restart. The 'c' key
	// still reloads manually if the watch cannot start.
	var reload <-chan struct{}
	if cfg.ConfigPath != "" {
		watcher, err := config.Watch(cfg.ConfigPath)
		if err != nil {
			logger.Warn("config watch unavailable", "err", err)
		} else {
			defer watcher.Close()
			reload = watcher.Events
		}
	}

	app := tui.App{
		Config:   cfg,
		Ticker:   ticker.New(cfg),
		Client:   client,
		FeedURLs: urls,
		Cache:    shown,
		Filter:   fl,
		Logger:   logger,
	}
	if err := tui.Run(app, reload); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runValidate checks every feed and exits non-zero if any fails.
func runValidate(client *http.Client, urls []string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	results := make([]feeds.ValidationResult, 0, len(urls))
	for _, url := range urls {
		results = append(results, feeds.Validate(ctx, client, url))
	}

	if !cli.New().PrintValidation(results) {
		os.Exit(1)
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// newLogger writes structured logs to ~/.cache/chyron/chyron.log; the TUI
// owns the terminal. Logging falls back to discard if the file cannot be
// opened.
func newLogger(debug bool) *log.Logger {
	var out io.Writer = io.Discard

	path := filepath.Join(filepath.Dir(cache.DefaultPath()), "chyron.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			out = f
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// runPlain fetches every feed once and prints the headlines to stdout.
func runPlain(cfg *config.Config, client *http.Client, urls []string, logger *log.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var all []types.Headline
	for _, url := range urls {
		_, headlines, err := feeds.Fetch(ctx, client, url, feeds.Options{
			MaxItems: cfg.MaxPerFeed,
			MaxAge:   cfg.MaxAge,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			logger.Warn("feed fetch failed", "url", url, "err", err)
			continue
		}
		all = append(all, headlines...)
	}
	if len(all) > cfg.MaxTotal {
		all = all[:cfg.MaxTotal]
	}

	out := cli.New()
	out.ShowSource = cfg.ShowSource
	out.PrintHeadlines(all)
}
