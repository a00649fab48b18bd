package config

import (
	"github.com/spf13/pflag"
)

// CLIArgs holds the parsed command-line flags. Fields only override the
// config file when their flag was actually given; Changed reports that.
type CLIArgs struct {
	ConfigPath     string
	FeedsPath      string
	Delimiter      string
	Speed          int
	Sort           string
	Pause          string
	Rotation       string
	ClickModifier  string
	RefreshMinutes int
	MaxAgeHours    int
	MaxPerFeed     int
	MaxTotal       int
	ShowSource     bool
	HideSource     bool
	StatusBar      bool
	NoStatusBar    bool
	Validate       bool
	PrintConfig    bool
	Plain          bool
	Debug          bool
	Version        bool

	flags *pflag.FlagSet
}

// ParseArgs parses command-line arguments (without the program name).
func ParseArgs(argv []string) (*CLIArgs, error) {
	args := &CLIArgs{}
	fs := pflag.NewFlagSet("chyron", pflag.ContinueOnError)

	fs.StringVarP(&args.ConfigPath, "config", "c", "", "path to config file (default: ~/.config/chyron/config.toml)")
	fs.StringVarP(&args.FeedsPath, "feeds", "f", "", "path to feeds file (default: ~/.newsboat/urls or ~/.config/chyron/urls)")
	fs.StringVarP(&args.Delimiter, "delimiter", "d", " ••• ", "delimiter between headlines")
	fs.IntVarP(&args.Speed, "speed", "s", 8, "scroll speed in characters per second")
	fs.StringVar(&args.Sort, "sort", string(SortByDate), "headline order: random, by_source, by_date, by_date_asc")
	fs.StringVar(&args.Pause, "pause", string(PauseHover), "auto-pause mode: hover, focus, never")
	fs.StringVar(&args.Rotation, "rotation", string(RotationFair), "rotation mode: continuous, fair")
	fs.StringVar(&args.ClickModifier, "click-modifier", string(ClickNone), "modifier required to open links: none, ctrl, shift, alt")
	fs.IntVar(&args.RefreshMinutes, "refresh-minutes", 5, "feed refresh interval in minutes")
	fs.IntVar(&args.MaxAgeHours, "max-age-hours", 24, "maximum headline age in hours")
	fs.IntVar(&args.MaxPerFeed, "max-per-feed", 10, "maximum headlines per feed")
	fs.IntVar(&args.MaxTotal, "max-total", 100, "maximum total headlines in rotation")
	fs.BoolVar(&args.ShowSource, "show-source", false, "show [source] prefix on headlines")
	fs.BoolVar(&args.HideSource, "hide-source", false, "hide [source] prefix on headlines")
	fs.BoolVar(&args.StatusBar, "status-bar", false, "show status bar with controls and state")
	fs.BoolVar(&args.NoStatusBar, "no-status-bar", false, "hide status bar")
	fs.BoolVar(&args.Validate, "validate", false, "validate all feeds and exit")
	fs.BoolVar(&args.PrintConfig, "print-config", false, "print an example config file and exit")
	fs.BoolVar(&args.Plain, "plain", false, "print current headlines once and exit (no TUI)")
	fs.BoolVar(&args.Debug, "debug", false, "enable debug logging")
	fs.BoolVar(&args.Version, "version", false, "print version and exit")

	if err := fs.Parse(argv); err != nil {
		return nil, err
	}

	args.flags = fs
	return args, nil
}

// Changed reports whether the named flag was explicitly set.
func (a *CLIArgs) Changed(name string) bool {
	if a.flags == nil {
		return false
	}
	return a.flags.Changed(name)
}
