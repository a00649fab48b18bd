// Package config resolves chyron's layered configuration: command-line
// flags override the TOML config file, which overrides built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// SortMode controls the ordering of headlines within a generation.
type SortMode string

const (
	SortRandom    SortMode = "random"
	SortBySource  SortMode = "by_source"
	SortByDate    SortMode = "by_date"
	SortByDateAsc SortMode = "by_date_asc"
)

// ParseSortMode parses a sort mode name.
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(s) {
	case SortRandom, SortBySource, SortByDate, SortByDateAsc:
		return SortMode(s), nil
	}
	return "", fmt.Errorf("invalid sort mode %q (want random, by_source, by_date, or by_date_asc)", s)
}

// UnmarshalText lets SortMode decode from TOML.
func (m *SortMode) UnmarshalText(text []byte) error {
	parsed, err := ParseSortMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// PauseMode controls when the ticker auto-pauses.
type PauseMode string

const (
	PauseHover PauseMode = "hover" // pause while the mouse hovers the ticker row
	PauseFocus PauseMode = "focus" // pause while the terminal window is focused
	PauseNever PauseMode = "never"
)

// ParsePauseMode parses a pause mode name.
func ParsePauseMode(s string) (PauseMode, error) {
	switch PauseMode(s) {
	case PauseHover, PauseFocus, PauseNever:
		return PauseMode(s), nil
	}
	return "", fmt.Errorf("invalid pause mode %q (want hover, focus, or never)", s)
}

// UnmarshalText lets PauseMode decode from TOML.
func (m *PauseMode) UnmarshalText(text []byte) error {
	parsed, err := ParsePauseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// RotationMode controls whether headlines repeat freely or every headline
// must be shown once before any repeats.
type RotationMode string

const (
	RotationContinuous RotationMode = "continuous"
	RotationFair       RotationMode = "fair"
)

// ParseRotationMode parses a rotation mode name.
func ParseRotationMode(s string) (RotationMode, error) {
	switch RotationMode(s) {
	case RotationContinuous, RotationFair:
		return RotationMode(s), nil
	}
	return "", fmt.Errorf("invalid rotation mode %q (want continuous or fair)", s)
}

// UnmarshalText lets RotationMode decode from TOML.
func (m *RotationMode) UnmarshalText(text []byte) error {
	parsed, err := ParseRotationMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ClickModifier is the keyboard modifier required for a click to open a link.
type ClickModifier string

const (
	ClickNone  ClickModifier = "none"
	ClickCtrl  ClickModifier = "ctrl"
	ClickShift ClickModifier = "shift"
	ClickAlt   ClickModifier = "alt"
)

// ParseClickModifier parses a click modifier name.
func ParseClickModifier(s string) (ClickModifier, error) {
	switch ClickModifier(s) {
	case ClickNone, ClickCtrl, ClickShift, ClickAlt:
		return ClickModifier(s), nil
	}
	return "", fmt.Errorf("invalid click modifier %q (want none, ctrl, shift, or alt)", s)
}

// UnmarshalText lets ClickModifier decode from TOML.
func (m *ClickModifier) UnmarshalText(text []byte) error {
	parsed, err := ParseClickModifier(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// FileConfig is the TOML config file structure. Pointer fields distinguish
// "absent" from "set to the zero value" so the CLI > file > default
// precedence works per field.
type FileConfig struct {
	Feeds          *string        `toml:"feeds"`
	Delimiter      *string        `toml:"delimiter"`
	Speed          *int           `toml:"speed"`
	Sort           *SortMode      `toml:"sort"`
	Pause          *PauseMode     `toml:"pause"`
	Rotation       *RotationMode  `toml:"rotation"`
	ClickModifier  *ClickModifier `toml:"click_modifier"`
	RefreshMinutes *int           `toml:"refresh_minutes"`
	MaxAgeHours    *int           `toml:"max_age_hours"`
	MaxPerFeed     *int           `toml:"max_per_feed"`
	MaxTotal       *int           `toml:"max_total"`
	ShowSource     *bool          `toml:"show_source"`
	StatusBar      *bool          `toml:"status_bar"`
	Filter         *string        `toml:"filter"`
}

// Config is the fully resolved runtime configuration.
type Config struct {
	ConfigPath      string
	FeedsPath       string
	FilterPath      string // path to filter.lua, empty when no filter is installed
	Delimiter       string
	Speed           int
	Sort            SortMode
	Pause           PauseMode
	Rotation        RotationMode
	ClickModifier   ClickModifier
	RefreshInterval time.Duration
	MaxAge          time.Duration
	MaxPerFeed      int
	MaxTotal        int
	ShowSource      bool
	ShowStatusBar   bool

	args *CLIArgs // retained so Reload re-applies the same CLI overrides
}

// Load resolves the configuration from CLI args, the config file, and
// defaults, in that precedence order.
func Load(args *CLIArgs) (*Config, error) {
	cfg, err := resolve(args)
	if err != nil {
		return nil, err
	}
	cfg.args = args
	return cfg, nil
}

// Reload re-reads the config file and re-applies the original CLI
// overrides. Returns true when any resolved value changed.
func (c *Config) Reload() (bool, error) {
	fresh, err := resolve(c.args)
	if err != nil {
		return false, err
	}

	old := *c
	old.args = nil
	changed := old != *fresh

	args := c.args
	*c = *fresh
	c.args = args
	return changed, nil
}

// resolve performs one full CLI > file > default merge.
func resolve(args *CLIArgs) (*Config, error) {
	configPath := args.ConfigPath
	if configPath == "" {
		configPath = filepath.Join(Dir(), "config.toml")
	}

	var fc FileConfig
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, &fc); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", configPath, err)
		}
	}

	cfg := &Config{
		ConfigPath:    configPath,
		Delimiter:     " ••• ",
		Speed:         8,
		Sort:          SortByDate,
		Pause:         PauseHover,
		Rotation:      RotationFair,
		ClickModifier: ClickNone,
		MaxPerFeed:    10,
		MaxTotal:      100,
		ShowSource:    true,
		ShowStatusBar: false,
	}
	refreshMinutes := 5
	maxAgeHours := 24

	// File layer.
	if fc.Delimiter != nil {
		cfg.Delimiter = *fc.Delimiter
	}
	if fc.Speed != nil {
		cfg.Speed = *fc.Speed
	}
	if fc.Sort != nil {
		cfg.Sort = *fc.Sort
	}
	if fc.Pause != nil {
		cfg.Pause = *fc.Pause
	}
	if fc.Rotation != nil {
		cfg.Rotation = *fc.Rotation
	}
	if fc.ClickModifier != nil {
		cfg.ClickModifier = *fc.ClickModifier
	}
	if fc.RefreshMinutes != nil {
		refreshMinutes = *fc.RefreshMinutes
	}
	if fc.MaxAgeHours != nil {
		maxAgeHours = *fc.MaxAgeHours
	}
	if fc.MaxPerFeed != nil {
		cfg.MaxPerFeed = *fc.MaxPerFeed
	}
	if fc.MaxTotal != nil {
		cfg.MaxTotal = *fc.MaxTotal
	}
	if fc.ShowSource != nil {
		cfg.ShowSource = *fc.ShowSource
	}
	if fc.StatusBar != nil {
		cfg.ShowStatusBar = *fc.StatusBar
	}

	// CLI layer.
	if args.Changed("delimiter") {
		cfg.Delimiter = args.Delimiter
	}
	if args.Changed("speed") {
		cfg.Speed = args.Speed
	}
	if args.Changed("sort") {
		parsed, err := ParseSortMode(args.Sort)
		if err != nil {
			return nil, err
		}
		cfg.Sort = parsed
	}
	if args.Changed("pause") {
		parsed, err := ParsePauseMode(args.Pause)
		if err != nil {
			return nil, err
		}
		cfg.Pause = parsed
	}
	if args.Changed("rotation") {
		parsed, err := ParseRotationMode(args.Rotation)
		if err != nil {
			return nil, err
		}
		cfg.Rotation = parsed
	}
	if args.Changed("click-modifier") {
		parsed, err := ParseClickModifier(args.ClickModifier)
		if err != nil {
			return nil, err
		}
		cfg.ClickModifier = parsed
	}
	if args.Changed("refresh-minutes") {
		refreshMinutes = args.RefreshMinutes
	}
	if args.Changed("max-age-hours") {
		maxAgeHours = args.MaxAgeHours
	}
	if args.Changed("max-per-feed") {
		cfg.MaxPerFeed = args.MaxPerFeed
	}
	if args.Changed("max-total") {
		cfg.MaxTotal = args.MaxTotal
	}

	// Boolean pairs: the explicit flag wins over the file value.
	if args.HideSource {
		cfg.ShowSource = false
	} else if args.ShowSource {
		cfg.ShowSource = true
	}
	if args.NoStatusBar {
		cfg.ShowStatusBar = false
	} else if args.StatusBar {
		cfg.ShowStatusBar = true
	}

	if cfg.Speed < 1 {
		return nil, fmt.Errorf("speed must be at least 1 character per second, got %d", cfg.Speed)
	}
	if refreshMinutes < 1 {
		return nil, fmt.Errorf("refresh interval must be at least 1 minute, got %d", refreshMinutes)
	}
	cfg.RefreshInterval = time.Duration(refreshMinutes) * time.Minute
	cfg.MaxAge = time.Duration(maxAgeHours) * time.Hour

	// Feeds file: CLI > file > discovery.
	switch {
	case args.FeedsPath != "":
		cfg.FeedsPath = args.FeedsPath
	case fc.Feeds != nil:
		cfg.FeedsPath = *fc.Feeds
	default:
		cfg.FeedsPath = DiscoverFeedsFile()
	}

	// Filter script: file setting > conventional location (only if present).
	if fc.Filter != nil {
		cfg.FilterPath = *fc.Filter
	} else {
		conventional := filepath.Join(Dir(), "filter.lua")
		if _, err := os.Stat(conventional); err == nil {
			cfg.FilterPath = conventional
		}
	}

	return cfg, nil
}

// Dir returns chyron's config directory (~/.config/chyron on Linux).
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "chyron")
}

// DiscoverFeedsFile returns the feeds file path, preferring an existing
// newsboat URLs file, then the chyron config dir. The config-dir path is
// returned even when missing so error messages can point somewhere useful.
func DiscoverFeedsFile() string {
	if home, err := os.UserHomeDir(); err == nil {
		newsboat := filepath.Join(home, ".newsboat", "urls")
		if _, err := os.Stat(newsboat); err == nil {
			return newsboat
		}
	}
	return filepath.Join(Dir(), "urls")
}
