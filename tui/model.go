// Package tui renders the scrolling ticker with Bubble Tea: a fixed-rate
// frame loop drives the ticker clock, the mouse resolves and opens
// headline links, and feeds refresh on a timer in the background.
package tui

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/pkg/browser"

	"github.com/nathoo/chyron/cache"
	"github.com/nathoo/chyron/config"
	"github.com/nathoo/chyron/feeds"
	"github.com/nathoo/chyron/filter"
	"github.com/nathoo/chyron/ticker"
	"github.com/nathoo/chyron/types"
)

// frameInterval is the tick cadence, roughly 60 frames per second. The
// ticker advances by measured elapsed time, so a late frame does not slow
// the scroll.
const frameInterval = 16 * time.Millisecond

// App bundles everything the TUI needs from main.
type App struct {
	Config   *config.Config
	Ticker   *ticker.Ticker
	Client   *http.Client
	FeedURLs []string
	Cache    *cache.ShownCache
	Filter   *filter.Filter
	Logger   *log.Logger
}

// Model is the Bubble Tea model for the ticker display.
type Model struct {
	cfg    *config.Config
	ticker *ticker.Ticker
	client *http.Client
	shown  *cache.ShownCache
	filter *filter.Filter
	logger *log.Logger
	keys   keyMap
	help   help.Model

	feedURLs []string
	reload   <-chan struct{} // config watcher notifications, nil without a watcher

	width     int
	height    int
	ready     bool
	tickerRow int // terminal row of the ticker line, for hover detection

	mouseX  int // -1 when the pointer position is unknown
	mouseY  int
	focused bool

	statusMsg   string
	lastFrame   time.Time
	lastRefresh time.Time
	refreshing  bool
	quitting    bool
}

type frameMsg time.Time

// headlinesMsg delivers a finished background refresh.
type headlinesMsg struct {
	headlines []types.Headline
	filterErr error // non-nil when the Lua filter failed and must be disabled
}

// reloadMsg arrives when the config file watcher sees a change.
type reloadMsg struct{}

// New creates the model. reload may be nil when no watcher is running.
func New(app App, reload <-chan struct{}) Model {
	return Model{
		cfg:      app.Config,
		ticker:   app.Ticker,
		client:   app.Client,
		shown:    app.Cache,
		filter:   app.Filter,
		logger:   app.Logger,
		feedURLs: app.FeedURLs,
		keys:     defaultKeyMap(),
		help:     help.New(),
		reload:   reload,
		mouseX:    -1,
		mouseY:    -1,
		focused:   true,
		statusMsg: "Loading feeds...",
	}
}

// Run starts the Bubble Tea program and, on exit, merges the ticker's
// shown keys into the on-disk cache.
func Run(app App, reload <-chan struct{}) error {
	m := New(app, reload)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)
	_, err := p.Run()

	app.Cache.Merge(app.Ticker.ShownKeys())
	app.Cache.Prune(app.Config.MaxAge)
	if saveErr := app.Cache.Save(); saveErr != nil {
		app.Logger.Warn("could not save shown cache", "err", saveErr)
	}

	return err
}

// Init kicks off the frame loop, the first fetch, and the reload listener.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{frameTick(), m.refreshCmd()}
	if m.reload != nil {
		cmds = append(cmds, m.waitReload())
	}
	return tea.Batch(cmds...)
}

// Update handles messages: frame ticks, input, refresh results, reloads.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.tickerRow = m.topPadding()

	case tea.FocusMsg:
		m.focused = true

	case tea.BlurMsg:
		m.focused = false
		// Forget the pointer so hover pause releases.
		m.mouseX, m.mouseY = -1, -1

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case frameMsg:
		return m.handleFrame(time.Time(msg))

	case headlinesMsg:
		m.refreshing = false
		m.lastRefresh = time.Now()
		m.statusMsg = ""
		if msg.filterErr != nil {
			m.logger.Warn("filter script failed, disabling for this session", "err", msg.filterErr)
			m.filter = nil
		}
		m.ticker.SetHeadlines(msg.headlines, m.cfg.Sort)
		m.logger.Debug("headlines updated", "count", len(msg.headlines))

	case reloadMsg:
		m.applyConfigReload()
		return m, m.waitReload()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.ticker.TogglePause()

	case key.Matches(msg, m.keys.SpeedUp):
		m.ticker.SetSpeed(clampSpeed(m.ticker.Speed() + 2))

	case key.Matches(msg, m.keys.SpeedDown):
		m.ticker.SetSpeed(clampSpeed(m.ticker.Speed() - 2))

	case key.Matches(msg, m.keys.Refresh):
		if !m.refreshing {
			m.statusMsg = "Refreshing feeds..."
			m.refreshing = true
			return m, m.refreshCmd()
		}

	case key.Matches(msg, m.keys.Reload):
		m.applyConfigReload()
	}

	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionMotion:
		m.mouseX = msg.X
		m.mouseY = msg.Y

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			break
		}
		if !modifierHeld(m.cfg.ClickModifier, msg) {
			break
		}
		if msg.Y != m.tickerRow {
			break
		}
		if url := m.ticker.URLAt(msg.X, m.width); url != "" {
			return m, m.openURL(url)
		}
	}

	return m, nil
}

// handleFrame advances the clock by real elapsed time, applies the
// auto-pause policy, and schedules a feed refresh when due.
func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	var delta float64
	if !m.lastFrame.IsZero() {
		delta = now.Sub(m.lastFrame).Seconds()
	}
	m.lastFrame = now

	switch m.cfg.Pause {
	case config.PauseHover:
		if m.focused && m.mouseY == m.tickerRow && m.mouseY >= 0 {
			m.ticker.AutoPause()
		} else {
			m.ticker.AutoResume()
		}
	case config.PauseFocus:
		if m.focused {
			m.ticker.AutoPause()
		} else {
			m.ticker.AutoResume()
		}
	case config.PauseNever:
		m.ticker.AutoResume()
	}

	m.ticker.Tick(delta)

	cmds := []tea.Cmd{frameTick()}
	if !m.refreshing && !m.lastRefresh.IsZero() && time.Since(m.lastRefresh) >= m.cfg.RefreshInterval {
		m.refreshing = true
		cmds = append(cmds, m.refreshCmd())
	}
	return m, tea.Batch(cmds...)
}

// applyConfigReload re-reads the config file, keeping CLI overrides, and
// pushes the values the ticker consumes live.
func (m *Model) applyConfigReload() {
	changed, err := m.cfg.Reload()
	if err != nil {
		m.logger.Warn("config reload failed", "err", err)
		m.statusMsg = "Config reload failed"
		return
	}
	if !changed {
		return
	}
	m.ticker.SetSpeed(m.cfg.Speed)
	m.tickerRow = m.topPadding()
	m.statusMsg = "Config reloaded"
	m.logger.Info("config reloaded", "speed", m.cfg.Speed)
}

// frameTick schedules the next frame.
func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// refreshCmd fetches all feeds in the background and delivers one
// headlinesMsg. Headlines whose identity keys are in the shown cache or
// the ticker's in-memory shown set are skipped at the source.
func (m Model) refreshCmd() tea.Cmd {
	cfg := m.cfg
	client := m.client
	urls := m.feedURLs
	fl := m.filter
	logger := m.logger

	skip := m.shown.Keys()
	for key := range m.ticker.ShownKeys() {
		skip[key] = struct{}{}
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		var all []types.Headline
		for _, url := range urls {
			_, headlines, err := feeds.Fetch(ctx, client, url, feeds.Options{
				MaxItems: cfg.MaxPerFeed,
				MaxAge:   cfg.MaxAge,
				Shown:    skip,
			})
			if err != nil {
				logger.Warn("feed fetch failed", "url", url, "err", err)
				continue
			}
			all = append(all, headlines...)
		}

		var filterErr error
		if fl != nil {
			all, filterErr = applyFilter(fl, all)
		}

		if len(all) > cfg.MaxTotal {
			all = all[:cfg.MaxTotal]
		}
		return headlinesMsg{headlines: all, filterErr: filterErr}
	}
}

// applyFilter runs the Lua filter over each headline. The first script
// error stops filtering and passes the remainder through unchanged.
func applyFilter(fl *filter.Filter, headlines []types.Headline) ([]types.Headline, error) {
	kept := make([]types.Headline, 0, len(headlines))
	for i, h := range headlines {
		filtered, keep, err := fl.Apply(h)
		if err != nil {
			return append(kept, headlines[i:]...), err
		}
		if keep {
			kept = append(kept, filtered)
		}
	}
	return kept, nil
}

// waitReload blocks on the config watcher channel.
func (m Model) waitReload() tea.Cmd {
	ch := m.reload
	return func() tea.Msg {
		<-ch
		return reloadMsg{}
	}
}

// openURL launches the system browser for a clicked headline.
func (m Model) openURL(url string) tea.Cmd {
	logger := m.logger
	return func() tea.Msg {
		if err := browser.OpenURL(url); err != nil {
			logger.Warn("could not open url", "url", url, "err", err)
		}
		return nil
	}
}

// topPadding returns the number of blank rows above the ticker so the
// content sits vertically centered.
func (m Model) topPadding() int {
	content := 1
	if m.cfg.ShowStatusBar {
		content = 2
	}
	pad := (m.height - content) / 2
	if pad < 0 {
		pad = 0
	}
	return pad
}

// clampSpeed keeps keyboard speed adjustments in a usable range.
func clampSpeed(speed int) int {
	if speed < 1 {
		return 1
	}
	if speed > 100 {
		return 100
	}
	return speed
}

// modifierHeld checks the configured click modifier against a mouse event.
func modifierHeld(mod config.ClickModifier, msg tea.MouseMsg) bool {
	switch mod {
	case config.ClickCtrl:
		return msg.Ctrl
	case config.ClickShift:
		return msg.Shift
	case config.ClickAlt:
		return msg.Alt
	default:
		return true
	}
}
