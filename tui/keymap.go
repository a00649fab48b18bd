package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap declares the ticker key bindings with their help text.
type keyMap struct {
	Quit      key.Binding
	Pause     key.Binding
	SpeedUp   key.Binding
	SpeedDown key.Binding
	Refresh   key.Binding
	Reload    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause"),
		),
		SpeedUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "faster"),
		),
		SpeedDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "slower"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Reload: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "reload config"),
		),
	}
}

// ShortHelp is the single-line help shown in the status bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.SpeedUp, k.SpeedDown, k.Refresh, k.Reload, k.Quit}
}

// FullHelp satisfies help.KeyMap; the ticker only uses the short form.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
