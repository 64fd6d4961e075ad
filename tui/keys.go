package tui

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	up      key.Binding
	down    key.Binding
	toggle  key.Binding
	refresh key.Binding
	quit    key.Binding
}

func (k keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.up, k.down, k.toggle, k.refresh, k.quit}
}

func (k keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultKeymap = keymap{
	up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	toggle: key.NewBinding(
		key.WithKeys(" ", "space", "enter"),
		key.WithHelp("space", "start/stop"),
	),
	refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
