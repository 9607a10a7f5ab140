package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keyboard shortcuts for the confirmation view.
type KeyMap struct {
	Accept key.Binding
	Reject key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Accept: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y/enter", "copy"),
		),
		Reject: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/esc", "skip"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
	}
}
