package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap declares the button-equivalent commands: like and dismiss
// bypass the gesture tracker entirely, restart resets the session.
type keyMap struct {
	Like    key.Binding
	Dismiss key.Binding
	Restart key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Like: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "like"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "nope"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Dismiss, k.Like, k.Restart, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Dismiss, k.Like}, {k.Restart, k.Quit}}
}
