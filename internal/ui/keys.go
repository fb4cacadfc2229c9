package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keyboard bindings shared by both views.
type keyMap struct {
	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
	}
}
