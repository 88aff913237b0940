package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Open           key.Binding
	Back           key.Binding
	InstalledOnly  key.Binding
	UpgradableOnly key.Binding
	Quit           key.Binding
}

var keys = keyMap{
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "details"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	InstalledOnly: key.NewBinding(
		key.WithKeys("I"),
		key.WithHelp("I", "installed only"),
	),
	UpgradableOnly: key.NewBinding(
		key.WithKeys("U"),
		key.WithHelp("U", "upgradable only"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
