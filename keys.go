package main

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the controller's bindings. The function keys mirror the
// classic commander layout; printable characters are never bound here in
// Browse because they feed the command line.
type keyMap struct {
	Quit        key.Binding
	ForceQuit   key.Binding
	FocusSwitch key.Binding
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Home        key.Binding
	End         key.Binding
	Activate    key.Binding
	Copy        key.Binding
	Paste       key.Binding
	Rename      key.Binding
	Delete      key.Binding
	Filter      key.Binding
	Cancel      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		FocusSwitch: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
		),
		End: key.NewBinding(
			key.WithKeys("end"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open/run"),
		),
		Copy: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "copy"),
		),
		Paste: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("F2", "paste"),
		),
		Rename: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("F3", "rename"),
		),
		Delete: key.NewBinding(
			key.WithKeys("f5"),
			key.WithHelp("F5", "delete"),
		),
		Filter: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "filter"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
