package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the application.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Back     key.Binding

	// Record actions
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Refresh key.Binding
	Yank    key.Binding

	// Appearance
	ThemePicker key.Binding
	CycleTheme  key.Binding
	DarkMode    key.Binding

	// Misc
	Filter      key.Binding
	Command     key.Binding
	AutoRefresh key.Binding
	Logs        key.Binding
	Help        key.Binding
	Quit        key.Binding

	// Log scrolling
	LogScrollUp   key.Binding
	LogScrollDown key.Binding
	LogScrollEnd  key.Binding

	// Filter mode
	FilterAccept key.Binding
	FilterClear  key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn", "page down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add student"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e/enter", "edit student"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete student"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "refresh"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yank row"),
		),
		ThemePicker: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "choose theme"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "next theme"),
		),
		DarkMode: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "dark mode"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command"),
		),
		AutoRefresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "auto-refresh"),
		),
		Logs: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "logs"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		LogScrollUp: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "scroll logs up"),
		),
		LogScrollDown: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "scroll logs down"),
		),
		LogScrollEnd: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "scroll logs to end"),
		),
		FilterAccept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "accept"),
		),
		FilterClear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Add, k.Edit, k.Delete, k.Filter, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown},
		{k.Add, k.Edit, k.Delete, k.Refresh, k.Yank, k.AutoRefresh},
		{k.ThemePicker, k.CycleTheme, k.DarkMode, k.Filter, k.Command},
		{k.Logs, k.LogScrollUp, k.LogScrollDown, k.LogScrollEnd, k.Help, k.Quit},
	}
}
