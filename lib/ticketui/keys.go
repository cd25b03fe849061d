// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the ticket console TUI.
type KeyMap struct {
	// Navigation (context-sensitive: list movement or detail scrolling
	// depending on current focus).
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Focus switching between the list and detail panes.
	FocusToggle key.Binding

	// Tab switching.
	TabTickets   key.Binding
	TabAnalytics key.Binding

	// Server-side pagination.
	NextPage key.Binding
	PrevPage key.Binding

	// Filters.
	SearchActivate key.Binding // Enter the customer name search input.
	EmotionFilter  key.Binding // Open the emotion dropdown.
	DeviceFilter   key.Binding // Open the device type dropdown.
	DateFrom       key.Binding // Edit the lower date bound.
	DateTo         key.Binding // Edit the upper date bound.
	ClearFilters   key.Binding

	// Actions.
	OpenReply    key.Binding // Open the reply editor for the selected ticket.
	StatusChange key.Binding // Open the status dropdown.
	Create       key.Binding // Open the new ticket form.
	ExportCSV    key.Binding
	ExportExcel  key.Binding
	Refresh      key.Binding // Refetch the list and snapshot; doubles as the banner's retry.
	Send         key.Binding // Send the reply (reply editor only).
	Cancel       key.Binding // Dismiss the active input, dropdown, or form.

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys and page up/down.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+f", "pgdown"),
		key.WithHelp("C-f", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	FocusToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "switch pane"),
	),
	TabTickets: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "tickets"),
	),
	TabAnalytics: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "analytics"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("n", "right"),
		key.WithHelp("n", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("p", "left"),
		key.WithHelp("p", "prev page"),
	),
	SearchActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search name"),
	),
	EmotionFilter: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "emotion"),
	),
	DeviceFilter: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "device"),
	),
	DateFrom: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "date from"),
	),
	DateTo: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "date to"),
	),
	ClearFilters: key.NewBinding(
		key.WithKeys("C"),
		key.WithHelp("C", "clear filters"),
	),
	OpenReply: key.NewBinding(
		key.WithKeys("r", "enter"),
		key.WithHelp("r/⏎", "reply"),
	),
	StatusChange: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "status"),
	),
	Create: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "new ticket"),
	),
	ExportCSV: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "export csv"),
	),
	ExportExcel: key.NewBinding(
		key.WithKeys("X"),
		key.WithHelp("X", "export xlsx"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "refresh"),
	),
	Send: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("C-d", "send reply"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
