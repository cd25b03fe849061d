// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import (
	"github.com/charmbracelet/lipgloss"
)

// SearchModel is the customer name search input. Unlike a client-side
// filter, the query is applied server-side (the backend matches it
// against the customer name), so typing only edits the buffer; the
// model debounces and refetches when the input settles.
type SearchModel struct {
	// Input is the current search text.
	Input string

	// Active is true when the search input has keyboard focus
	// (the user pressed / to start typing).
	Active bool
}

// HandleRune processes a character typed while the search is active.
// Returns true if the input changed.
func (search *SearchModel) HandleRune(character rune) bool {
	search.Input += string(character)
	return true
}

// HandleBackspace removes the last character from the search input.
// Returns true if the input changed.
func (search *SearchModel) HandleBackspace() bool {
	if len(search.Input) == 0 {
		return false
	}
	runes := []rune(search.Input)
	search.Input = string(runes[:len(runes)-1])
	return true
}

// Clear resets the search input and deactivates it.
func (search *SearchModel) Clear() {
	search.Input = ""
	search.Active = false
}

// View renders the search bar. When active, shows the input with a
// cursor. When inactive with text, shows the query as a subtle
// indicator. When inactive with no text, returns empty string
// (hidden).
func (search *SearchModel) View(theme Theme, width int) string {
	if !search.Active && search.Input == "" {
		return ""
	}

	style := lipgloss.NewStyle().
		Foreground(theme.NormalText).
		Width(width)

	if search.Active {
		cursor := lipgloss.NewStyle().
			Foreground(theme.HeaderForeground).
			Bold(true).
			Render("▎")
		return style.Render(" / " + search.Input + cursor)
	}

	dimStyle := lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Width(width)
	return dimStyle.Render(" name: " + search.Input)
}
