// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/opsdesk-project/opsdesk/lib/schema/ticket"
)

// Theme defines the color palette and visual properties for the
// console's terminal UI. All colors use lipgloss ANSI 256-color codes
// for broad terminal compatibility.
//
// The fields cover both universal chrome (text, selection, borders)
// and the semantic categories that recur across the console: ticket
// lifecycle states and sentiment accents.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Status colors.
	StatusOpen       lipgloss.Color
	StatusInProgress lipgloss.Color
	StatusClosed     lipgloss.Color

	// Sentiment accents: negative labels (anger, irritation) get the
	// alert color, everything else stays neutral.
	EmotionNegative lipgloss.Color
	EmotionNeutral  lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Error banner shown inline above the status bar.
	ErrorForeground lipgloss.Color
	ErrorBackground lipgloss.Color

	// Chart bars on the analytics tab.
	ChartBar lipgloss.Color
}

// StatusColor returns the color for a ticket lifecycle state.
func (theme Theme) StatusColor(status ticket.Status) lipgloss.Color {
	switch status {
	case ticket.StatusInProgress:
		return theme.StatusInProgress
	case ticket.StatusClosed:
		return theme.StatusClosed
	default:
		return theme.StatusOpen
	}
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed for
// 256-color terminals with a dark background (the common case for
// development environments and tmux sessions).
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	StatusOpen:       lipgloss.Color("114"), // green
	StatusInProgress: lipgloss.Color("220"), // yellow/amber
	StatusClosed:     lipgloss.Color("245"), // gray

	EmotionNegative: lipgloss.Color("196"), // red
	EmotionNeutral:  lipgloss.Color("245"), // gray

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	ErrorForeground: lipgloss.Color("255"),
	ErrorBackground: lipgloss.Color("88"), // dark red

	ChartBar: lipgloss.Color("75"), // blue
}
