// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/opsdesk-project/opsdesk/lib/schema/ticket"
)

// Column widths for the list table. The issue column fills remaining
// space; all others are fixed.
const (
	columnWidthID   = 7  // "#12345 "
	columnWidthDate = 11 // "2026-08-31 "
	columnWidthName = 18 // customer name, truncated

	// leftWidth is the width of everything before the issue column:
	// 1 (indent) + ID + date + 2 (emotion icon) + 1 + 2 (status
	// icon + space) + name + 1.
	leftWidth = 1 + columnWidthID + columnWidthDate + 3 + 2 + columnWidthName + 1
)

// emotionIcon returns a double-width emoji for a classifier sentiment
// label. The vocabulary is open, so unknown labels get a blank of the
// same width to keep columns aligned.
func emotionIcon(emotion string) string {
	switch emotion {
	case "гнев":
		return "😠"
	case "раздражение":
		return "😤"
	case "тревога":
		return "😰"
	case "разочарование":
		return "😞"
	case "удивление":
		return "😮"
	case "спокойствие":
		return "😌"
	default:
		return "  " // 2 spaces to match emoji width
	}
}

// statusIcon returns a single-character indicator for a lifecycle
// state: open tickets need attention, in-progress are being handled,
// closed are done.
func statusIcon(status ticket.Status) string {
	switch status {
	case ticket.StatusInProgress:
		return "◐"
	case ticket.StatusClosed:
		return "●"
	default:
		return "○"
	}
}

// ListRenderer handles the table-style rendering of ticket rows within
// a given width.
type ListRenderer struct {
	theme Theme
	width int
}

// NewListRenderer creates a ListRenderer for the given width.
func NewListRenderer(theme Theme, width int) ListRenderer {
	return ListRenderer{theme: theme, width: width}
}

// RenderHeader renders the column header line.
func (renderer ListRenderer) RenderHeader() string {
	headerStyle := lipgloss.NewStyle().
		Foreground(renderer.theme.HeaderForeground).
		Bold(true).
		Width(renderer.width).
		MaxWidth(renderer.width)

	header := fmt.Sprintf(" %-*s%-*s%-3s%-2s %-*s%s",
		columnWidthID, "ID",
		columnWidthDate, "Date",
		"", "",
		columnWidthName, "Customer",
		"Issue")
	return headerStyle.Render(header)
}

// RenderRow renders a single ticket as a formatted table row. The
// selected flag controls whether the row gets highlight styling.
//
// Row layout: indent + ID + date + emotion icon + status icon + name + issue
//
//	#42    2026-08-30 😰 ○ Anna Petrova       Pump pressure drops overnight
func (renderer ListRenderer) RenderRow(record ticket.Ticket, selected bool) string {
	issueWidth := renderer.width - leftWidth
	if issueWidth < 10 {
		issueWidth = 10
	}

	id := fmt.Sprintf("#%d", record.ID)
	name := truncateString(record.FullName, columnWidthName-1)
	issue := record.Issue
	if lipgloss.Width(issue) > issueWidth {
		issue = truncateString(issue, issueWidth-1) + "…"
	}

	if selected {
		baseStyle := lipgloss.NewStyle().
			Background(renderer.theme.SelectedBackground).
			Foreground(renderer.theme.SelectedForeground)
		row := " " +
			baseStyle.Width(columnWidthID).Render(id) +
			baseStyle.Width(columnWidthDate).Render(record.Date) +
			baseStyle.Render(emotionIcon(record.Emotion)+" ") +
			baseStyle.Render(statusIcon(record.Status)+" ") +
			baseStyle.Width(columnWidthName).Render(name) +
			" " + baseStyle.Render(issue)
		return baseStyle.Width(renderer.width).MaxWidth(renderer.width).Render(row)
	}

	idStyle := lipgloss.NewStyle().
		Width(columnWidthID).
		Foreground(renderer.theme.FaintText)
	dateStyle := lipgloss.NewStyle().
		Width(columnWidthDate).
		Foreground(renderer.theme.FaintText)
	statusStyle := lipgloss.NewStyle().
		Foreground(renderer.theme.StatusColor(record.Status))
	nameStyle := lipgloss.NewStyle().
		Width(columnWidthName).
		Foreground(renderer.theme.NormalText)
	issueStyle := lipgloss.NewStyle().
		Foreground(renderer.theme.NormalText)

	row := " " +
		idStyle.Render(id) +
		dateStyle.Render(record.Date) +
		emotionIcon(record.Emotion) + " " +
		statusStyle.Render(statusIcon(record.Status)) + " " +
		nameStyle.Render(name) +
		" " + issueStyle.Render(issue)

	return lipgloss.NewStyle().Width(renderer.width).MaxWidth(renderer.width).Render(row)
}

// truncateString truncates a string to maxWidth visual characters.
// Handles multi-byte characters correctly via lipgloss width
// measurement.
func truncateString(text string, maxWidth int) string {
	if lipgloss.Width(text) <= maxWidth {
		return text
	}
	runes := []rune(text)
	for length := len(runes) - 1; length >= 0; length-- {
		candidate := string(runes[:length])
		if lipgloss.Width(candidate) <= maxWidth {
			return candidate
		}
	}
	return ""
}
