// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/opsdesk-project/opsdesk/lib/schema/ticket"
	"github.com/opsdesk-project/opsdesk/lib/ticketstats"
)

// maxChartRows caps how many rows each chart shows. Groups beyond the
// cap are folded into an "other" row so a long tail of one-off labels
// does not push the charts off screen.
const maxChartRows = 8

// AnalyticsPane renders the analytics tab from a working-set snapshot.
type AnalyticsPane struct {
	theme Theme

	width  int
	height int

	tickets []ticket.Ticket
	loaded  bool
}

// NewAnalyticsPane creates an empty analytics pane.
func NewAnalyticsPane(theme Theme) AnalyticsPane {
	return AnalyticsPane{theme: theme}
}

// SetSize updates the pane dimensions.
func (pane *AnalyticsPane) SetSize(width, height int) {
	pane.width = width
	pane.height = height
}

// SetTickets replaces the working set the charts are computed from.
func (pane *AnalyticsPane) SetTickets(tickets []ticket.Ticket) {
	pane.tickets = tickets
	pane.loaded = true
}

// Loaded reports whether a snapshot has arrived.
func (pane *AnalyticsPane) Loaded() bool {
	return pane.loaded
}

// capRows folds rows beyond maxChartRows into a single "other" row.
func capRows(rows []ticketstats.NameValue) []ticketstats.NameValue {
	if len(rows) <= maxChartRows {
		return rows
	}
	capped := make([]ticketstats.NameValue, maxChartRows)
	copy(capped, rows[:maxChartRows-1])
	other := ticketstats.NameValue{Name: "other"}
	for _, row := range rows[maxChartRows-1:] {
		other.Value += row.Value
	}
	capped[maxChartRows-1] = other
	return capped
}

// renderBarChart renders labelled horizontal bars, scaled so the
// largest value fills the available bar width.
func (pane AnalyticsPane) renderBarChart(title string, rows []ticketstats.NameValue) []string {
	titleStyle := lipgloss.NewStyle().Foreground(pane.theme.HeaderForeground).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(pane.theme.NormalText)
	barStyle := lipgloss.NewStyle().Foreground(pane.theme.ChartBar)
	countStyle := lipgloss.NewStyle().Foreground(pane.theme.FaintText)

	lines := []string{" " + titleStyle.Render(title)}
	if len(rows) == 0 {
		lines = append(lines, "  "+countStyle.Render("no data"))
		return lines
	}

	rows = capRows(rows)
	labelWidth := 0
	maxValue := 0
	for _, row := range rows {
		if width := ansi.StringWidth(row.Name); width > labelWidth {
			labelWidth = width
		}
		if row.Value > maxValue {
			maxValue = row.Value
		}
	}
	if labelWidth > 20 {
		labelWidth = 20
	}

	barWidth := pane.width - labelWidth - 10
	if barWidth < 5 {
		barWidth = 5
	}

	for _, row := range rows {
		name := row.Name
		if ansi.StringWidth(name) > labelWidth {
			name = truncateString(name, labelWidth-1) + "…"
		}
		pad := labelWidth - ansi.StringWidth(name)
		length := row.Value * barWidth / maxValue
		if length < 1 {
			length = 1
		}
		lines = append(lines, "  "+
			labelStyle.Render(name)+strings.Repeat(" ", pad)+" "+
			barStyle.Render(strings.Repeat("█", length))+" "+
			countStyle.Render(fmt.Sprintf("%d", row.Value)))
	}
	return lines
}

// View renders the analytics tab.
func (pane AnalyticsPane) View() string {
	faintStyle := lipgloss.NewStyle().Foreground(pane.theme.FaintText)
	if !pane.loaded {
		return faintStyle.Render(" Loading analytics…")
	}
	if len(pane.tickets) == 0 {
		return faintStyle.Render(" No tickets recorded yet.")
	}

	summary := ticketstats.Summarize(pane.tickets)
	summaryStyle := lipgloss.NewStyle().Foreground(pane.theme.NormalText)

	var lines []string
	lines = append(lines, " "+summaryStyle.Render(fmt.Sprintf(
		"%d tickets  ·  %d closed  ·  %d objects  ·  %d device types  ·  %d days",
		summary.Total, summary.Closed, summary.DistinctObjects,
		summary.DistinctDeviceTypes, summary.DaysRecorded)))
	lines = append(lines, "")

	lines = append(lines, pane.renderBarChart("By emotion", ticketstats.ByEmotion(pane.tickets))...)
	lines = append(lines, "")
	lines = append(lines, pane.renderBarChart("By device type", ticketstats.ByDeviceType(pane.tickets))...)
	lines = append(lines, "")
	lines = append(lines, pane.renderBarChart("By status", ticketstats.ByStatus(pane.tickets))...)
	lines = append(lines, "")

	// Day series at the bottom, most recent days last.
	days := ticketstats.ByDay(pane.tickets)
	dayRows := make([]ticketstats.NameValue, len(days))
	for i, day := range days {
		dayRows[i] = ticketstats.NameValue{Name: day.Day, Value: day.Count}
	}
	if len(dayRows) > maxChartRows {
		dayRows = dayRows[len(dayRows)-maxChartRows:]
	}
	lines = append(lines, pane.renderBarChart("By day", dayRows)...)

	if len(lines) > pane.height {
		lines = lines[:pane.height]
	}
	return strings.Join(lines, "\n")
}
