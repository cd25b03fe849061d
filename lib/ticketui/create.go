// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/opsdesk-project/opsdesk/lib/schema/ticket"
	"github.com/opsdesk-project/opsdesk/lib/tui"
)

// createFormFields lists the form inputs in display order.
var createFormFields = []string{
	"Date",
	"Customer",
	"Email",
	"Object",
	"Serials",
	"Device",
	"Emotion",
	"Issue",
}

// CreateForm is the new ticket entry form, shown in place of the
// detail pane. Up/down moves between fields, Ctrl+D submits, Esc
// cancels.
type CreateForm struct {
	theme Theme

	width  int
	height int

	editors []tui.LineEditor
	cursor  int

	// validationError holds the message from the last failed submit
	// attempt, shown under the form until the next edit.
	validationError string
}

// NewCreateForm creates an empty form.
func NewCreateForm(theme Theme) *CreateForm {
	form := &CreateForm{theme: theme}
	form.editors = make([]tui.LineEditor, len(createFormFields))
	return form
}

// SetSize updates the form dimensions.
func (form *CreateForm) SetSize(width, height int) {
	form.width = width
	form.height = height
}

// HandleKey routes a key message: up/down move between fields,
// everything else edits the focused field.
func (form *CreateForm) HandleKey(message tea.KeyMsg) {
	switch message.Type {
	case tea.KeyUp, tea.KeyShiftTab:
		if form.cursor > 0 {
			form.cursor--
		}
	case tea.KeyDown, tea.KeyTab, tea.KeyEnter:
		if form.cursor < len(form.editors)-1 {
			form.cursor++
		}
	default:
		form.editors[form.cursor].Update(message)
		form.validationError = ""
	}
}

// Draft assembles and validates the form content. On validation
// failure the error is recorded for display and returned.
func (form *CreateForm) Draft(now time.Time) (ticket.Draft, error) {
	draft := ticket.Draft{
		Date:          strings.TrimSpace(form.editors[0].Value()),
		FullName:      strings.TrimSpace(form.editors[1].Value()),
		Email:         strings.TrimSpace(form.editors[2].Value()),
		Object:        strings.TrimSpace(form.editors[3].Value()),
		SerialNumbers: strings.TrimSpace(form.editors[4].Value()),
		DeviceType:    strings.TrimSpace(form.editors[5].Value()),
		Emotion:       strings.TrimSpace(form.editors[6].Value()),
		Issue:         strings.TrimSpace(form.editors[7].Value()),
	}
	if err := draft.Validate(now); err != nil {
		form.validationError = err.Error()
		return ticket.Draft{}, err
	}
	return draft, nil
}

// View renders the form.
func (form *CreateForm) View(focused bool) string {
	headerStyle := lipgloss.NewStyle().Foreground(form.theme.HeaderForeground).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(form.theme.FaintText)
	errorStyle := lipgloss.NewStyle().
		Foreground(form.theme.ErrorForeground).
		Background(form.theme.ErrorBackground)

	lines := []string{" " + headerStyle.Render("New ticket"), ""}
	for index, name := range createFormFields {
		marker := "  "
		if index == form.cursor {
			marker = "> "
		}
		showCursor := focused && index == form.cursor
		label := name
		if name == "Date" {
			label = "Date (blank = today)"
		}
		lines = append(lines, " "+marker+labelStyle.Render(padRight(label, 21))+
			form.editors[index].Render(form.theme, showCursor))
	}
	lines = append(lines, "")
	if form.validationError != "" {
		lines = append(lines, " "+errorStyle.Render(" "+form.validationError+" "))
	}
	lines = append(lines, " "+labelStyle.Render("C-d submit  ↑/↓ field  Esc cancel"))

	for len(lines) < form.height {
		lines = append(lines, "")
	}
	if form.height > 0 && len(lines) > form.height {
		lines = lines[:form.height]
	}
	return strings.Join(lines, "\n")
}

// padRight pads a string with spaces to the given width.
func padRight(text string, width int) string {
	if len(text) >= width {
		return text
	}
	return text + strings.Repeat(" ", width-len(text))
}
