// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/opsdesk-project/opsdesk/lib/deskapi"
	"github.com/opsdesk-project/opsdesk/lib/schema/ticket"
	"github.com/opsdesk-project/opsdesk/lib/ticketflow"
	"github.com/opsdesk-project/opsdesk/lib/tui"
)

// replyField identifies which input inside the reply editor has the
// cursor.
type replyField int

const (
	replySubject replyField = iota
	replyBody
)

// DetailPane is the right pane: the selected ticket's full record and
// the inline reply editor. Opening a ticket opens a
// ticketflow.ReplySession; the pane owns the session and its editors,
// and the model persists the session's status transitions.
type DetailPane struct {
	theme Theme

	width  int
	height int

	session       *ticketflow.ReplySession
	subjectEditor tui.LineEditor
	bodyEditor    tui.TextEditor
	activeField   replyField
}

// NewDetailPane creates an empty detail pane.
func NewDetailPane(theme Theme) DetailPane {
	return DetailPane{theme: theme}
}

// SetSize updates the pane dimensions.
func (pane *DetailPane) SetSize(width, height int) {
	pane.width = width
	pane.height = height
}

// Open starts a reply session for the ticket, prefilling the subject
// and the machine-drafted body. Any previous session is abandoned
// first (reverting its auto-advance), and the prior session is
// returned so the caller can persist that revert.
func (pane *DetailPane) Open(record ticket.Ticket) *ticketflow.ReplySession {
	previous := pane.Abandon()
	pane.session = ticketflow.NewReplySession(record)
	pane.subjectEditor = tui.NewLineEditor(pane.session.Subject())
	pane.bodyEditor = tui.NewTextEditor(pane.session.Body())
	pane.activeField = replyBody
	return previous
}

// Abandon closes the current session, if any, and returns it so the
// caller can persist the status revert. The pane goes empty.
func (pane *DetailPane) Abandon() *ticketflow.ReplySession {
	session := pane.session
	if session != nil {
		session.Close()
	}
	pane.session = nil
	return session
}

// Session returns the active reply session, or nil.
func (pane *DetailPane) Session() *ticketflow.ReplySession {
	return pane.session
}

// HasSession reports whether a ticket is open in the pane.
func (pane *DetailPane) HasSession() bool {
	return pane.session != nil
}

// CycleField moves the cursor between the subject and body inputs.
func (pane *DetailPane) CycleField() {
	if pane.activeField == replySubject {
		pane.activeField = replyBody
	} else {
		pane.activeField = replySubject
	}
}

// HandleKey routes a key message to the focused editor. Edits on a
// read-only session are dropped (the session refuses them anyway; the
// editors must not drift from it).
func (pane *DetailPane) HandleKey(message tea.KeyMsg) {
	session := pane.session
	if session == nil || session.ReadOnly() {
		return
	}
	if pane.activeField == replySubject {
		pane.subjectEditor.Update(message)
		session.SetSubject(pane.subjectEditor.Value())
		return
	}
	pane.bodyEditor.Update(message)
	session.SetBody(pane.bodyEditor.Value())
}

// PrepareSend validates the reply against the session and returns the
// payload to post.
func (pane *DetailPane) PrepareSend() (deskapi.Reply, error) {
	if pane.session == nil {
		return deskapi.Reply{}, ticketflow.ErrTicketClosed
	}
	return pane.session.PrepareSend()
}

// View renders the pane at its current size. The focused flag controls
// whether editor cursors are shown.
func (pane DetailPane) View(focused bool) string {
	if pane.session == nil {
		emptyStyle := lipgloss.NewStyle().
			Foreground(pane.theme.FaintText).
			Width(pane.width).
			Height(pane.height)
		return emptyStyle.Render(" Select a ticket to view it here.")
	}

	record := pane.session.Ticket()
	labelStyle := lipgloss.NewStyle().Foreground(pane.theme.FaintText)
	valueStyle := lipgloss.NewStyle().Foreground(pane.theme.NormalText)
	headerStyle := lipgloss.NewStyle().Foreground(pane.theme.HeaderForeground).Bold(true)
	statusStyle := lipgloss.NewStyle().Foreground(pane.theme.StatusColor(record.Status))

	var lines []string
	push := func(line string) {
		if ansi.StringWidth(line) > pane.width {
			line = ansi.Truncate(line, pane.width-1, "…")
		}
		lines = append(lines, line)
	}

	push(headerStyle.Render(fmt.Sprintf(" Ticket #%d", record.ID)) +
		"  " + statusStyle.Render(record.Status.Label()))
	push("")

	field := func(label, value string) {
		if value == "" {
			value = "—"
		}
		push(" " + labelStyle.Render(fmt.Sprintf("%-9s", label)) + valueStyle.Render(value))
	}
	field("Date", record.Date)
	field("Customer", record.FullName)
	field("Email", record.Email)
	field("Object", record.Object)
	field("Serials", record.SerialNumbers)
	field("Device", record.DeviceType)
	field("Emotion", strings.TrimSpace(emotionIcon(record.Emotion)+" "+record.Emotion))
	push("")

	push(" " + labelStyle.Render("Issue"))
	for _, excerptLine := range tui.ExtractExcerpt(record.Issue, pane.width-2, 4) {
		push("  " + valueStyle.Render(excerptLine))
	}
	push("")

	// Reply section.
	if pane.session.Sent() {
		push(" " + headerStyle.Render("Reply") + "  " + labelStyle.Render("sent ✓"))
	} else if pane.session.ReadOnly() {
		push(" " + headerStyle.Render("Reply") + "  " + labelStyle.Render("ticket closed, read-only"))
	} else {
		push(" " + headerStyle.Render("Reply"))
	}

	field("To", record.Email)

	subjectCursor := focused && !pane.session.ReadOnly() && pane.activeField == replySubject
	push(" " + labelStyle.Render(fmt.Sprintf("%-9s", "Subject")) +
		pane.subjectEditor.Render(pane.theme, subjectCursor))
	push("")

	// Body editor fills the remaining height, minus the footer line.
	bodyHeight := pane.height - len(lines) - 1
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	bodyCursor := focused && !pane.session.ReadOnly() && pane.activeField == replyBody
	for _, bodyLine := range pane.bodyEditor.RenderLines(pane.theme, pane.width-2, bodyHeight, bodyCursor) {
		push(" " + bodyLine)
	}

	if !pane.session.ReadOnly() {
		push(" " + labelStyle.Render("C-d send  Tab subject/body  Esc back"))
	}

	// Pad to the pane height.
	for len(lines) < pane.height {
		lines = append(lines, "")
	}
	if len(lines) > pane.height {
		lines = lines[:pane.height]
	}
	return strings.Join(lines, "\n")
}
