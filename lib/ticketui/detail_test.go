// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opsdesk-project/opsdesk/lib/schema/ticket"
	"github.com/opsdesk-project/opsdesk/lib/ticketflow"
)

func openFixture() ticket.Ticket {
	return ticket.Ticket{
		ID:             55,
		Date:           "2026-03-05",
		FullName:       "Дарья Орлова",
		Email:          "darya@example.com",
		Object:         "Бойлер Терм-80",
		DeviceType:     "бойлер",
		Emotion:        "разочарование",
		Issue:          "Вода греется только до 40 градусов.",
		SuggestedReply: "Похоже на накипь на ТЭНе, рекомендуем чистку.",
		Status:         ticket.StatusOpen,
	}
}

func TestDetailOpenPrefillsEditors(t *testing.T) {
	pane := NewDetailPane(DefaultTheme)
	pane.SetSize(80, 30)

	if previous := pane.Open(openFixture()); previous != nil {
		t.Fatal("first Open should have no previous session")
	}
	if pane.subjectEditor.Value() != "Re: Бойлер Терм-80" {
		t.Errorf("subject = %q", pane.subjectEditor.Value())
	}
	if pane.bodyEditor.Value() != "Похоже на накипь на ТЭНе, рекомендуем чистку." {
		t.Errorf("body = %q", pane.bodyEditor.Value())
	}
	if got := pane.Session().Ticket().Status; got != ticket.StatusInProgress {
		t.Errorf("status after open = %q, want in_progress", got)
	}
}

func TestDetailOpenAbandonsPrevious(t *testing.T) {
	pane := NewDetailPane(DefaultTheme)
	pane.SetSize(80, 30)
	pane.Open(openFixture())

	second := openFixture()
	second.ID = 56
	previous := pane.Open(second)
	if previous == nil {
		t.Fatal("opening another ticket should return the abandoned session")
	}
	if previous.Ticket().ID != 55 {
		t.Errorf("previous session ticket = %d, want 55", previous.Ticket().ID)
	}
	if !previous.Reverted() {
		t.Error("abandoned auto-advance should report Reverted")
	}
	if pane.Session().Ticket().ID != 56 {
		t.Errorf("active session ticket = %d, want 56", pane.Session().Ticket().ID)
	}
}

func TestDetailHandleKeySyncsSession(t *testing.T) {
	pane := NewDetailPane(DefaultTheme)
	pane.SetSize(80, 30)
	pane.Open(openFixture())

	// Body has the cursor after open; typing appends to the draft.
	pane.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'!'}})
	if got := pane.Session().Body(); !strings.HasSuffix(got, "чистку.!") {
		t.Errorf("body after typing = %q", got)
	}

	pane.CycleField()
	pane.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if got := pane.Session().Subject(); !strings.HasSuffix(got, "Терм-80?") {
		t.Errorf("subject after typing = %q", got)
	}
}

func TestDetailReadOnlyDropsEdits(t *testing.T) {
	record := openFixture()
	record.Status = ticket.StatusClosed
	pane := NewDetailPane(DefaultTheme)
	pane.SetSize(80, 30)
	pane.Open(record)

	before := pane.Session().Body()
	pane.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if got := pane.Session().Body(); got != before {
		t.Errorf("read-only body changed: %q", got)
	}
	if !strings.Contains(pane.View(true), "read-only") {
		t.Error("closed ticket view should say read-only")
	}
}

func TestDetailPrepareSendWithoutSession(t *testing.T) {
	pane := NewDetailPane(DefaultTheme)
	if _, err := pane.PrepareSend(); !errors.Is(err, ticketflow.ErrTicketClosed) {
		t.Errorf("PrepareSend with no session = %v, want ErrTicketClosed", err)
	}
}

func TestDetailViewShowsRecord(t *testing.T) {
	pane := NewDetailPane(DefaultTheme)
	pane.SetSize(90, 30)

	if !strings.Contains(pane.View(false), "Select a ticket") {
		t.Error("empty pane should show the placeholder")
	}

	pane.Open(openFixture())
	view := pane.View(true)
	for _, want := range []string{
		"Ticket #55",
		"Дарья Орлова",
		"darya@example.com",
		"Вода греется только до 40 градусов.",
		"Re: Бойлер Терм-80",
		"C-d send",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	// Blank record fields render as a dash.
	if !strings.Contains(view, "—") {
		t.Error("empty serials should render as a dash")
	}
}
