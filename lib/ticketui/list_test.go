// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/opsdesk-project/opsdesk/lib/schema/ticket"
)

func TestEmotionIconVocabulary(t *testing.T) {
	known := []string{"гнев", "раздражение", "тревога", "разочарование", "удивление", "спокойствие"}
	for _, emotion := range known {
		icon := emotionIcon(emotion)
		if icon == "  " {
			t.Errorf("emotionIcon(%q) fell through to the blank", emotion)
		}
		if got := lipgloss.Width(icon); got != 2 {
			t.Errorf("emotionIcon(%q) width = %d, want 2", emotion, got)
		}
	}

	// Unknown labels keep the columns aligned with a same-width blank.
	if got := emotionIcon("скука"); got != "  " {
		t.Errorf("emotionIcon(unknown) = %q, want two spaces", got)
	}
	if got := emotionIcon(""); got != "  " {
		t.Errorf("emotionIcon(empty) = %q, want two spaces", got)
	}
}

func TestStatusIcon(t *testing.T) {
	cases := []struct {
		status ticket.Status
		want   string
	}{
		{ticket.StatusOpen, "○"},
		{ticket.StatusInProgress, "◐"},
		{ticket.StatusClosed, "●"},
	}
	for _, test := range cases {
		if got := statusIcon(test.status); got != test.want {
			t.Errorf("statusIcon(%q) = %q, want %q", test.status, got, test.want)
		}
	}
}

func TestRenderRowContainsFields(t *testing.T) {
	renderer := NewListRenderer(DefaultTheme, 100)
	record := ticket.Ticket{
		ID:       42,
		Date:     "2026-08-30",
		FullName: "Анна Петрова",
		Emotion:  "тревога",
		Issue:    "Давление падает за ночь",
		Status:   ticket.StatusOpen,
	}

	for _, selected := range []bool{false, true} {
		row := renderer.RenderRow(record, selected)
		for _, want := range []string{"#42", "2026-08-30", "Анна Петрова", "😰", "○", "Давление падает за ночь"} {
			if !strings.Contains(row, want) {
				t.Errorf("selected=%v row missing %q: %q", selected, want, row)
			}
		}
	}
}

func TestRenderRowTruncatesLongIssue(t *testing.T) {
	renderer := NewListRenderer(DefaultTheme, 60)
	record := ticket.Ticket{
		ID:       7,
		Date:     "2026-08-30",
		FullName: "Борис Ким",
		Issue:    strings.Repeat("очень длинное описание проблемы ", 10),
		Status:   ticket.StatusOpen,
	}

	row := renderer.RenderRow(record, false)
	if !strings.Contains(row, "…") {
		t.Error("long issue should be truncated with an ellipsis")
	}
}

func TestRenderRowTruncatesLongName(t *testing.T) {
	renderer := NewListRenderer(DefaultTheme, 100)
	record := ticket.Ticket{
		ID:       7,
		Date:     "2026-08-30",
		FullName: "Константинопольская Александра Владимировна",
		Issue:    "ok",
		Status:   ticket.StatusOpen,
	}

	row := renderer.RenderRow(record, false)
	if strings.Contains(row, "Константинопольская Александра Владимировна") {
		t.Error("name should be truncated to the column width")
	}
	if !strings.Contains(row, "Константиноп") {
		t.Error("truncated name should keep its head")
	}
}

func TestTruncateStringMultibyte(t *testing.T) {
	if got := truncateString("тревога", 4); got != "трев" {
		t.Errorf("truncateString = %q, want трев", got)
	}
	if got := truncateString("short", 10); got != "short" {
		t.Errorf("truncateString of a fitting string = %q, want unchanged", got)
	}
}
