// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want Status
	}{
		{"open", StatusOpen},
		{"OPEN", StatusOpen},
		{"new", StatusOpen},
		{"", StatusOpen},
		{"in_progress", StatusInProgress},
		{"In Progress", StatusInProgress},
		{"closed", StatusClosed},
		{"CLOSED", StatusClosed},
		{"done", StatusClosed},
		{"weird-legacy-value", StatusOpen},
	}
	for _, c := range cases {
		if got := ParseStatus(c.raw); got != c.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestUnmarshalModernFields(t *testing.T) {
	payload := `{
		"id": 42,
		"req_date": "2026-08-30",
		"full_name": "Anna Petrova",
		"email": "anna@example.com",
		"object_name": "Boiler room 3",
		"factory_number": "FN-2231",
		"device_type": "pump",
		"emotion": "тревога",
		"question_summary": "Pump pressure drops overnight",
		"llm_answer": "Check the intake valve seals.",
		"message_id": "<abc@mail.example.com>",
		"task_status": "IN_PROGRESS"
	}`
	var got Ticket
	if err := json.Unmarshal([]byte(payload), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != 42 {
		t.Errorf("ID = %d, want 42", got.ID)
	}
	if got.Date != "2026-08-30" {
		t.Errorf("Date = %q", got.Date)
	}
	if got.FullName != "Anna Petrova" {
		t.Errorf("FullName = %q", got.FullName)
	}
	if got.Object != "Boiler room 3" {
		t.Errorf("Object = %q", got.Object)
	}
	if got.SerialNumbers != "FN-2231" {
		t.Errorf("SerialNumbers = %q", got.SerialNumbers)
	}
	if got.DeviceType != "pump" {
		t.Errorf("DeviceType = %q", got.DeviceType)
	}
	if got.Issue != "Pump pressure drops overnight" {
		t.Errorf("Issue = %q", got.Issue)
	}
	if got.Status != StatusInProgress {
		t.Errorf("Status = %q, want in_progress", got.Status)
	}
}

func TestUnmarshalLegacyFields(t *testing.T) {
	payload := `{
		"id": 7,
		"date": "2026-01-15",
		"fullName": "Boris Ivanov",
		"object": "Office north wing",
		"serialNumbers": "SN-100, SN-101",
		"deviceType": "thermostat",
		"emotion": "гнев",
		"issue": "Thermostat stuck at 30C",
		"status": "new"
	}`
	var got Ticket
	if err := json.Unmarshal([]byte(payload), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Date != "2026-01-15" {
		t.Errorf("Date = %q", got.Date)
	}
	if got.FullName != "Boris Ivanov" {
		t.Errorf("FullName = %q", got.FullName)
	}
	if got.Object != "Office north wing" {
		t.Errorf("Object = %q", got.Object)
	}
	if got.SerialNumbers != "SN-100, SN-101" {
		t.Errorf("SerialNumbers = %q", got.SerialNumbers)
	}
	if got.DeviceType != "thermostat" {
		t.Errorf("DeviceType = %q", got.DeviceType)
	}
	if got.Issue != "Thermostat stuck at 30C" {
		t.Errorf("Issue = %q", got.Issue)
	}
	if got.Status != StatusOpen {
		t.Errorf("Status = %q, want open", got.Status)
	}
}

func TestUnmarshalSnakeWinsOverCamel(t *testing.T) {
	payload := `{"full_name": "Snake", "fullName": "Camel"}`
	var got Ticket
	if err := json.Unmarshal([]byte(payload), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.FullName != "Snake" {
		t.Errorf("FullName = %q, want snake_case value", got.FullName)
	}
}

func TestDayParsing(t *testing.T) {
	tk := Ticket{Date: "2026-08-30"}
	day := tk.Day()
	if day.Year() != 2026 || day.Month() != time.August || day.Day() != 30 {
		t.Errorf("Day() = %v", day)
	}
	if !(Ticket{Date: "not-a-date"}).Day().IsZero() {
		t.Error("malformed date should parse as zero time")
	}
	if !(Ticket{}).Day().IsZero() {
		t.Error("empty date should parse as zero time")
	}
}

func TestDraftValidate(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	valid := Draft{
		FullName: "Anna Petrova",
		Object:   "Boiler room 3",
		Emotion:  "тревога",
		Issue:    "Pump pressure drops overnight",
	}

	draft := valid
	if err := draft.Validate(now); err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}
	if draft.Date != "2026-08-31" {
		t.Errorf("blank date not defaulted: %q", draft.Date)
	}

	cases := []struct {
		name   string
		mutate func(*Draft)
		want   error
	}{
		{"missing name", func(d *Draft) { d.FullName = "  " }, ErrMissingFullName},
		{"missing object", func(d *Draft) { d.Object = "" }, ErrMissingObject},
		{"missing emotion", func(d *Draft) { d.Emotion = "" }, ErrMissingEmotion},
		{"missing issue", func(d *Draft) { d.Issue = "" }, ErrMissingIssue},
		{"bad date", func(d *Draft) { d.Date = "31.08.2026" }, ErrBadDate},
	}
	for _, c := range cases {
		draft := valid
		c.mutate(&draft)
		if err := draft.Validate(now); !errors.Is(err, c.want) {
			t.Errorf("%s: got %v, want %v", c.name, err, c.want)
		}
	}
}

func TestDraftMaterialize(t *testing.T) {
	draft := Draft{
		Date:     "2026-08-31",
		FullName: "Anna Petrova",
		Object:   "Boiler room 3",
		Emotion:  "спокойствие",
		Issue:    "Replacement filter request",
	}
	got := draft.Materialize(99)
	if got.ID != 99 {
		t.Errorf("ID = %d", got.ID)
	}
	if got.Status != StatusOpen {
		t.Errorf("Status = %q, want open", got.Status)
	}
	if got.FullName != draft.FullName || got.Object != draft.Object {
		t.Error("draft fields not carried over")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	original := Ticket{
		ID:       5,
		Date:     "2026-02-02",
		FullName: "Olga",
		Object:   "Site A",
		Emotion:  "раздражение",
		Issue:    "Noise complaint",
		Status:   StatusClosed,
	}
	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded Ticket
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded != original {
		t.Errorf("round trip changed record:\n got %+v\nwant %+v", decoded, original)
	}
}
