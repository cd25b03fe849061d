// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Status is the lifecycle state of a ticket. The backend has gone
// through several encodings for the same three states; ParseStatus
// folds them all into these canonical values.
type Status string

const (
	// StatusOpen is a ticket nobody has picked up yet.
	StatusOpen Status = "open"

	// StatusInProgress is a ticket an operator is actively handling.
	StatusInProgress Status = "in_progress"

	// StatusClosed is a ticket whose reply has been sent.
	StatusClosed Status = "closed"
)

// ParseStatus maps any of the encodings the backend has used for a
// status onto the canonical value. Unknown or empty strings parse as
// StatusOpen: a record whose state we cannot read is work that still
// needs an operator, so the safe reading is "not yet handled".
func ParseStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "open", "new", "":
		return StatusOpen
	case "in_progress", "in progress", "inprogress":
		return StatusInProgress
	case "closed", "close", "done":
		return StatusClosed
	default:
		return StatusOpen
	}
}

// Label returns the operator-facing English label for a status.
func (status Status) Label() string {
	switch status {
	case StatusInProgress:
		return "In progress"
	case StatusClosed:
		return "Closed"
	default:
		return "Open"
	}
}

// Ticket is the canonical support request record. The backend returns
// these from GET /api/requests with field names that vary by backend
// revision; UnmarshalJSON accepts every known alias.
type Ticket struct {
	// ID is the backend's numeric row ID.
	ID int64

	// Date is the submission date in ISO form ("2026-08-31"). Kept
	// as a string because the backend stores and filters it as one;
	// Day() parses it when calendar arithmetic is needed.
	Date string

	// FullName is the customer's name as submitted.
	FullName string

	// Email is the customer's reply-to address. May be empty for
	// tickets submitted through channels without one.
	Email string

	// Object is the product or site the request concerns.
	Object string

	// SerialNumbers is the free-form equipment identifier field.
	SerialNumbers string

	// DeviceType is the equipment category.
	DeviceType string

	// Emotion is the classifier's sentiment label. This is an open
	// vocabulary: the backend passes through whatever the classifier
	// produced, so code must not assume a fixed set of values.
	Emotion string

	// Issue is the summarized problem statement.
	Issue string

	// SuggestedReply is the machine-drafted answer, used to prefill
	// the operator's reply editor.
	SuggestedReply string

	// MessageID is the RFC 5322 Message-ID of the originating email,
	// used to thread the operator's reply. Empty for non-email
	// tickets.
	MessageID string

	// Status is the canonical lifecycle state.
	Status Status
}

// wireTicket lists every field name any backend revision has emitted.
// Pairs of aliases never appear together in one payload, so "last
// non-empty wins" is an unambiguous merge.
type wireTicket struct {
	ID             int64  `json:"id"`
	Date           string `json:"date"`
	ReqDate        string `json:"req_date"`
	FullNameCamel  string `json:"fullName"`
	FullNameSnake  string `json:"full_name"`
	Email          string `json:"email"`
	Object         string `json:"object"`
	ObjectName     string `json:"object_name"`
	SerialsCamel   string `json:"serialNumbers"`
	FactoryCamel   string `json:"factoryNumber"`
	FactorySnake   string `json:"factory_number"`
	DeviceCamel    string `json:"deviceType"`
	DeviceSnake    string `json:"device_type"`
	Emotion        string `json:"emotion"`
	Issue          string `json:"issue"`
	QuestionSum    string `json:"question_summary"`
	SuggestedReply string `json:"llm_answer"`
	MessageID      string `json:"message_id"`
	Status         string `json:"status"`
	TaskStatus     string `json:"task_status"`
}

// firstNonEmpty returns the first of its arguments that is not the
// empty string.
func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

// UnmarshalJSON decodes a ticket from any backend revision's field
// naming. Canonical snake_case names win over legacy camelCase when a
// payload somehow carries both.
func (ticket *Ticket) UnmarshalJSON(data []byte) error {
	var wire wireTicket
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	ticket.ID = wire.ID
	ticket.Date = firstNonEmpty(wire.ReqDate, wire.Date)
	ticket.FullName = firstNonEmpty(wire.FullNameSnake, wire.FullNameCamel)
	ticket.Email = wire.Email
	ticket.Object = firstNonEmpty(wire.ObjectName, wire.Object)
	ticket.SerialNumbers = firstNonEmpty(wire.FactorySnake, wire.FactoryCamel, wire.SerialsCamel)
	ticket.DeviceType = firstNonEmpty(wire.DeviceSnake, wire.DeviceCamel)
	ticket.Emotion = wire.Emotion
	ticket.Issue = firstNonEmpty(wire.QuestionSum, wire.Issue)
	ticket.SuggestedReply = wire.SuggestedReply
	ticket.MessageID = wire.MessageID
	ticket.Status = ParseStatus(firstNonEmpty(wire.TaskStatus, wire.Status))
	return nil
}

// MarshalJSON encodes a ticket with the canonical snake_case field
// names the current backend accepts.
func (ticket Ticket) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"id":               ticket.ID,
		"req_date":         ticket.Date,
		"full_name":        ticket.FullName,
		"email":            ticket.Email,
		"object_name":      ticket.Object,
		"factory_number":   ticket.SerialNumbers,
		"device_type":      ticket.DeviceType,
		"emotion":          ticket.Emotion,
		"question_summary": ticket.Issue,
		"llm_answer":       ticket.SuggestedReply,
		"message_id":       ticket.MessageID,
		"task_status":      string(ticket.Status),
	})
}

// Day parses the ticket's date. Returns the zero time if the field is
// empty or not ISO-formatted.
func (ticket Ticket) Day() time.Time {
	parsed, err := time.Parse("2006-01-02", ticket.Date)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// Validation errors for Draft.Validate.
var (
	ErrMissingFullName = errors.New("ticket: full name is required")
	ErrMissingObject   = errors.New("ticket: object is required")
	ErrMissingEmotion  = errors.New("ticket: emotion is required")
	ErrMissingIssue    = errors.New("ticket: issue summary is required")
	ErrBadDate         = errors.New("ticket: date must be YYYY-MM-DD")
)

// Draft is an operator-entered ticket waiting to be submitted. Only
// the fields the backend's creation endpoint accepts; the backend
// assigns the ID and initial status.
type Draft struct {
	Date           string
	FullName       string
	Email          string
	Object         string
	SerialNumbers  string
	DeviceType     string
	Emotion        string
	Issue          string
	SuggestedReply string
}

// Validate checks the draft for submission, filling Date with today
// (in the given location) when the operator left it blank. now comes
// from the caller's clock so tests stay deterministic.
func (draft *Draft) Validate(now time.Time) error {
	if strings.TrimSpace(draft.FullName) == "" {
		return ErrMissingFullName
	}
	if strings.TrimSpace(draft.Object) == "" {
		return ErrMissingObject
	}
	if strings.TrimSpace(draft.Emotion) == "" {
		return ErrMissingEmotion
	}
	if strings.TrimSpace(draft.Issue) == "" {
		return ErrMissingIssue
	}
	if draft.Date == "" {
		draft.Date = now.Format("2006-01-02")
		return nil
	}
	if _, err := time.Parse("2006-01-02", draft.Date); err != nil {
		return ErrBadDate
	}
	return nil
}

// MarshalJSON encodes the draft for POST /api/requests.
func (draft Draft) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"req_date":         draft.Date,
		"full_name":        draft.FullName,
		"email":            draft.Email,
		"object_name":      draft.Object,
		"factory_number":   draft.SerialNumbers,
		"device_type":      draft.DeviceType,
		"emotion":          draft.Emotion,
		"question_summary": draft.Issue,
		"llm_answer":       draft.SuggestedReply,
	})
}

// Materialize builds the canonical record for a draft the backend
// accepted, using the ID the creation endpoint returned. New tickets
// start open.
func (draft Draft) Materialize(id int64) Ticket {
	return Ticket{
		ID:             id,
		Date:           draft.Date,
		FullName:       draft.FullName,
		Email:          draft.Email,
		Object:         draft.Object,
		SerialNumbers:  draft.SerialNumbers,
		DeviceType:     draft.DeviceType,
		Emotion:        draft.Emotion,
		Issue:          draft.Issue,
		SuggestedReply: draft.SuggestedReply,
		Status:         StatusOpen,
	}
}
