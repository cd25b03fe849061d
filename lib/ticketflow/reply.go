// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticketflow

import (
	"errors"
	"strings"

	"github.com/opsdesk-project/opsdesk/lib/deskapi"
	"github.com/opsdesk-project/opsdesk/lib/schema/ticket"
)

// Reply session errors. PrepareSend returns the validation errors
// without touching the network; SetSubject and SetBody return
// ErrTicketClosed once the ticket can no longer be edited.
var (
	ErrTicketClosed     = errors.New("ticketflow: ticket is closed")
	ErrMissingRecipient = errors.New("ticketflow: ticket has no customer email")
	ErrEmptySubject     = errors.New("ticketflow: subject is empty")
	ErrEmptyBody        = errors.New("ticketflow: body is empty")
	ErrAlreadySent      = errors.New("ticketflow: reply already sent")
)

// ReplySession walks one ticket through the operator's reply flow.
// Opening an open ticket advances it to in-progress; sending the reply
// closes it; abandoning the session without sending reverts the
// auto-advance so the ticket goes back into the open queue.
//
// The session performs no I/O. Status transitions are recorded locally
// and the caller persists them (StatusChange reports what to persist).
type ReplySession struct {
	record ticket.Ticket

	// originalStatus is the status the ticket arrived with, for the
	// revert on abandon.
	originalStatus ticket.Status

	// autoAdvanced is set when opening the session moved the ticket
	// from open to in-progress.
	autoAdvanced bool

	// reverted is set when Close undid the auto-advance, so a caller
	// that already persisted the advance knows to persist the revert.
	reverted bool

	subject string
	body    string
	sent    bool
}

// NewReplySession opens a reply session for the ticket. The subject
// defaults to "Re: <object>" and the body is prefilled with the
// machine-drafted answer. An open ticket is advanced to in-progress;
// a closed ticket stays closed and the session is read-only.
func NewReplySession(record ticket.Ticket) *ReplySession {
	session := &ReplySession{
		record:         record,
		originalStatus: record.Status,
		subject:        "Re: " + record.Object,
		body:           record.SuggestedReply,
	}
	if record.Status == ticket.StatusOpen {
		session.record.Status = ticket.StatusInProgress
		session.autoAdvanced = true
	}
	return session
}

// Ticket returns the record with the session's status applied.
func (session *ReplySession) Ticket() ticket.Ticket {
	return session.record
}

// Subject returns the current subject line.
func (session *ReplySession) Subject() string {
	return session.subject
}

// Body returns the current reply body.
func (session *ReplySession) Body() string {
	return session.body
}

// Sent reports whether the reply has been sent.
func (session *ReplySession) Sent() bool {
	return session.sent
}

// ReadOnly reports whether edits are refused: the ticket is closed, or
// the reply already went out.
func (session *ReplySession) ReadOnly() bool {
	return session.sent || session.record.Status == ticket.StatusClosed
}

// editable returns the error that blocks edits, or nil.
func (session *ReplySession) editable() error {
	if session.sent {
		return ErrAlreadySent
	}
	if session.record.Status == ticket.StatusClosed {
		return ErrTicketClosed
	}
	return nil
}

// SetSubject updates the subject line. Refused once the session is
// read-only.
func (session *ReplySession) SetSubject(subject string) error {
	if err := session.editable(); err != nil {
		return err
	}
	session.subject = subject
	return nil
}

// SetBody updates the reply body. Refused once the session is
// read-only.
func (session *ReplySession) SetBody(body string) error {
	if err := session.editable(); err != nil {
		return err
	}
	session.body = body
	return nil
}

// PrepareSend validates the reply and builds the outgoing payload.
// Performs no I/O: every validation failure is reported before any
// request is made. The reply threads under the customer's original
// message when the ticket carries a Message-ID.
func (session *ReplySession) PrepareSend() (deskapi.Reply, error) {
	if err := session.editable(); err != nil {
		return deskapi.Reply{}, err
	}
	if strings.TrimSpace(session.record.Email) == "" {
		return deskapi.Reply{}, ErrMissingRecipient
	}
	if strings.TrimSpace(session.subject) == "" {
		return deskapi.Reply{}, ErrEmptySubject
	}
	if strings.TrimSpace(session.body) == "" {
		return deskapi.Reply{}, ErrEmptyBody
	}
	return deskapi.Reply{
		ToEmails:  []string{session.record.Email},
		Subject:   session.subject,
		Body:      session.body,
		MessageID: session.record.MessageID,
	}, nil
}

// MarkSent records that the backend accepted the reply and closes the
// ticket.
func (session *ReplySession) MarkSent() {
	session.sent = true
	session.record.Status = ticket.StatusClosed
}

// Close ends the session. If opening the session auto-advanced the
// ticket and nothing was sent, the status reverts so the ticket
// returns to the open queue.
func (session *ReplySession) Close() {
	if session.autoAdvanced && !session.sent {
		session.record.Status = session.originalStatus
		session.reverted = true
	}
}

// Reverted reports whether Close undid the auto-advance.
func (session *ReplySession) Reverted() bool {
	return session.reverted
}

// SetStatus applies an explicit operator status change, overriding the
// auto-advance bookkeeping: a status the operator picked by hand is
// never reverted on close.
func (session *ReplySession) SetStatus(status ticket.Status) {
	session.record.Status = status
	session.autoAdvanced = false
}

// StatusChange reports the status to persist and whether it differs
// from the status the ticket arrived with. Callers persist only on
// actual change.
func (session *ReplySession) StatusChange() (ticket.Status, bool) {
	return session.record.Status, session.record.Status != session.originalStatus
}
