// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package deskapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/opsdesk-project/opsdesk/lib/schema/ticket"
)

// snapshotLimit is the page size used for one-shot full dumps: filter
// option discovery and the analytics tab both read the first
// snapshotLimit records as a working set.
const snapshotLimit = 1000

// ListTickets fetches one page of tickets matching the query.
func (client *Client) ListTickets(ctx context.Context, query Query) ([]ticket.Ticket, error) {
	var tickets []ticket.Ticket
	if err := client.get(ctx, buildPath("/api/requests", query), &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// Snapshot fetches up to limit tickets in one request, ignoring
// pagination. Used for filter option discovery and analytics, which
// need the whole working set rather than a page. A non-positive limit
// uses the standard snapshot size.
func (client *Client) Snapshot(ctx context.Context, limit int) ([]ticket.Ticket, error) {
	if limit <= 0 {
		limit = snapshotLimit
	}
	return client.ListTickets(ctx, Query{Page: 1, Limit: limit})
}

// CreateTicket submits a draft. The backend's creation endpoint
// returns only the assigned row ID, so the canonical record is
// materialized from the draft. The caller must have validated the
// draft first.
func (client *Client) CreateTicket(ctx context.Context, draft ticket.Draft) (ticket.Ticket, error) {
	var created struct {
		ID int64 `json:"id"`
	}
	if err := client.post(ctx, "/api/requests", draft, &created); err != nil {
		return ticket.Ticket{}, err
	}
	return draft.Materialize(created.ID), nil
}

// UpdateStatus persists a ticket's lifecycle state. Older backend
// revisions lack the status endpoint and return 404; callers should
// treat that as a soft failure and keep their local state.
func (client *Client) UpdateStatus(ctx context.Context, id int64, status ticket.Status) error {
	body := map[string]string{"task_status": string(status)}
	return client.patch(ctx, fmt.Sprintf("/api/requests/%d/status", id), body, nil)
}

// Reply is an outgoing operator email. MessageID, when set, threads
// the reply under the customer's original message.
type Reply struct {
	ToEmails  []string `json:"to_emails"`
	Subject   string   `json:"subject"`
	Body      string   `json:"body"`
	MessageID string   `json:"message_id,omitempty"`
}

// SendReply asks the backend to send the reply email.
func (client *Client) SendReply(ctx context.Context, reply Reply) error {
	return client.post(ctx, "/api/sendMail", reply, nil)
}

// Operator identifies the authenticated backend account.
type Operator struct {
	Username string `json:"username"`
}

// WhoAmI verifies the client's credentials against the backend and
// returns the account they belong to.
func (client *Client) WhoAmI(ctx context.Context) (Operator, error) {
	var operator Operator
	if err := client.get(ctx, "/users/me", &operator); err != nil {
		return Operator{}, err
	}
	return operator, nil
}

// ExportFormat selects a spreadsheet export encoding.
type ExportFormat string

const (
	// ExportCSV is a UTF-8 CSV export.
	ExportCSV ExportFormat = "csv"

	// ExportExcel is an .xlsx workbook export.
	ExportExcel ExportFormat = "xlsx"
)

// Extension returns the conventional file extension for the format.
func (format ExportFormat) Extension() string {
	return string(format)
}

// exportPath maps a format to its backend endpoint.
func exportPath(format ExportFormat) (string, error) {
	switch format {
	case ExportCSV:
		return "/api/getCsv", nil
	case ExportExcel:
		return "/api/getExcel", nil
	default:
		return "", fmt.Errorf("deskapi: unknown export format %q", format)
	}
}

// ExportURL returns the full backend URL that exports tickets matching
// the query in the given format.
func (client *Client) ExportURL(format ExportFormat, query Query) (string, error) {
	path, err := exportPath(format)
	if err != nil {
		return "", err
	}
	return client.baseURL + buildPath(path, query), nil
}

// Download streams an export of tickets matching the query into
// destination. Returns the number of bytes written.
func (client *Client) Download(ctx context.Context, format ExportFormat, query Query, destination io.Writer) (int64, error) {
	path, err := exportPath(format)
	if err != nil {
		return 0, err
	}
	response, err := client.doRaw(ctx, http.MethodGet, buildPath(path, query), nil)
	if err != nil {
		return 0, err
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
		return 0, parseAPIErrorFromBody(response.StatusCode, body)
	}

	written, err := io.Copy(destination, response.Body)
	if err != nil {
		return written, fmt.Errorf("deskapi: streaming export: %w", err)
	}
	return written, nil
}
