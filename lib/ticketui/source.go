// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import (
	"context"
	"io"

	"github.com/opsdesk-project/opsdesk/lib/deskapi"
	"github.com/opsdesk-project/opsdesk/lib/schema/ticket"
)

// Source abstracts backend access for the TUI. *deskapi.Client
// satisfies it in production; tests drive the model against a stub.
// Every method is a one-shot request run from a tea.Cmd, so
// implementations must be safe for concurrent calls.
type Source interface {
	// ListTickets fetches one page of tickets matching the query.
	ListTickets(ctx context.Context, query deskapi.Query) ([]ticket.Ticket, error)

	// Snapshot fetches up to limit tickets in one request, used for
	// filter option discovery and the analytics tab.
	Snapshot(ctx context.Context, limit int) ([]ticket.Ticket, error)

	// CreateTicket submits a validated draft and returns the
	// canonical record.
	CreateTicket(ctx context.Context, draft ticket.Draft) (ticket.Ticket, error)

	// UpdateStatus persists a ticket's lifecycle state.
	UpdateStatus(ctx context.Context, id int64, status ticket.Status) error

	// SendReply asks the backend to send a reply email.
	SendReply(ctx context.Context, reply deskapi.Reply) error
}

// Exporter is an optional interface a Source can provide to support
// spreadsheet exports. The model checks for it via type assertion;
// when absent, the export key bindings are inert. *deskapi.Client
// implements it.
type Exporter interface {
	Download(ctx context.Context, format deskapi.ExportFormat, query deskapi.Query, destination io.Writer) (int64, error)
}
