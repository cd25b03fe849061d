// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/opsdesk-project/opsdesk/cmd/opsdesk/cli"
	"github.com/opsdesk-project/opsdesk/lib/deskapi"
	"github.com/opsdesk-project/opsdesk/lib/schema/ticket"
)

// callTimeout bounds every one-shot backend request made by the ticket
// commands. Generous because a cold backend retries once after its
// database warm-up delay.
const callTimeout = 30 * time.Second

// connect loads the operator session and builds an authenticated
// backend client.
func connect(logger *slog.Logger) (*deskapi.Client, error) {
	session, err := cli.LoadSession()
	if err != nil {
		return nil, cli.NotFound("%v", err)
	}
	client, err := session.NewClient(logger)
	if err != nil {
		return nil, cli.Internal("%v", err)
	}
	return client, nil
}

// callContext bounds a single backend request.
func callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, callTimeout)
}

// findTicket resolves a ticket by ID from the backend's working set.
// The backend has no per-ticket endpoint, so this scans the snapshot.
func findTicket(ctx context.Context, client *deskapi.Client, id int64) (ticket.Ticket, error) {
	records, err := client.Snapshot(ctx, 0)
	if err != nil {
		return ticket.Ticket{}, cli.Backend("loading tickets", err)
	}
	for _, record := range records {
		if record.ID == id {
			return record, nil
		}
	}
	return ticket.Ticket{}, cli.NotFound("ticket #%d not found", id)
}

// writeTicketTable prints tickets as an aligned table on stdout.
func writeTicketTable(records []ticket.Ticket) error {
	writer := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tDATE\tSTATUS\tEMOTION\tCUSTOMER\tDEVICE\tISSUE")
	for _, record := range records {
		fmt.Fprintf(writer, "#%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			record.ID, record.Date, record.Status, record.Emotion,
			record.FullName, record.DeviceType, record.Issue)
	}
	return writer.Flush()
}
