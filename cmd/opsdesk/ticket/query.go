// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/opsdesk-project/opsdesk/cmd/opsdesk/cli"
	"github.com/opsdesk-project/opsdesk/lib/config"
	"github.com/opsdesk-project/opsdesk/lib/deskapi"
	schematicket "github.com/opsdesk-project/opsdesk/lib/schema/ticket"
)

// --- list ---

func listCommand() *cli.Command {
	var (
		page    int
		limit   int
		name    string
		emotion string
		device  string
		from    string
		to      string
	)

	return &cli.Command{
		Name:    "list",
		Summary: "List tickets with optional filters",
		Description: `Query one page of tickets with optional filters. All filter flags use
AND semantics: only tickets matching every specified filter are
returned. Filters mirror the console's filter bar.`,
		Usage: "opsdesk ticket list [flags]",
		Examples: []cli.Example{
			{
				Description: "List the first page",
				Command:     "opsdesk ticket list",
			},
			{
				Description: "Tickets from an angry customer segment, second page",
				Command:     "opsdesk ticket list --emotion гнев --page 2",
			},
			{
				Description: "One customer's tickets in a date range",
				Command:     "opsdesk ticket list --name Соколова --from 2026-03-01 --to 2026-03-31",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flagSet.IntVar(&page, "page", 1, "page number (1-based)")
			flagSet.IntVar(&limit, "limit", 0, "page size (default: from config)")
			flagSet.StringVar(&name, "name", "", "filter by customer name substring")
			flagSet.StringVar(&emotion, "emotion", "", "filter by classifier emotion label")
			flagSet.StringVar(&device, "device", "", "filter by device type")
			flagSet.StringVar(&from, "from", "", "filter by date lower bound (YYYY-MM-DD)")
			flagSet.StringVar(&to, "to", "", "filter by date upper bound (YYYY-MM-DD)")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			if limit == 0 {
				configuration, err := config.Load()
				if err != nil {
					return cli.Internal("load config: %v", err)
				}
				limit = configuration.Console.PageLimit
			}

			client, err := connect(logger)
			if err != nil {
				return err
			}
			ctx, cancel := callContext(ctx)
			defer cancel()

			records, err := client.ListTickets(ctx, deskapi.Query{
				Page:       page,
				Limit:      limit,
				FullName:   name,
				Emotion:    emotion,
				DeviceType: device,
				DateFrom:   from,
				DateTo:     to,
			})
			if err != nil {
				return cli.Backend("listing tickets", err)
			}
			if len(records) == 0 {
				logger.Info("no tickets found")
				return nil
			}
			return writeTicketTable(records)
		},
	}
}

// --- show ---

func showCommand() *cli.Command {
	return &cli.Command{
		Name:    "show",
		Summary: "Show one ticket in full",
		Description: `Display the complete record for a single ticket, including the
customer's message and the machine-drafted reply.`,
		Usage: "opsdesk ticket show <id>",
		Examples: []cli.Example{
			{
				Description: "Show ticket 42",
				Command:     "opsdesk ticket show 42",
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("ticket ID is required\n\nUsage: opsdesk ticket show <id>")
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return cli.Validation("invalid ticket ID %q", args[0])
			}

			client, err := connect(logger)
			if err != nil {
				return err
			}
			ctx, cancel := callContext(ctx)
			defer cancel()

			record, err := findTicket(ctx, client, id)
			if err != nil {
				return err
			}
			printTicket(record)
			return nil
		},
	}
}

func printTicket(record schematicket.Ticket) {
	fmt.Printf("Ticket #%d  %s\n", record.ID, record.Status.Label())
	fmt.Printf("Date:     %s\n", record.Date)
	fmt.Printf("Customer: %s <%s>\n", record.FullName, record.Email)
	fmt.Printf("Object:   %s\n", record.Object)
	if record.SerialNumbers != "" {
		fmt.Printf("Serials:  %s\n", record.SerialNumbers)
	}
	fmt.Printf("Device:   %s\n", record.DeviceType)
	fmt.Printf("Emotion:  %s\n", record.Emotion)
	fmt.Printf("\nIssue:\n%s\n", record.Issue)
	if record.SuggestedReply != "" {
		fmt.Printf("\nDrafted reply:\n%s\n", record.SuggestedReply)
	}
}
