// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete opsdesk CLI command tree.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/opsdesk-project/opsdesk/cmd/opsdesk/cli"
	ticketcmd "github.com/opsdesk-project/opsdesk/cmd/opsdesk/ticket"
	"github.com/opsdesk-project/opsdesk/lib/version"
)

// Root builds and returns the complete opsdesk CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "opsdesk",
		Description: `Opsdesk: support ticket console.

Browse, answer, and analyze customer support tickets from the
terminal. The interactive console is the main surface; the ticket
subcommands cover the same operations for scripting.`,
		Subcommands: []*cli.Command{
			cli.LoginCommand(),
			cli.LogoutCommand(),
			cli.WhoAmICommand(),
			ConsoleCommand(),
			ticketcmd.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					fmt.Printf("opsdesk %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Authenticate against the backend (saves session locally)",
				Command:     "opsdesk login maria",
			},
			{
				Description: "Open the interactive console",
				Command:     "opsdesk console",
			},
			{
				Description: "List tickets from anxious customers",
				Command:     "opsdesk ticket list --emotion тревога",
			},
			{
				Description: "Send the suggested reply for ticket 42 and close it",
				Command:     "opsdesk ticket reply 42",
			},
			{
				Description: "Export the current month to a spreadsheet",
				Command:     "opsdesk ticket export --from 2026-08-01 --format xlsx",
			},
		},
	}
}
