// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import "github.com/opsdesk-project/opsdesk/cmd/opsdesk/cli"

// Command returns the "ticket" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "ticket",
		Summary: "Ticket management commands",
		Description: `View and manage support tickets without opening the console.

These commands talk to the same backend as "opsdesk console" and use
the saved login session. List output is a table; add filters to narrow
the result the same way the console's filter bar does.`,
		Subcommands: []*cli.Command{
			listCommand(),
			showCommand(),
			createCommand(),
			replyCommand(),
			statusCommand(),
			exportCommand(),
			statsCommand(),
		},
	}
}
