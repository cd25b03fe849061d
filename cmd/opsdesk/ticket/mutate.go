// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/opsdesk-project/opsdesk/cmd/opsdesk/cli"
	"github.com/opsdesk-project/opsdesk/lib/deskapi"
	schematicket "github.com/opsdesk-project/opsdesk/lib/schema/ticket"
)

// --- create ---

func createCommand() *cli.Command {
	var draft schematicket.Draft

	return &cli.Command{
		Name:    "create",
		Summary: "Create a ticket by hand",
		Description: `Register a ticket that arrived outside the mail pipeline (a phone
call, a walk-in). Customer name, object, emotion, and issue are
required; the date defaults to today.`,
		Usage: "opsdesk ticket create [flags]",
		Examples: []cli.Example{
			{
				Description: "Register a phone complaint",
				Command:     `opsdesk ticket create --customer "Анна Соколова" --object "Котёл Альфа-30" --emotion гнев --issue "Не греет воду"`,
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("create", pflag.ContinueOnError)
			flagSet.StringVar(&draft.Date, "date", "", "receipt date YYYY-MM-DD (default: today)")
			flagSet.StringVar(&draft.FullName, "customer", "", "customer full name (required)")
			flagSet.StringVar(&draft.Email, "email", "", "customer email")
			flagSet.StringVar(&draft.Object, "object", "", "product the ticket concerns (required)")
			flagSet.StringVar(&draft.SerialNumbers, "serials", "", "serial numbers")
			flagSet.StringVar(&draft.DeviceType, "device", "", "device type")
			flagSet.StringVar(&draft.Emotion, "emotion", "", "emotion label (required)")
			flagSet.StringVar(&draft.Issue, "issue", "", "issue summary (required)")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			if err := draft.Validate(time.Now()); err != nil {
				return cli.Validation("%v", err)
			}

			client, err := connect(logger)
			if err != nil {
				return err
			}
			ctx, cancel := callContext(ctx)
			defer cancel()

			record, err := client.CreateTicket(ctx, draft)
			if err != nil {
				return cli.Backend("creating ticket", err)
			}
			logger.Info("ticket created", "ticket", record.ID)
			fmt.Printf("#%d\n", record.ID)
			return nil
		},
	}
}

// --- reply ---

func replyCommand() *cli.Command {
	var (
		subject  string
		body     string
		bodyFile string
		keepOpen bool
	)

	return &cli.Command{
		Name:    "reply",
		Summary: "Send a reply email for a ticket",
		Description: `Send a reply to the ticket's customer and close the ticket. The
subject defaults to "Re: <object>" and the body defaults to the
machine-drafted reply stored on the ticket. The reply threads under
the customer's original email when the ticket carries a Message-ID.

Pass --keep-open to send without closing the ticket.`,
		Usage: "opsdesk ticket reply <id> [flags]",
		Examples: []cli.Example{
			{
				Description: "Send the drafted reply as-is",
				Command:     "opsdesk ticket reply 42",
			},
			{
				Description: "Send a hand-written reply from a file",
				Command:     "opsdesk ticket reply 42 --body-file reply.txt",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("reply", pflag.ContinueOnError)
			flagSet.StringVar(&subject, "subject", "", `subject line (default: "Re: <object>")`)
			flagSet.StringVar(&body, "body", "", "reply body (default: the ticket's drafted reply)")
			flagSet.StringVar(&bodyFile, "body-file", "", "read the reply body from a file")
			flagSet.BoolVar(&keepOpen, "keep-open", false, "do not close the ticket after sending")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("ticket ID is required\n\nUsage: opsdesk ticket reply <id> [flags]")
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return cli.Validation("invalid ticket ID %q", args[0])
			}
			if body != "" && bodyFile != "" {
				return cli.Validation("--body and --body-file are mutually exclusive")
			}
			if bodyFile != "" {
				data, err := readBodyFile(bodyFile)
				if err != nil {
					return cli.Internal("read body file: %v", err)
				}
				body = data
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
			if record.Status == schematicket.StatusClosed {
				return cli.Validation("ticket #%d is closed", id)
			}
			if strings.TrimSpace(record.Email) == "" {
				return cli.Validation("ticket #%d has no customer email", id)
			}
			if subject == "" {
				subject = "Re: " + record.Object
			}
			if body == "" {
				body = record.SuggestedReply
			}
			if strings.TrimSpace(body) == "" {
				return cli.Validation("ticket #%d has no drafted reply; pass --body or --body-file", id)
			}

			err = client.SendReply(ctx, deskapi.Reply{
				ToEmails:  []string{record.Email},
				Subject:   subject,
				Body:      body,
				MessageID: record.MessageID,
			})
			if err != nil {
				return cli.Backend("sending reply", err)
			}
			logger.Info("reply sent", "ticket", id, "to", record.Email)

			if !keepOpen {
				if err := client.UpdateStatus(ctx, id, schematicket.StatusClosed); err != nil {
					return cli.Backend("closing ticket", err)
				}
			}
			return nil
		},
	}
}

// --- status ---

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:    "status",
		Summary: "Change a ticket's lifecycle state",
		Usage:   "opsdesk ticket status <id> <open|in_progress|closed>",
		Examples: []cli.Example{
			{
				Description: "Take a ticket into work",
				Command:     "opsdesk ticket status 42 in_progress",
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 2 {
				return cli.Validation("ticket ID and status are required\n\nUsage: opsdesk ticket status <id> <open|in_progress|closed>")
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return cli.Validation("invalid ticket ID %q", args[0])
			}
			// ParseStatus folds unknown spellings to open; reject them
			// here instead so a typo does not silently reopen a ticket.
			if !isStatusAlias(args[1]) {
				return cli.Validation("unknown status %q (want open, in_progress, or closed)", args[1])
			}
			status := schematicket.ParseStatus(args[1])

			client, err := connect(logger)
			if err != nil {
				return err
			}
			ctx, cancel := callContext(ctx)
			defer cancel()

			if err := client.UpdateStatus(ctx, id, status); err != nil {
				return cli.Backend("updating status", err)
			}
			logger.Info("status updated", "ticket", id, "status", status)
			return nil
		},
	}
}

// isStatusAlias reports whether the input is one of the spellings
// ParseStatus folds deliberately, as opposed to arbitrary text that
// falls through to the open default.
func isStatusAlias(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "open", "new", "in_progress", "in progress", "inprogress", "closed", "close", "done":
		return true
	}
	return false
}

func readBodyFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\n"), nil
}
