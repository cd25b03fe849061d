// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/opsdesk-project/opsdesk/cmd/opsdesk/cli"
	"github.com/opsdesk-project/opsdesk/lib/config"
	"github.com/opsdesk-project/opsdesk/lib/ticketui"
	tea "github.com/charmbracelet/bubbletea"
)

// ConsoleCommand returns the "console" subcommand that launches the
// interactive support console TUI.
func ConsoleCommand() *cli.Command {
	var pageLimit int
	var exportDirectory string
	var logOutput string

	return &cli.Command{
		Name:    "console",
		Summary: "Interactive support console",
		Description: `Launch the interactive terminal UI for working tickets.

The console shows the ticket list with server-side filters and
pagination on the left and a reply panel for the selected ticket on
the right. Tab 2 shows live aggregate analytics. The console connects
to the backend with the operator session saved by "opsdesk login".

Page size and export directory come from the config file and can be
overridden with flags.`,
		Usage: "opsdesk console [flags]",
		Examples: []cli.Example{
			{
				Description: "Open the console",
				Command:     "opsdesk console",
			},
			{
				Description: "Open with a larger page size",
				Command:     "opsdesk console --limit 50",
			},
			{
				Description: "Write exports to a specific directory",
				Command:     "opsdesk console --export-dir ~/reports",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("console", pflag.ContinueOnError)
			flagSet.IntVar(&pageLimit, "limit", 0, "ticket list page size (default: from config)")
			flagSet.StringVar(&exportDirectory, "export-dir", "", "directory for spreadsheet exports (default: from config)")
			flagSet.StringVar(&logOutput, "log-output", "", "also write all log records to this JSONL file")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			return runConsole(pageLimit, exportDirectory, logOutput)
		},
	}
}

// runConsole loads config and session, builds the TUI-routed logger,
// and runs the bubbletea program until the operator quits.
func runConsole(pageLimit int, exportDirectory string, logOutput string) error {
	cfg, err := config.Load()
	if err != nil {
		return cli.Validation("load config: %w", err)
	}
	if pageLimit <= 0 {
		pageLimit = cfg.Console.PageLimit
	}
	if exportDirectory == "" {
		exportDirectory = cfg.Console.ExportDirectory
	}

	operatorSession, err := cli.LoadSession()
	if err != nil {
		return err
	}

	// Background fetches log through the TUI handler so records show
	// up in the status bar instead of corrupting the alternate screen.
	// WARN and above only; routine request logging would clutter the
	// display.
	tuiHandler := ticketui.NewTUILogHandler(slog.LevelWarn)

	var backgroundLogger *slog.Logger
	if logOutput != "" {
		// Also write all records to the file at DEBUG level.
		fileHandler, fileCloser, fileErr := openFileLogHandler(logOutput)
		if fileErr != nil {
			return cli.Validation("cannot open log file %s: %w", logOutput, fileErr)
		}
		defer fileCloser()
		backgroundLogger = slog.New(fanoutHandler{tuiHandler, fileHandler})
	} else {
		backgroundLogger = slog.New(tuiHandler)
	}

	client, err := operatorSession.NewClient(backgroundLogger)
	if err != nil {
		return err
	}

	model := ticketui.NewModel(client, pageLimit, exportDirectory, backgroundLogger)
	program := tea.NewProgram(model, tea.WithAltScreen())

	// Wire the handler to the program so log records flow into
	// bubbletea's message loop. Records arriving before this call are
	// dropped, which is fine: nothing is rendering yet.
	tuiHandler.SetProgram(program)

	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if final, ok := finalModel.(ticketui.Model); ok && final.AuthFailed() {
		fmt.Fprintln(os.Stderr, `backend rejected the saved credentials — run "opsdesk login" and try again`)
		return &cli.ExitError{Code: 1}
	}
	return nil
}

// openFileLogHandler opens path for writing and returns a JSON handler
// at DEBUG level plus a closer for the underlying file.
func openFileLogHandler(path string) (slog.Handler, func(), error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	return handler, func() { file.Close() }, nil
}

// fanoutHandler is a slog.Handler that sends each record to multiple
// underlying handlers. A record is enabled if any sub-handler is
// enabled for that level.
type fanoutHandler []slog.Handler

func (handlers fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

func (handlers fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return derived
}

func (handlers fanoutHandler) WithGroup(name string) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithGroup(name)
	}
	return derived
}
