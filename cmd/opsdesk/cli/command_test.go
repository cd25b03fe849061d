// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestExecuteDispatchesSubcommand(t *testing.T) {
	ran := false
	root := &Command{
		Name: "opsdesk",
		Subcommands: []*Command{
			{
				Name: "ticket",
				Subcommands: []*Command{
					{
						Name: "list",
						Run: func(_ context.Context, args []string, _ *slog.Logger) error {
							ran = true
							if len(args) != 0 {
								t.Errorf("leftover args: %v", args)
							}
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"ticket", "list"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !ran {
		t.Error("nested subcommand did not run")
	}
}

func TestExecuteSuggestsCommand(t *testing.T) {
	root := &Command{
		Name: "opsdesk",
		Subcommands: []*Command{
			{Name: "login"},
			{Name: "console"},
		},
	}

	err := root.Execute(context.Background(), []string{"consoel"})
	if err == nil {
		t.Fatal("unknown command should error")
	}
	if !strings.Contains(err.Error(), `did you mean "console"`) {
		t.Errorf("error %q should suggest console", err)
	}
}

func TestExecuteSuggestsFlag(t *testing.T) {
	command := &Command{
		Name: "list",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flagSet.String("emotion", "", "")
			return flagSet
		},
		Run: func(_ context.Context, _ []string, _ *slog.Logger) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--emotoin", "гнев"})
	if err == nil {
		t.Fatal("unknown flag should error")
	}
	if !strings.Contains(err.Error(), "--emotion") {
		t.Errorf("error %q should suggest --emotion", err)
	}
}

func TestExecuteParsesFlagsBeforeRun(t *testing.T) {
	var got string
	command := &Command{
		Name: "list",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flagSet.StringVar(&got, "device", "", "")
			return flagSet
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) != 1 || args[0] != "extra" {
				t.Errorf("positional args = %v, want [extra]", args)
			}
			return nil
		},
	}

	if err := command.Execute(context.Background(), []string{"--device", "котёл", "extra"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got != "котёл" {
		t.Errorf("--device = %q", got)
	}
}

func TestExecuteRequiresSubcommand(t *testing.T) {
	root := &Command{
		Name:        "opsdesk",
		Subcommands: []*Command{{Name: "login"}},
	}
	if err := root.Execute(context.Background(), nil); err == nil {
		t.Error("group command with no args should error")
	}
}

func TestPrintHelpListsSubcommands(t *testing.T) {
	root := &Command{
		Name: "opsdesk",
		Subcommands: []*Command{
			{Name: "login", Summary: "Authenticate against the backend"},
			{Name: "console", Summary: "Open the interactive console"},
		},
		Examples: []Example{
			{Description: "Open the console", Command: "opsdesk console"},
		},
	}

	var output strings.Builder
	root.PrintHelp(&output)
	help := output.String()
	for _, want := range []string{"login", "Authenticate against the backend", "console", "Examples:", "opsdesk console"} {
		if !strings.Contains(help, want) {
			t.Errorf("help missing %q", want)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"console", "console", 0},
		{"consoel", "console", 2},
		{"lst", "list", 1},
		{"export", "list", 6},
	}
	for _, test := range cases {
		if got := levenshtein(test.a, test.b); got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}
