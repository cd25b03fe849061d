// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the opsdesk CLI.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and a
// Run function. Commands are assembled into a tree in
// cmd/opsdesk/commands and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing, and structured help output
// with examples.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3). This is implemented in
// suggest.go.
//
// The package also provides the operator authentication state shared by
// the subcommand packages: [OperatorSession] / [LoadSession] /
// [SaveSession]. The session file lives at ~/.config/opsdesk/session.json
// (or $OPSDESK_SESSION_FILE) and holds the Basic auth credentials the
// backend verifies on every request. Commands that need backend access
// load it transparently and build a client via
// [OperatorSession.NewClient].
//
// Command failures are reported as [CommandError] values whose category
// maps to a stable exit code, so scripts wrapping the CLI can branch on
// $? instead of parsing error text.
package cli
