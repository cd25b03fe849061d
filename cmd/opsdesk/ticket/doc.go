// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticket implements the "opsdesk ticket" command group: list,
// show, create, reply, status, export, and stats, each a thin wrapper
// over the deskapi client suitable for scripting. The interactive
// equivalent is the console (cmd/opsdesk/console).
package ticket
