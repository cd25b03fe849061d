// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticketui implements the interactive support ticket console.
// Built on bubbletea (Elm architecture), it provides a split-pane view
// with a filtered, paged ticket list and a detail pane with an inline
// reply editor, plus an analytics tab computed from a working-set
// snapshot.
//
// Generic UI components (theme, overlays, editors, dropdowns) live in
// [tui] and are re-exported here for internal use. Ticket-specific
// logic (the backend source, key bindings, list and detail rendering)
// stays in this package.
//
// The Source abstraction decouples the TUI from the backend:
// *deskapi.Client satisfies it in production, and tests drive the
// model against a stub. All fetches run as asynchronous tea.Cmds
// tagged with a sequence number; responses from superseded fetches are
// discarded by the ticketflow.ListController.
//
// Data flow:
//
//	[ticket backend REST API]
//	        | (Source interface)
//	    [Model] <- bubbletea event loop
//	        |
//	  [terminal output]
package ticketui
