// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticketflow holds the console's interaction state machines,
// independent of any rendering: the paged ticket list with its
// in-flight fetch bookkeeping, the reply session that walks a ticket
// from open to closed, and filter option discovery.
//
// Keeping these out of the TUI layer makes the sequencing rules (stale
// responses discarded, pagination gated on the last page length,
// status reverted when a reply is abandoned) testable without a
// terminal.
package ticketflow
