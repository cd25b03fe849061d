// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticket defines the canonical support ticket record and the
// normalization rules that map the backend's drifting JSON field names
// onto it. All other packages work with the canonical form; only this
// package knows about the wire aliases.
package ticket
