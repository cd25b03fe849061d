// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package deskapi is a typed client for the ticket backend's REST API.
//
// The client authenticates with HTTP Basic credentials, decodes the
// backend's drifting JSON field names into the canonical
// lib/schema/ticket records, retries once when the backend reports its
// database is still warming up, and surfaces error bodies as *APIError
// values that callers classify with IsUnauthorized, IsNotFound, and
// friends.
package deskapi
