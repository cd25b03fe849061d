// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package deskapi

import (
	"net/url"
	"strconv"
)

// Query selects and pages the ticket list. The backend applies every
// non-zero filter conjunctively; zero values are omitted from the
// request entirely.
type Query struct {
	// Page is the 1-based page number. Zero means page 1.
	Page int

	// Limit is the page size. Zero lets the backend choose its
	// default.
	Limit int

	// FullName filters by customer name substring.
	FullName string

	// Emotion filters by exact classifier label.
	Emotion string

	// DeviceType filters by exact equipment category.
	DeviceType string

	// DateFrom and DateTo bound the submission date, inclusive, in
	// ISO form ("2026-08-31").
	DateFrom string
	DateTo   string
}

// queryParams encodes the query as a URL query string, omitting zero
// values. Returns "" when nothing is set.
func (query Query) queryParams() string {
	values := url.Values{}
	if query.Page > 0 {
		values.Set("page", strconv.Itoa(query.Page))
	}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.FullName != "" {
		values.Set("full_name", query.FullName)
	}
	if query.Emotion != "" {
		values.Set("emotion", query.Emotion)
	}
	if query.DeviceType != "" {
		values.Set("device_type", query.DeviceType)
	}
	if query.DateFrom != "" {
		values.Set("date_from", query.DateFrom)
	}
	if query.DateTo != "" {
		values.Set("date_to", query.DateTo)
	}
	return values.Encode()
}

// buildPath appends the query's parameters to a base path.
func buildPath(basePath string, query Query) string {
	params := query.queryParams()
	if params == "" {
		return basePath
	}
	return basePath + "?" + params
}
