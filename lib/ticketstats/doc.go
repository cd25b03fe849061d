// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticketstats computes the aggregates behind the analytics
// tab: counts grouped by emotion, device type, object, status, and
// submission day, plus a one-line summary of the working set.
//
// Grouping preserves first-seen order so that chart rows stay stable
// while the operator refreshes; only the day series is sorted, since
// dates have a natural order.
package ticketstats
