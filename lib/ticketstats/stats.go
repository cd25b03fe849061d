// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticketstats

import (
	"sort"

	"github.com/opsdesk-project/opsdesk/lib/schema/ticket"
)

// NameValue is one row of a grouped count: a label and how many
// tickets carry it.
type NameValue struct {
	Name  string
	Value int
}

// DayCount is the number of tickets submitted on one day.
type DayCount struct {
	// Day is the ISO date ("2026-08-31").
	Day   string
	Count int
}

// unlabeled is the bucket for tickets whose grouped field is empty.
const unlabeled = "(none)"

// groupBy counts tickets by the given key, preserving the order in
// which keys are first seen. Empty keys land in the "(none)" bucket.
func groupBy(tickets []ticket.Ticket, key func(ticket.Ticket) string) []NameValue {
	var rows []NameValue
	index := make(map[string]int)
	for _, record := range tickets {
		name := key(record)
		if name == "" {
			name = unlabeled
		}
		at, seen := index[name]
		if !seen {
			index[name] = len(rows)
			rows = append(rows, NameValue{Name: name})
			at = len(rows) - 1
		}
		rows[at].Value++
	}
	return rows
}

// ByEmotion counts tickets per classifier emotion label.
func ByEmotion(tickets []ticket.Ticket) []NameValue {
	return groupBy(tickets, func(record ticket.Ticket) string { return record.Emotion })
}

// ByDeviceType counts tickets per equipment category.
func ByDeviceType(tickets []ticket.Ticket) []NameValue {
	return groupBy(tickets, func(record ticket.Ticket) string { return record.DeviceType })
}

// ByObject counts tickets per product or site.
func ByObject(tickets []ticket.Ticket) []NameValue {
	return groupBy(tickets, func(record ticket.Ticket) string { return record.Object })
}

// ByStatus counts tickets per lifecycle state, using the
// operator-facing labels.
func ByStatus(tickets []ticket.Ticket) []NameValue {
	return groupBy(tickets, func(record ticket.Ticket) string { return record.Status.Label() })
}

// ByDay counts tickets per submission day, sorted ascending by date.
// ISO dates sort correctly as strings. Tickets without a parseable
// date are skipped rather than grouped, since a "(none)" day has no
// place on a time axis.
func ByDay(tickets []ticket.Ticket) []DayCount {
	counts := make(map[string]int)
	for _, record := range tickets {
		if record.Day().IsZero() {
			continue
		}
		counts[record.Date]++
	}
	days := make([]DayCount, 0, len(counts))
	for day, count := range counts {
		days = append(days, DayCount{Day: day, Count: count})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Day < days[j].Day })
	return days
}

// Summary is the headline numbers for a working set of tickets.
type Summary struct {
	// Total is the number of tickets in the set.
	Total int

	// Closed is how many of them are closed.
	Closed int

	// DistinctObjects is the number of distinct products or sites.
	DistinctObjects int

	// DistinctDeviceTypes is the number of distinct equipment
	// categories.
	DistinctDeviceTypes int

	// DaysRecorded is the number of distinct submission days with a
	// parseable date.
	DaysRecorded int
}

// Summarize computes the headline numbers for a set of tickets.
func Summarize(tickets []ticket.Ticket) Summary {
	summary := Summary{Total: len(tickets)}
	objects := make(map[string]struct{})
	devices := make(map[string]struct{})
	days := make(map[string]struct{})
	for _, record := range tickets {
		if record.Status == ticket.StatusClosed {
			summary.Closed++
		}
		if record.Object != "" {
			objects[record.Object] = struct{}{}
		}
		if record.DeviceType != "" {
			devices[record.DeviceType] = struct{}{}
		}
		if !record.Day().IsZero() {
			days[record.Date] = struct{}{}
		}
	}
	summary.DistinctObjects = len(objects)
	summary.DistinctDeviceTypes = len(devices)
	summary.DaysRecorded = len(days)
	return summary
}
