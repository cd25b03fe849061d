// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticketflow

import (
	"github.com/opsdesk-project/opsdesk/lib/schema/ticket"
)

// FilterOptions holds the dropdown choices discovered from a working
// set snapshot. The emotion vocabulary is open, so the choices are
// whatever labels actually occur rather than a fixed list.
type FilterOptions struct {
	// Emotions are the distinct classifier labels, in first-seen
	// order.
	Emotions []string

	// DeviceTypes are the distinct equipment categories, in
	// first-seen order.
	DeviceTypes []string
}

// DiscoverOptions collects the distinct filter values from a snapshot
// of the working set. Empty values are skipped; a dropdown's "any"
// entry is the caller's concern.
func DiscoverOptions(tickets []ticket.Ticket) FilterOptions {
	var options FilterOptions
	seenEmotions := make(map[string]struct{})
	seenDevices := make(map[string]struct{})
	for _, record := range tickets {
		if record.Emotion != "" {
			if _, seen := seenEmotions[record.Emotion]; !seen {
				seenEmotions[record.Emotion] = struct{}{}
				options.Emotions = append(options.Emotions, record.Emotion)
			}
		}
		if record.DeviceType != "" {
			if _, seen := seenDevices[record.DeviceType]; !seen {
				seenDevices[record.DeviceType] = struct{}{}
				options.DeviceTypes = append(options.DeviceTypes, record.DeviceType)
			}
		}
	}
	return options
}
