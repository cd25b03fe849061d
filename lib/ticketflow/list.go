// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticketflow

import (
	"context"

	"github.com/opsdesk-project/opsdesk/lib/deskapi"
	"github.com/opsdesk-project/opsdesk/lib/schema/ticket"
)

// ListController tracks one paged, filtered view of the ticket list.
// It owns the query, the current page of results, and the bookkeeping
// that keeps concurrent fetches coherent: every fetch gets a sequence
// number, and results arriving for a superseded sequence are dropped.
//
// The controller performs no I/O itself. The caller starts a fetch
// with BeginFetch, runs the request on the returned context, and
// reports the outcome with Apply.
//
// Not safe for concurrent use; in the console every method is called
// from the update loop.
type ListController struct {
	query deskapi.Query

	seq    uint64
	cancel context.CancelFunc

	tickets     []ticket.Ticket
	lastPageLen int
	loaded      bool
	loading     bool
	err         error

	dirty bool
}

// NewListController creates a controller with the given page size,
// positioned on page 1 with no filters.
func NewListController(pageLimit int) *ListController {
	return &ListController{
		query: deskapi.Query{Page: 1, Limit: pageLimit},
	}
}

// Query returns the query a fetch should run with.
func (controller *ListController) Query() deskapi.Query {
	return controller.query
}

// Tickets returns the current page of results.
func (controller *ListController) Tickets() []ticket.Ticket {
	return controller.tickets
}

// Loading reports whether a fetch is in flight.
func (controller *ListController) Loading() bool {
	return controller.loading
}

// Loaded reports whether any fetch has completed since the last query
// change. Distinguishes "no results" from "not fetched yet".
func (controller *ListController) Loaded() bool {
	return controller.loaded
}

// Err returns the error from the most recent completed fetch, or nil.
func (controller *ListController) Err() error {
	return controller.err
}

// BeginFetch starts a new fetch generation: any in-flight fetch is
// cancelled, the sequence number advances, and the returned context
// and sequence are handed to the request. The caller passes the
// sequence back to Apply with the result.
func (controller *ListController) BeginFetch(parent context.Context) (context.Context, uint64) {
	if controller.cancel != nil {
		controller.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	controller.cancel = cancel
	controller.seq++
	controller.loading = true
	controller.dirty = false
	return ctx, controller.seq
}

// Apply records the outcome of the fetch with the given sequence
// number. Results from a superseded fetch are discarded; Apply reports
// whether the result was accepted. Cancellation errors from superseded
// fetches never surface.
func (controller *ListController) Apply(seq uint64, tickets []ticket.Ticket, err error) bool {
	if seq != controller.seq {
		return false
	}
	controller.loading = false
	controller.loaded = true
	controller.err = err
	if err != nil {
		// A failed fetch empties the view. Keeping the previous
		// page would show rows from a query the error banner no
		// longer describes.
		controller.tickets = nil
		controller.lastPageLen = 0
		return true
	}
	controller.tickets = tickets
	controller.lastPageLen = len(tickets)
	return true
}

// CanPrev reports whether there is a previous page.
func (controller *ListController) CanPrev() bool {
	return controller.query.Page > 1
}

// CanNext reports whether a next page may exist. The backend does not
// return a total count, so the heuristic is the one its own clients
// use: a short page means the end has been reached.
func (controller *ListController) CanNext() bool {
	return controller.loaded && controller.err == nil && controller.lastPageLen >= controller.query.Limit
}

// NextPage advances to the next page and reports whether it moved.
func (controller *ListController) NextPage() bool {
	if !controller.CanNext() {
		return false
	}
	controller.query.Page++
	controller.loaded = false
	return true
}

// PrevPage moves to the previous page and reports whether it moved.
func (controller *ListController) PrevPage() bool {
	if !controller.CanPrev() {
		return false
	}
	controller.query.Page--
	controller.loaded = false
	return true
}

// resetPage rewinds to page 1 after a filter change and marks the
// controller dirty so the caller schedules a fetch.
func (controller *ListController) resetPage() {
	controller.query.Page = 1
	controller.loaded = false
	controller.dirty = true
}

// SetSearch updates the customer name filter. The caller debounces:
// the controller only goes dirty, it does not fetch.
func (controller *ListController) SetSearch(term string) {
	if controller.query.FullName == term {
		return
	}
	controller.query.FullName = term
	controller.resetPage()
}

// SetEmotion updates the emotion filter.
func (controller *ListController) SetEmotion(emotion string) {
	if controller.query.Emotion == emotion {
		return
	}
	controller.query.Emotion = emotion
	controller.resetPage()
}

// SetDeviceType updates the equipment category filter.
func (controller *ListController) SetDeviceType(deviceType string) {
	if controller.query.DeviceType == deviceType {
		return
	}
	controller.query.DeviceType = deviceType
	controller.resetPage()
}

// SetDateRange updates the inclusive submission date bounds. Empty
// strings clear a bound.
func (controller *ListController) SetDateRange(from, to string) {
	if controller.query.DateFrom == from && controller.query.DateTo == to {
		return
	}
	controller.query.DateFrom = from
	controller.query.DateTo = to
	controller.resetPage()
}

// ClearFilters drops every filter and rewinds to page 1.
func (controller *ListController) ClearFilters() {
	cleared := deskapi.Query{Page: 1, Limit: controller.query.Limit}
	if controller.query == cleared {
		return
	}
	controller.query = cleared
	controller.loaded = false
	controller.dirty = true
}

// Dirty reports whether the query changed since the last BeginFetch.
func (controller *ListController) Dirty() bool {
	return controller.dirty
}

// Replace swaps one ticket in the current page in place, matched by
// ID. Used after a status change or reply so the row reflects the new
// state without a refetch.
func (controller *ListController) Replace(updated ticket.Ticket) {
	for i, record := range controller.tickets {
		if record.ID == updated.ID {
			controller.tickets[i] = updated
			return
		}
	}
}
