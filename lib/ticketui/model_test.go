// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opsdesk-project/opsdesk/lib/deskapi"
	"github.com/opsdesk-project/opsdesk/lib/schema/ticket"
)

type statusCall struct {
	id     int64
	status ticket.Status
}

// stubSource is an in-memory Source that records every call.
type stubSource struct {
	mu sync.Mutex

	tickets []ticket.Ticket
	pages   map[int][]ticket.Ticket // Per-page results; nil means serve tickets for every page.
	listErr error

	snapshot    []ticket.Ticket
	snapshotErr error

	nextID    int64
	createErr error

	statusErr error
	replyErr  error

	listCalls   []deskapi.Query
	statusCalls []statusCall
	replies     []deskapi.Reply
	created     []ticket.Draft
}

func (source *stubSource) ListTickets(ctx context.Context, query deskapi.Query) ([]ticket.Ticket, error) {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.listCalls = append(source.listCalls, query)
	if source.listErr != nil {
		return nil, source.listErr
	}
	if source.pages != nil {
		return source.pages[query.Page], nil
	}
	return source.tickets, nil
}

func (source *stubSource) Snapshot(ctx context.Context, limit int) ([]ticket.Ticket, error) {
	source.mu.Lock()
	defer source.mu.Unlock()
	if source.snapshotErr != nil {
		return nil, source.snapshotErr
	}
	if source.snapshot != nil {
		return source.snapshot, nil
	}
	return source.tickets, nil
}

func (source *stubSource) CreateTicket(ctx context.Context, draft ticket.Draft) (ticket.Ticket, error) {
	source.mu.Lock()
	defer source.mu.Unlock()
	if source.createErr != nil {
		return ticket.Ticket{}, source.createErr
	}
	source.created = append(source.created, draft)
	source.nextID++
	return draft.Materialize(source.nextID), nil
}

func (source *stubSource) UpdateStatus(ctx context.Context, id int64, status ticket.Status) error {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.statusCalls = append(source.statusCalls, statusCall{id: id, status: status})
	return source.statusErr
}

func (source *stubSource) SendReply(ctx context.Context, reply deskapi.Reply) error {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.replies = append(source.replies, reply)
	return source.replyErr
}

// exportingSource adds Download so the model discovers export support.
type exportingSource struct {
	stubSource
	exportBody   string
	exportFormat deskapi.ExportFormat
	exportQuery  deskapi.Query
}

func (source *exportingSource) Download(ctx context.Context, format deskapi.ExportFormat, query deskapi.Query, destination io.Writer) (int64, error) {
	source.exportFormat = format
	source.exportQuery = query
	written, err := io.WriteString(destination, source.exportBody)
	return int64(written), err
}

// supportTickets is the standard three-ticket fixture: one per
// lifecycle state.
func supportTickets() []ticket.Ticket {
	return []ticket.Ticket{
		{
			ID:             101,
			Date:           "2026-03-01",
			FullName:       "Анна Соколова",
			Email:          "anna@example.com",
			Object:         "Котёл Альфа-30",
			SerialNumbers:  "A30-4411",
			DeviceType:     "котёл",
			Emotion:        "тревога",
			Issue:          "Не запускается после отключения электричества.",
			SuggestedReply: "Проверьте автомат питания и перезапустите котёл.",
			MessageID:      "<msg-101@customers.example.com>",
			Status:         ticket.StatusOpen,
		},
		{
			ID:         102,
			Date:       "2026-03-02",
			FullName:   "Борис Ким",
			Email:      "boris@example.com",
			Object:     "Насос Вихрь-12",
			DeviceType: "насос",
			Emotion:    "раздражение",
			Issue:      "Шумит при работе.",
			Status:     ticket.StatusInProgress,
		},
		{
			ID:         103,
			Date:       "2026-03-03",
			FullName:   "Вера Лапина",
			Email:      "vera@example.com",
			Object:     "Котёл Альфа-30",
			DeviceType: "котёл",
			Emotion:    "спокойствие",
			Issue:      "Вопрос по гарантии.",
			Status:     ticket.StatusClosed,
		},
	}
}

func newTestModel(t *testing.T, source Source) Model {
	t.Helper()
	model := NewModel(source, 20, t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	model.noticeFade = time.Millisecond
	model.now = func() time.Time {
		return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	}
	return model
}

// runCommands executes a command tree, feeding every produced message
// back into the model until nothing is pending. Commands built on
// tea.Tick sleep for real, so tests keep injected delays short and
// construct debounce messages directly.
func runCommands(t *testing.T, model Model, command tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{command}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		message := next()
		if message == nil {
			continue
		}
		if batch, ok := message.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		updated, followup := model.Update(message)
		model = updated.(Model)
		if followup != nil {
			queue = append(queue, followup)
		}
	}
	return model
}

// startModel sets the terminal size and runs the initial fetches.
func startModel(t *testing.T, model Model) Model {
	t.Helper()
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 140, Height: 30})
	model = updated.(Model)
	return runCommands(t, model, model.Init())
}

func pressRune(t *testing.T, model Model, character rune) (Model, tea.Cmd) {
	t.Helper()
	updated, command := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{character}})
	return updated.(Model), command
}

func pressKey(t *testing.T, model Model, keyType tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	updated, command := model.Update(tea.KeyMsg{Type: keyType})
	return updated.(Model), command
}

func TestInitialFetchPopulatesList(t *testing.T) {
	source := &stubSource{tickets: supportTickets()}
	model := startModel(t, newTestModel(t, source))

	if got := len(model.list.Tickets()); got != 3 {
		t.Fatalf("tickets after init = %d, want 3", got)
	}
	if len(source.listCalls) != 1 {
		t.Fatalf("list calls = %d, want 1", len(source.listCalls))
	}
	if query := source.listCalls[0]; query.Page != 1 || query.Limit != 20 {
		t.Errorf("first query = page %d limit %d, want page 1 limit 20", query.Page, query.Limit)
	}

	// Filter options come from the snapshot.
	if got := model.options.Emotions; len(got) != 3 {
		t.Errorf("discovered emotions = %v, want 3 entries", got)
	}

	view := model.View()
	for _, want := range []string{"Анна Соколова", "Борис Ким", "Вера Лапина", "page 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewBeforeWindowSize(t *testing.T) {
	model := newTestModel(t, &stubSource{})
	if view := model.View(); view != "Loading..." {
		t.Errorf("view before size = %q, want Loading...", view)
	}
}

func TestEmptyListMessage(t *testing.T) {
	model := startModel(t, newTestModel(t, &stubSource{}))
	if view := model.View(); !strings.Contains(view, "No tickets match the current filters.") {
		t.Error("empty view should explain that no tickets matched")
	}
}

func TestListNavigationBounds(t *testing.T) {
	model := startModel(t, newTestModel(t, &stubSource{tickets: supportTickets()}))

	if model.cursor != 0 {
		t.Fatalf("initial cursor = %d, want 0", model.cursor)
	}
	model, _ = pressRune(t, model, 'k')
	if model.cursor != 0 {
		t.Errorf("cursor after k at top = %d, want 0", model.cursor)
	}
	model, _ = pressRune(t, model, 'j')
	model, _ = pressRune(t, model, 'j')
	model, _ = pressRune(t, model, 'j')
	if model.cursor != 2 {
		t.Errorf("cursor after three j on three rows = %d, want 2", model.cursor)
	}
	model, _ = pressRune(t, model, 'g')
	if model.cursor != 0 {
		t.Errorf("cursor after g = %d, want 0", model.cursor)
	}
	model, _ = pressRune(t, model, 'G')
	if model.cursor != 2 {
		t.Errorf("cursor after G = %d, want 2", model.cursor)
	}
}

func TestPaginationFetchesNextPage(t *testing.T) {
	// A full first page gates the next-page key on; a short second
	// page gates it back off.
	fullPage := make([]ticket.Ticket, 20)
	for index := range fullPage {
		fullPage[index] = ticket.Ticket{ID: int64(index + 1), FullName: "Оператор", Status: ticket.StatusOpen}
	}
	source := &stubSource{pages: map[int][]ticket.Ticket{
		1: fullPage,
		2: supportTickets(),
	}}
	model := startModel(t, newTestModel(t, source))

	model, command := pressRune(t, model, 'n')
	if command == nil {
		t.Fatal("n on a full page should start a fetch")
	}
	model = runCommands(t, model, command)
	if query := model.list.Query(); query.Page != 2 {
		t.Fatalf("page after n = %d, want 2", query.Page)
	}
	if got := len(model.list.Tickets()); got != 3 {
		t.Fatalf("tickets on page 2 = %d, want 3", got)
	}

	// The short page means there is no page 3.
	model, command = pressRune(t, model, 'n')
	if command != nil {
		t.Error("n on a short page should be inert")
	}

	model, command = pressRune(t, model, 'p')
	if command == nil {
		t.Fatal("p on page 2 should start a fetch")
	}
	model = runCommands(t, model, command)
	if query := model.list.Query(); query.Page != 1 {
		t.Errorf("page after p = %d, want 1", query.Page)
	}
}

func TestSearchDebounce(t *testing.T) {
	source := &stubSource{tickets: supportTickets()}
	model := startModel(t, newTestModel(t, source))
	calls := len(source.listCalls)

	model, _ = pressRune(t, model, '/')
	if model.focusRegion != FocusSearch {
		t.Fatal("/ should focus the search input")
	}
	for _, character := range "Анна" {
		model, _ = pressRune(t, model, character)
	}
	if len(source.listCalls) != calls {
		t.Fatalf("typing alone fetched %d times", len(source.listCalls)-calls)
	}
	if query := model.list.Query(); query.FullName != "Анна" {
		t.Fatalf("query FullName = %q, want Анна", query.FullName)
	}

	// A debounce from a superseded edit does nothing.
	updated, command := model.Update(searchDebounceMsg{generation: model.searchGeneration - 1})
	model = updated.(Model)
	if command != nil {
		t.Error("stale debounce generation should be ignored")
	}

	// The current generation fires the fetch.
	updated, command = model.Update(searchDebounceMsg{generation: model.searchGeneration})
	model = updated.(Model)
	if command == nil {
		t.Fatal("settled debounce should fetch")
	}
	model = runCommands(t, model, command)
	last := source.listCalls[len(source.listCalls)-1]
	if last.FullName != "Анна" || last.Page != 1 {
		t.Errorf("fetched query = %+v, want FullName Анна on page 1", last)
	}

	// Once fetched, a repeat debounce is a no-op.
	if _, command = model.Update(searchDebounceMsg{generation: model.searchGeneration}); command != nil {
		t.Error("debounce with nothing dirty should be inert")
	}
}

func TestUnauthorizedQuits(t *testing.T) {
	source := &stubSource{listErr: &deskapi.APIError{StatusCode: 401, Detail: "Invalid credentials"}}
	model := newTestModel(t, source)
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	model = updated.(Model)

	model = runCommands(t, model, model.Init())
	if !model.AuthFailed() {
		t.Error("rejected credentials should set AuthFailed")
	}
}

func TestFetchErrorBannerAndRetry(t *testing.T) {
	source := &stubSource{listErr: errors.New("connection refused")}
	model := startModel(t, newTestModel(t, source))

	if !strings.Contains(model.View(), "connection refused") {
		t.Fatal("fetch error should show in the banner")
	}

	source.mu.Lock()
	source.listErr = nil
	source.tickets = supportTickets()
	source.mu.Unlock()

	model, command := pressRune(t, model, 'R')
	model = runCommands(t, model, command)
	if strings.Contains(model.View(), "connection refused") {
		t.Error("banner should clear after a successful retry")
	}
	if got := len(model.list.Tickets()); got != 3 {
		t.Errorf("tickets after retry = %d, want 3", got)
	}
}

func TestReplyFlowSendsAndCloses(t *testing.T) {
	source := &stubSource{tickets: supportTickets()}
	model := startModel(t, newTestModel(t, source))

	// Open the reply pane on the open ticket; the auto-advance to
	// in_progress persists immediately.
	model, command := pressKey(t, model, tea.KeyEnter)
	model = runCommands(t, model, command)
	if model.focusRegion != FocusDetail {
		t.Fatal("enter should focus the detail pane")
	}
	if len(source.statusCalls) == 0 || source.statusCalls[0] != (statusCall{id: 101, status: ticket.StatusInProgress}) {
		t.Fatalf("status calls after open = %v, want in_progress for #101", source.statusCalls)
	}

	view := model.View()
	if !strings.Contains(view, "Re: Котёл Альфа-30") {
		t.Error("subject should prefill from the object")
	}
	if !strings.Contains(view, "Проверьте автомат питания") {
		t.Error("body should prefill the drafted answer")
	}

	model, command = pressKey(t, model, tea.KeyCtrlD)
	if command == nil {
		t.Fatal("ctrl+d with a valid reply should send")
	}
	model = runCommands(t, model, command)

	if len(source.replies) != 1 {
		t.Fatalf("replies sent = %d, want 1", len(source.replies))
	}
	reply := source.replies[0]
	if len(reply.ToEmails) != 1 || reply.ToEmails[0] != "anna@example.com" {
		t.Errorf("reply recipients = %v", reply.ToEmails)
	}
	if reply.MessageID != "<msg-101@customers.example.com>" {
		t.Errorf("reply MessageID = %q, want the customer's message id", reply.MessageID)
	}

	// The send closes the ticket, locally and on the backend.
	if got := model.list.Tickets()[0].Status; got != ticket.StatusClosed {
		t.Errorf("row status after send = %q, want closed", got)
	}
	last := source.statusCalls[len(source.statusCalls)-1]
	if last != (statusCall{id: 101, status: ticket.StatusClosed}) {
		t.Errorf("final status call = %v, want closed for #101", last)
	}
}

func TestAbandonReplyRevertsStatus(t *testing.T) {
	source := &stubSource{tickets: supportTickets()}
	model := startModel(t, newTestModel(t, source))

	model, command := pressKey(t, model, tea.KeyEnter)
	model = runCommands(t, model, command)

	model, command = pressKey(t, model, tea.KeyEscape)
	model = runCommands(t, model, command)
	if model.focusRegion != FocusList {
		t.Fatal("escape should return focus to the list")
	}

	// Open persisted in_progress, abandon persisted the revert.
	want := []statusCall{
		{id: 101, status: ticket.StatusInProgress},
		{id: 101, status: ticket.StatusOpen},
	}
	if len(source.statusCalls) != len(want) {
		t.Fatalf("status calls = %v, want %v", source.statusCalls, want)
	}
	for index := range want {
		if source.statusCalls[index] != want[index] {
			t.Errorf("status call %d = %v, want %v", index, source.statusCalls[index], want[index])
		}
	}
	if got := model.list.Tickets()[0].Status; got != ticket.StatusOpen {
		t.Errorf("row status after abandon = %q, want open", got)
	}
}

func TestSendInFlightSurvivesAbandon(t *testing.T) {
	source := &stubSource{tickets: supportTickets()}
	model := startModel(t, newTestModel(t, source))

	model, command := pressKey(t, model, tea.KeyEnter)
	model = runCommands(t, model, command)

	// Start the send but hold its command, as if the request were
	// still on the wire.
	model, sendCommand := pressKey(t, model, tea.KeyCtrlD)
	if sendCommand == nil {
		t.Fatal("ctrl+d with a valid reply should send")
	}

	// Abandon the pane with the send still in flight; the
	// auto-advance reverts and persists open.
	model, command = pressKey(t, model, tea.KeyEscape)
	model = runCommands(t, model, command)

	// The send lands after the pane is gone. The mail went out, so
	// the ticket must still end up closed everywhere.
	model = runCommands(t, model, sendCommand)

	if len(source.replies) != 1 {
		t.Fatalf("replies sent = %d, want 1", len(source.replies))
	}
	last := source.statusCalls[len(source.statusCalls)-1]
	if last != (statusCall{id: 101, status: ticket.StatusClosed}) {
		t.Errorf("final status call = %v, want closed for #101", last)
	}
	if got := model.list.Tickets()[0].Status; got != ticket.StatusClosed {
		t.Errorf("row status after late send = %q, want closed", got)
	}
}

func TestClosedTicketReplyIsReadOnly(t *testing.T) {
	source := &stubSource{tickets: supportTickets()}
	model := startModel(t, newTestModel(t, source))

	// Move to the closed ticket and open it.
	model, _ = pressRune(t, model, 'G')
	model, command := pressKey(t, model, tea.KeyEnter)
	model = runCommands(t, model, command)

	// No status transition for a closed ticket.
	if len(source.statusCalls) != 0 {
		t.Fatalf("status calls = %v, want none", source.statusCalls)
	}

	if !strings.Contains(model.View(), "read-only") {
		t.Error("closed ticket pane should say read-only")
	}

	model, command = pressKey(t, model, tea.KeyCtrlD)
	if command != nil {
		model = runCommands(t, model, command)
	}
	if len(source.replies) != 0 {
		t.Error("ctrl+d on a closed ticket must not send")
	}
}

func TestStatusDropdownPersists(t *testing.T) {
	source := &stubSource{tickets: supportTickets()}
	model := startModel(t, newTestModel(t, source))

	model, _ = pressRune(t, model, 's')
	if model.focusRegion != FocusDropdown || model.activeDropdown == nil {
		t.Fatal("s should open the status dropdown")
	}
	// Cursor starts on the current status (open); move to in_progress.
	model, _ = pressRune(t, model, 'j')
	model, command := pressKey(t, model, tea.KeyEnter)
	if command == nil {
		t.Fatal("selecting a status should persist it")
	}
	model = runCommands(t, model, command)

	if len(source.statusCalls) != 1 || source.statusCalls[0] != (statusCall{id: 101, status: ticket.StatusInProgress}) {
		t.Fatalf("status calls = %v, want in_progress for #101", source.statusCalls)
	}
	if got := model.list.Tickets()[0].Status; got != ticket.StatusInProgress {
		t.Errorf("row status = %q, want in_progress", got)
	}
	if model.activeDropdown != nil || model.focusRegion != FocusList {
		t.Error("dropdown should close back to the list")
	}
}

func TestEmotionFilterDropdown(t *testing.T) {
	source := &stubSource{tickets: supportTickets()}
	model := startModel(t, newTestModel(t, source))
	calls := len(source.listCalls)

	model, _ = pressRune(t, model, 'e')
	if model.activeDropdown == nil || model.activeDropdown.Field != "emotion" {
		t.Fatal("e should open the emotion dropdown")
	}
	// First entry is Any; the first discovered emotion follows.
	model, _ = pressRune(t, model, 'j')
	model, command := pressKey(t, model, tea.KeyEnter)
	if command == nil {
		t.Fatal("picking an emotion should fetch")
	}
	model = runCommands(t, model, command)

	last := source.listCalls[len(source.listCalls)-1]
	if last.Emotion != "тревога" || last.Page != 1 {
		t.Errorf("filtered query = %+v, want emotion тревога on page 1", last)
	}
	if len(source.listCalls) != calls+1 {
		t.Errorf("list calls = %d, want %d", len(source.listCalls), calls+1)
	}
}

func TestDateBoundValidation(t *testing.T) {
	source := &stubSource{tickets: supportTickets()}
	model := startModel(t, newTestModel(t, source))

	model, _ = pressRune(t, model, 'f')
	if model.focusRegion != FocusDate {
		t.Fatal("f should focus the date input")
	}
	for _, character := range "not-a-date" {
		model, _ = pressRune(t, model, character)
	}
	model, command := pressKey(t, model, tea.KeyEnter)
	if command != nil {
		t.Error("a malformed date must not fetch")
	}
	if !strings.Contains(model.View(), "YYYY-MM-DD") {
		t.Error("malformed date should show the format hint")
	}

	model, _ = pressRune(t, model, 'f')
	for _, character := range "2026-03-01" {
		model, _ = pressRune(t, model, character)
	}
	model, command = pressKey(t, model, tea.KeyEnter)
	if command == nil {
		t.Fatal("a valid date should fetch")
	}
	model = runCommands(t, model, command)
	last := source.listCalls[len(source.listCalls)-1]
	if last.DateFrom != "2026-03-01" {
		t.Errorf("DateFrom = %q, want 2026-03-01", last.DateFrom)
	}
}

func TestClearFiltersRefetches(t *testing.T) {
	source := &stubSource{tickets: supportTickets()}
	model := startModel(t, newTestModel(t, source))

	model, _ = pressRune(t, model, 'e')
	model, _ = pressRune(t, model, 'j')
	model, command := pressKey(t, model, tea.KeyEnter)
	model = runCommands(t, model, command)

	model, command = pressRune(t, model, 'C')
	if command == nil {
		t.Fatal("C with active filters should refetch")
	}
	model = runCommands(t, model, command)
	last := source.listCalls[len(source.listCalls)-1]
	if last.Emotion != "" || last.FullName != "" {
		t.Errorf("query after clear = %+v, want no filters", last)
	}

	// Clearing again is a no-op.
	if _, command = pressRune(t, model, 'C'); command != nil {
		t.Error("C with no filters should be inert")
	}
}

func TestCreateFormSubmits(t *testing.T) {
	source := &stubSource{tickets: supportTickets(), nextID: 200}
	model := startModel(t, newTestModel(t, source))

	model, _ = pressRune(t, model, 'c')
	if model.focusRegion != FocusCreate || model.createForm == nil {
		t.Fatal("c should open the create form")
	}

	// An empty form fails validation client-side.
	model, command := pressKey(t, model, tea.KeyCtrlD)
	if command != nil {
		t.Error("submitting an empty form must not hit the backend")
	}
	if model.createForm.validationError == "" {
		t.Error("empty form should record a validation error")
	}

	// Fill the required fields directly; key routing is covered by
	// the form's own tests.
	model.createForm.editors[1].SetValue("Галина Мороз")
	model.createForm.editors[3].SetValue("Котёл Альфа-30")
	model.createForm.editors[6].SetValue("гнев")
	model.createForm.editors[7].SetValue("Течёт из-под крышки.")

	model, command = pressKey(t, model, tea.KeyCtrlD)
	if command == nil {
		t.Fatal("a valid form should submit")
	}
	model = runCommands(t, model, command)

	if len(source.created) != 1 {
		t.Fatalf("created drafts = %d, want 1", len(source.created))
	}
	draft := source.created[0]
	if draft.FullName != "Галина Мороз" || draft.Date != "2026-03-10" {
		t.Errorf("draft = %+v, want today's date filled in", draft)
	}
	if model.createForm != nil || model.focusRegion != FocusList {
		t.Error("successful create should close the form")
	}
}

func TestAnalyticsTab(t *testing.T) {
	source := &stubSource{tickets: supportTickets()}
	model := startModel(t, newTestModel(t, source))

	model, _ = pressRune(t, model, '2')
	if model.activeTab != TabAnalytics {
		t.Fatal("2 should switch to the analytics tab")
	}
	view := model.View()
	for _, want := range []string{"By emotion", "By device type", "By status", "3 tickets"} {
		if !strings.Contains(view, want) {
			t.Errorf("analytics view missing %q", want)
		}
	}

	model, _ = pressRune(t, model, '1')
	if model.activeTab != TabTickets {
		t.Error("1 should switch back to the ticket tab")
	}
}

func TestExportWritesFile(t *testing.T) {
	source := &exportingSource{
		stubSource: stubSource{tickets: supportTickets()},
		exportBody: "id;full_name\n101;Анна Соколова\n",
	}
	directory := t.TempDir()
	model := NewModel(source, 20, directory, slog.New(slog.NewTextHandler(io.Discard, nil)))
	model.noticeFade = time.Millisecond
	model.now = func() time.Time {
		return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	}
	model = startModel(t, model)

	model, command := pressRune(t, model, 'x')
	if command == nil {
		t.Fatal("x should start an export")
	}
	message := command()
	export, ok := message.(exportDoneMsg)
	if !ok {
		t.Fatalf("export command produced %T", message)
	}
	if export.err != nil {
		t.Fatalf("export failed: %v", export.err)
	}
	updated, _ := model.Update(message)
	model = updated.(Model)

	if source.exportFormat != deskapi.ExportCSV {
		t.Errorf("export format = %q, want csv", source.exportFormat)
	}
	if source.exportQuery.Page != 0 || source.exportQuery.Limit != 0 {
		t.Errorf("export query = %+v, want no pagination", source.exportQuery)
	}

	path := filepath.Join(directory, "tickets-20260310-120000.csv")
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if string(content) != source.exportBody {
		t.Errorf("export content = %q", content)
	}
	if !strings.Contains(model.View(), "Exported to") {
		t.Error("status bar should confirm the export")
	}
}

func TestExportInertWithoutExporter(t *testing.T) {
	model := startModel(t, newTestModel(t, &stubSource{tickets: supportTickets()}))
	if _, command := pressRune(t, model, 'x'); command != nil {
		t.Error("x without export support should be inert")
	}
}

func TestQuitKeys(t *testing.T) {
	model := startModel(t, newTestModel(t, &stubSource{}))

	_, command := pressRune(t, model, 'q')
	if command == nil {
		t.Fatal("q should quit")
	}
	if _, isQuit := command().(tea.QuitMsg); !isQuit {
		t.Errorf("q produced %T, want QuitMsg", command())
	}

	// Ctrl+C quits from any focus region.
	model, _ = pressRune(t, model, '/')
	_, command = pressKey(t, model, tea.KeyCtrlC)
	if command == nil {
		t.Fatal("ctrl+c should quit while searching")
	}
	if _, isQuit := command().(tea.QuitMsg); !isQuit {
		t.Errorf("ctrl+c produced %T, want QuitMsg", command())
	}
}
