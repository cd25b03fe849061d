// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/opsdesk-project/opsdesk/lib/deskapi"
	"github.com/opsdesk-project/opsdesk/lib/schema/ticket"
	"github.com/opsdesk-project/opsdesk/lib/ticketflow"
	"github.com/opsdesk-project/opsdesk/lib/tui"
)

// Tab identifies which view is active.
type Tab int

const (
	// TabTickets is the split-pane ticket list and detail view.
	TabTickets Tab = iota
	// TabAnalytics is the aggregate charts view.
	TabAnalytics
)

// FocusRegion identifies where keyboard input is routed.
type FocusRegion int

const (
	// FocusList means navigation keys move the ticket list cursor.
	FocusList FocusRegion = iota
	// FocusDetail means keystrokes go to the reply editor.
	FocusDetail
	// FocusSearch means keystrokes go to the name search input.
	FocusSearch
	// FocusDate means keystrokes go to a date bound input.
	FocusDate
	// FocusDropdown means a dropdown overlay (emotion, device, or
	// status) is active and captures all input.
	FocusDropdown
	// FocusCreate means the new ticket form captures all input.
	FocusCreate
)

// searchDebounceDelay is how long the name search input must settle
// before a server-side fetch fires.
const searchDebounceDelay = 300 * time.Millisecond

// noticeFadeDelay is how long transient status bar notices (export
// written, reply sent) stay visible.
const noticeFadeDelay = 3 * time.Second

// ticketsLoadedMsg delivers one fetched page. The sequence number lets
// the list controller discard results from superseded fetches.
type ticketsLoadedMsg struct {
	seq     uint64
	tickets []ticket.Ticket
	err     error
}

// snapshotLoadedMsg delivers the working-set snapshot used for filter
// options and analytics.
type snapshotLoadedMsg struct {
	tickets []ticket.Ticket
	err     error
}

// replySentMsg reports the outcome of a reply send.
type replySentMsg struct {
	id  int64
	err error
}

// statusSavedMsg reports the outcome of a status persist.
type statusSavedMsg struct {
	id     int64
	status ticket.Status
	err    error
}

// createdMsg reports the outcome of a ticket creation.
type createdMsg struct {
	record ticket.Ticket
	err    error
}

// exportDoneMsg reports the outcome of a spreadsheet export.
type exportDoneMsg struct {
	path string
	err  error
}

// searchDebounceMsg fires when the search input may have settled. The
// generation tags which edit scheduled it; stale generations are
// ignored.
type searchDebounceMsg struct {
	generation int
}

// noticeFadeMsg clears the transient status bar notice.
type noticeFadeMsg struct{}

// Model is the top-level bubbletea model for the ticket console.
type Model struct {
	source Source
	theme  Theme
	keys   KeyMap
	logger *slog.Logger

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	// Active tab.
	activeTab Tab

	// List state. The controller owns the query, page, and fetch
	// sequencing; cursor and scrollOffset are view-local.
	list         *ticketflow.ListController
	cursor       int
	scrollOffset int

	// Filters.
	search           SearchModel
	searchGeneration int
	options          ticketflow.FilterOptions
	dateEditor       tui.LineEditor
	dateEditingTo    bool // Which bound the date editor targets.

	// Panes.
	focusRegion FocusRegion
	priorFocus  FocusRegion // Saved focus while an input or overlay is active.
	detail      DetailPane
	analytics   AnalyticsPane
	createForm  *CreateForm

	// Dropdown overlay (emotion, device, or status).
	activeDropdown *tui.DropdownOverlay

	// Error banner: the last failed operation, shown inline above the
	// status bar until the next successful fetch or retry.
	errorBanner string

	// Transient notice (export written, reply sent) and log records
	// routed in by TUILogHandler.
	notice      string
	noticeLevel slog.Level

	// A reply or status request in flight; blocks a second send.
	sending bool

	// exportDirectory is where spreadsheet exports are written.
	exportDirectory string

	// authFailed is set when the backend rejects the stored
	// credentials; the program quits and the caller tells the
	// operator to log in again.
	authFailed bool

	// now and noticeFade are injectable for tests.
	now        func() time.Time
	noticeFade time.Duration
}

// NewModel creates a Model connected to the given backend source. The
// pageLimit sets the list page size; exportDirectory is where exports
// land.
func NewModel(source Source, pageLimit int, exportDirectory string, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	return Model{
		source:          source,
		theme:           DefaultTheme,
		keys:            DefaultKeyMap,
		logger:          logger,
		list:            ticketflow.NewListController(pageLimit),
		detail:          NewDetailPane(DefaultTheme),
		analytics:       NewAnalyticsPane(DefaultTheme),
		exportDirectory: exportDirectory,
		now:             time.Now,
		noticeFade:      noticeFadeDelay,
	}
}

// AuthFailed reports whether the console quit because the backend
// rejected the stored credentials.
func (model Model) AuthFailed() bool {
	return model.authFailed
}

// Init implements tea.Model: fetch the first page and the working-set
// snapshot.
func (model Model) Init() tea.Cmd {
	return tea.Batch(model.fetchPage(), model.fetchSnapshot())
}

// fetchPage begins a new fetch generation on the list controller and
// returns the command that runs it.
func (model *Model) fetchPage() tea.Cmd {
	ctx, seq := model.list.BeginFetch(context.Background())
	query := model.list.Query()
	source := model.source
	return func() tea.Msg {
		tickets, err := source.ListTickets(ctx, query)
		if ctx.Err() != nil {
			// Superseded; the controller would discard this anyway.
			return nil
		}
		return ticketsLoadedMsg{seq: seq, tickets: tickets, err: err}
	}
}

// fetchSnapshot fetches the working set for filter options and
// analytics.
func (model *Model) fetchSnapshot() tea.Cmd {
	source := model.source
	return func() tea.Msg {
		tickets, err := source.Snapshot(context.Background(), 0)
		return snapshotLoadedMsg{tickets: tickets, err: err}
	}
}

// sendReply posts the prepared reply, then persists the closed status.
func (model *Model) sendReply(id int64, reply deskapi.Reply) tea.Cmd {
	source := model.source
	return func() tea.Msg {
		err := source.SendReply(context.Background(), reply)
		return replySentMsg{id: id, err: err}
	}
}

// saveStatus persists a lifecycle state change.
func (model *Model) saveStatus(id int64, status ticket.Status) tea.Cmd {
	source := model.source
	return func() tea.Msg {
		err := source.UpdateStatus(context.Background(), id, status)
		return statusSavedMsg{id: id, status: status, err: err}
	}
}

// createTicket submits a validated draft.
func (model *Model) createTicket(draft ticket.Draft) tea.Cmd {
	source := model.source
	return func() tea.Msg {
		record, err := source.CreateTicket(context.Background(), draft)
		return createdMsg{record: record, err: err}
	}
}

// exportTickets downloads the current filtered set (all pages) in the
// given format. Inert when the source cannot export.
func (model *Model) exportTickets(format deskapi.ExportFormat) tea.Cmd {
	exporter, ok := model.source.(Exporter)
	if !ok {
		return nil
	}
	query := model.list.Query()
	query.Page = 0
	query.Limit = 0
	name := fmt.Sprintf("tickets-%s.%s", model.now().Format("20060102-150405"), format.Extension())
	path := filepath.Join(model.exportDirectory, name)
	return func() tea.Msg {
		file, err := os.Create(path)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		defer file.Close()
		if _, err := exporter.Download(context.Background(), format, query, file); err != nil {
			os.Remove(path)
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path}
	}
}

// scheduleSearchDebounce arms the settle timer for the current search
// generation.
func (model *Model) scheduleSearchDebounce() tea.Cmd {
	generation := model.searchGeneration
	return tea.Tick(searchDebounceDelay, func(time.Time) tea.Msg {
		return searchDebounceMsg{generation: generation}
	})
}

// fadeNotice arms the status bar notice fade timer.
func (model Model) fadeNotice() tea.Cmd {
	return tea.Tick(model.noticeFade, func(time.Time) tea.Msg {
		return noticeFadeMsg{}
	})
}

// markRowClosed flips the list row for the given ticket to closed
// without a refetch, for sends that land after the reply pane has
// moved on to another ticket.
func (model *Model) markRowClosed(id int64) {
	for _, record := range model.list.Tickets() {
		if record.ID == id {
			record.Status = ticket.StatusClosed
			model.list.Replace(record)
			return
		}
	}
}

// failOrBanner routes an operation error: credential rejections quit
// the program, everything else lands in the inline error banner.
func (model *Model) failOrBanner(operation string, err error) tea.Cmd {
	if deskapi.IsUnauthorized(err) {
		model.authFailed = true
		return tea.Quit
	}
	model.errorBanner = operation + ": " + err.Error()
	model.logger.Warn(operation, "error", err)
	return nil
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.layout()
		return model, nil

	case ticketsLoadedMsg:
		if !model.list.Apply(message.seq, message.tickets, message.err) {
			return model, nil
		}
		model.clampCursor()
		if message.err != nil {
			return model, model.failOrBanner("loading tickets", message.err)
		}
		model.errorBanner = ""
		return model, nil

	case snapshotLoadedMsg:
		if message.err != nil {
			// Filter options and analytics degrade quietly; the
			// ticket list is the primary surface.
			model.logger.Warn("loading snapshot", "error", message.err)
			if deskapi.IsUnauthorized(message.err) {
				model.authFailed = true
				return model, tea.Quit
			}
			return model, nil
		}
		model.options = ticketflow.DiscoverOptions(message.tickets)
		model.analytics.SetTickets(message.tickets)
		return model, nil

	case replySentMsg:
		model.sending = false
		if message.err != nil {
			return model, model.failOrBanner("sending reply", message.err)
		}
		session := model.detail.Session()
		if session != nil && session.Ticket().ID == message.id {
			session.MarkSent()
			model.list.Replace(session.Ticket())
		} else {
			// The pane moved on while the send was in flight. The
			// mail left regardless, so the ticket still closes —
			// even over a revert the abandon already persisted.
			model.markRowClosed(message.id)
		}
		model.notice = fmt.Sprintf("Reply for #%d sent", message.id)
		model.noticeLevel = slog.LevelInfo
		// Persist the close the send implies.
		return model, tea.Batch(model.saveStatus(message.id, ticket.StatusClosed), model.fadeNotice())

	case statusSavedMsg:
		if message.err != nil {
			if deskapi.IsNotFound(message.err) {
				// Older backends have no status endpoint; keep the
				// local state and note it quietly.
				model.logger.Info("status endpoint missing, keeping local state",
					"ticket", message.id, "status", message.status)
				return model, nil
			}
			return model, model.failOrBanner("saving status", message.err)
		}
		return model, nil

	case createdMsg:
		model.sending = false
		if message.err != nil {
			return model, model.failOrBanner("creating ticket", message.err)
		}
		model.createForm = nil
		model.focusRegion = FocusList
		model.notice = fmt.Sprintf("Ticket #%d created", message.record.ID)
		model.noticeLevel = slog.LevelInfo
		// Refetch so the new ticket shows up under the current sort.
		return model, tea.Batch(model.fetchPage(), model.fetchSnapshot(), model.fadeNotice())

	case exportDoneMsg:
		if message.err != nil {
			return model, model.failOrBanner("exporting", message.err)
		}
		model.notice = "Exported to " + message.path
		model.noticeLevel = slog.LevelInfo
		return model, model.fadeNotice()

	case searchDebounceMsg:
		if message.generation != model.searchGeneration || !model.list.Dirty() {
			return model, nil
		}
		return model, model.fetchPage()

	case noticeFadeMsg:
		model.notice = ""
		return model, nil

	case logRecordMsg:
		model.notice = message.Summary
		model.noticeLevel = message.Level
		return model, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{}
		})

	case logRecordFadeMsg:
		model.notice = ""
		return model, nil

	case tea.KeyMsg:
		return model.handleKey(message)
	}

	return model, nil
}

// handleKey routes a key press by focus region.
func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits, regardless of focus.
	if message.Type == tea.KeyCtrlC {
		return model, tea.Quit
	}

	switch model.focusRegion {
	case FocusSearch:
		return model.handleSearchKey(message)
	case FocusDate:
		return model.handleDateKey(message)
	case FocusDropdown:
		return model.handleDropdownKey(message)
	case FocusCreate:
		return model.handleCreateKey(message)
	case FocusDetail:
		return model.handleDetailKey(message)
	}
	return model.handleListKey(message)
}

// handleSearchKey edits the name search input. Every change bumps the
// debounce generation; the fetch fires when the input settles.
func (model Model) handleSearchKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEscape:
		model.search.Clear()
		model.focusRegion = model.priorFocus
		changed := model.list.Query().FullName != ""
		model.list.SetSearch("")
		if changed {
			return model, model.fetchPage()
		}
		return model, nil

	case tea.KeyEnter:
		model.search.Active = false
		model.focusRegion = model.priorFocus
		model.list.SetSearch(model.search.Input)
		if model.list.Dirty() {
			return model, model.fetchPage()
		}
		return model, nil

	case tea.KeyBackspace:
		if model.search.HandleBackspace() {
			model.list.SetSearch(model.search.Input)
			model.searchGeneration++
			return model, model.scheduleSearchDebounce()
		}
		return model, nil

	case tea.KeyRunes, tea.KeySpace:
		for _, character := range message.Runes {
			model.search.HandleRune(character)
		}
		model.list.SetSearch(model.search.Input)
		model.searchGeneration++
		return model, model.scheduleSearchDebounce()
	}
	return model, nil
}

// handleDateKey edits one date bound. Enter applies, escape cancels.
func (model Model) handleDateKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEscape:
		model.focusRegion = model.priorFocus
		return model, nil

	case tea.KeyEnter:
		model.focusRegion = model.priorFocus
		value := strings.TrimSpace(model.dateEditor.Value())
		if value != "" {
			if _, err := time.Parse("2006-01-02", value); err != nil {
				model.errorBanner = "date must be YYYY-MM-DD"
				return model, nil
			}
		}
		query := model.list.Query()
		if model.dateEditingTo {
			model.list.SetDateRange(query.DateFrom, value)
		} else {
			model.list.SetDateRange(value, query.DateTo)
		}
		if model.list.Dirty() {
			return model, model.fetchPage()
		}
		return model, nil
	}
	model.dateEditor.Update(message)
	return model, nil
}

// handleDropdownKey routes input while a dropdown overlay is open.
func (model Model) handleDropdownKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	dropdown := model.activeDropdown
	if dropdown == nil {
		model.focusRegion = model.priorFocus
		return model, nil
	}

	switch {
	case message.Type == tea.KeyEscape:
		model.activeDropdown = nil
		model.focusRegion = model.priorFocus
		return model, nil

	case key.Matches(message, model.keys.Up):
		dropdown.MoveUp()
		return model, nil

	case key.Matches(message, model.keys.Down):
		dropdown.MoveDown()
		return model, nil

	case message.Type == tea.KeyEnter:
		selected := dropdown.Selected()
		field := dropdown.Field
		model.activeDropdown = nil
		model.focusRegion = model.priorFocus
		switch field {
		case "emotion":
			model.list.SetEmotion(selected.Value)
		case "device":
			model.list.SetDeviceType(selected.Value)
		case "status":
			return model, model.applyStatusChoice(ticket.ParseStatus(selected.Value))
		}
		if model.list.Dirty() {
			return model, model.fetchPage()
		}
		return model, nil
	}
	return model, nil
}

// applyStatusChoice records an operator-picked status on the selected
// ticket and persists it.
func (model *Model) applyStatusChoice(status ticket.Status) tea.Cmd {
	session := model.detail.Session()
	if session != nil {
		session.SetStatus(status)
		model.list.Replace(session.Ticket())
		return model.saveStatus(session.Ticket().ID, status)
	}
	selected, ok := model.selectedTicket()
	if !ok {
		return nil
	}
	selected.Status = status
	model.list.Replace(selected)
	return model.saveStatus(selected.ID, status)
}

// handleCreateKey routes input while the new ticket form is open.
func (model Model) handleCreateKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEscape:
		model.createForm = nil
		model.focusRegion = FocusList
		return model, nil

	case tea.KeyCtrlD:
		if model.sending {
			return model, nil
		}
		draft, err := model.createForm.Draft(model.now())
		if err != nil {
			// The form shows the validation message inline.
			return model, nil
		}
		model.sending = true
		return model, model.createTicket(draft)
	}
	model.createForm.HandleKey(message)
	return model, nil
}

// handleDetailKey routes input while the reply editor has focus.
func (model Model) handleDetailKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyEscape:
		if previous := model.detail.Abandon(); previous != nil {
			if cmd := model.persistStatusChange(previous); cmd != nil {
				model.focusRegion = FocusList
				return model, cmd
			}
		}
		model.focusRegion = FocusList
		return model, nil

	case message.Type == tea.KeyTab:
		model.detail.CycleField()
		return model, nil

	case message.Type == tea.KeyCtrlD:
		if model.sending {
			return model, nil
		}
		reply, err := model.detail.PrepareSend()
		if err != nil {
			model.errorBanner = strings.TrimPrefix(err.Error(), "ticketflow: ")
			return model, nil
		}
		model.errorBanner = ""
		model.sending = true
		return model, model.sendReply(model.detail.Session().Ticket().ID, reply)

	case key.Matches(message, model.keys.StatusChange):
		// Plain "s" must keep typing into the editors; only open the
		// status dropdown when the session is read-only.
		if model.detail.Session() != nil && !model.detail.Session().ReadOnly() {
			break
		}
		return model.openStatusDropdown()
	}

	model.detail.HandleKey(message)
	return model, nil
}

// persistStatusChange saves a session's status transition when it
// actually changed, and refreshes the row either way.
func (model *Model) persistStatusChange(session *ticketflow.ReplySession) tea.Cmd {
	model.list.Replace(session.Ticket())
	status, changed := session.StatusChange()
	if !changed && !session.Reverted() {
		return nil
	}
	return model.saveStatus(session.Ticket().ID, status)
}

// handleListKey routes input while the ticket list has focus. This is
// also where tab switching and the global actions live.
func (model Model) handleListKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := model.keys
	switch {
	case key.Matches(message, keys.Quit):
		return model, tea.Quit

	case key.Matches(message, keys.TabTickets):
		model.activeTab = TabTickets
		return model, nil

	case key.Matches(message, keys.TabAnalytics):
		model.activeTab = TabAnalytics
		if !model.analytics.Loaded() {
			return model, model.fetchSnapshot()
		}
		return model, nil
	}

	if model.activeTab == TabAnalytics {
		// Analytics is read-only; only refresh applies.
		if key.Matches(message, keys.Refresh) {
			return model, model.fetchSnapshot()
		}
		return model, nil
	}

	switch {
	case key.Matches(message, keys.Up):
		if model.cursor > 0 {
			model.cursor--
			model.scrollIntoView()
		}
		return model, nil

	case key.Matches(message, keys.Down):
		if model.cursor < len(model.list.Tickets())-1 {
			model.cursor++
			model.scrollIntoView()
		}
		return model, nil

	case key.Matches(message, keys.Home):
		model.cursor = 0
		model.scrollIntoView()
		return model, nil

	case key.Matches(message, keys.End):
		if count := len(model.list.Tickets()); count > 0 {
			model.cursor = count - 1
		}
		model.scrollIntoView()
		return model, nil

	case key.Matches(message, keys.PageUp):
		model.cursor -= model.listHeight()
		if model.cursor < 0 {
			model.cursor = 0
		}
		model.scrollIntoView()
		return model, nil

	case key.Matches(message, keys.PageDown):
		model.cursor += model.listHeight()
		if count := len(model.list.Tickets()); model.cursor >= count {
			model.cursor = count - 1
		}
		if model.cursor < 0 {
			model.cursor = 0
		}
		model.scrollIntoView()
		return model, nil

	case key.Matches(message, keys.NextPage):
		if model.list.NextPage() {
			model.cursor = 0
			model.scrollOffset = 0
			return model, model.fetchPage()
		}
		return model, nil

	case key.Matches(message, keys.PrevPage):
		if model.list.PrevPage() {
			model.cursor = 0
			model.scrollOffset = 0
			return model, model.fetchPage()
		}
		return model, nil

	case key.Matches(message, keys.SearchActivate):
		model.priorFocus = FocusList
		model.focusRegion = FocusSearch
		model.search.Active = true
		return model, nil

	case key.Matches(message, keys.EmotionFilter):
		return model.openFilterDropdown("emotion", model.options.Emotions, model.list.Query().Emotion)

	case key.Matches(message, keys.DeviceFilter):
		return model.openFilterDropdown("device", model.options.DeviceTypes, model.list.Query().DeviceType)

	case key.Matches(message, keys.DateFrom):
		model.priorFocus = FocusList
		model.focusRegion = FocusDate
		model.dateEditingTo = false
		model.dateEditor = tui.NewLineEditor(model.list.Query().DateFrom)
		return model, nil

	case key.Matches(message, keys.DateTo):
		model.priorFocus = FocusList
		model.focusRegion = FocusDate
		model.dateEditingTo = true
		model.dateEditor = tui.NewLineEditor(model.list.Query().DateTo)
		return model, nil

	case key.Matches(message, keys.ClearFilters):
		model.search.Clear()
		model.list.ClearFilters()
		if model.list.Dirty() {
			return model, model.fetchPage()
		}
		return model, nil

	case key.Matches(message, keys.OpenReply), key.Matches(message, keys.FocusToggle):
		selected, ok := model.selectedTicket()
		if !ok {
			return model, nil
		}
		var commands []tea.Cmd
		if previous := model.detail.Open(selected); previous != nil {
			if cmd := model.persistStatusChange(previous); cmd != nil {
				commands = append(commands, cmd)
			}
		}
		session := model.detail.Session()
		model.list.Replace(session.Ticket())
		if cmd := model.persistStatusChange(session); cmd != nil {
			commands = append(commands, cmd)
		}
		model.focusRegion = FocusDetail
		return model, tea.Batch(commands...)

	case key.Matches(message, keys.StatusChange):
		return model.openStatusDropdown()

	case key.Matches(message, keys.Create):
		model.createForm = NewCreateForm(model.theme)
		model.layout()
		model.focusRegion = FocusCreate
		return model, nil

	case key.Matches(message, keys.ExportCSV):
		return model, model.exportTickets(deskapi.ExportCSV)

	case key.Matches(message, keys.ExportExcel):
		return model, model.exportTickets(deskapi.ExportExcel)

	case key.Matches(message, keys.Refresh):
		// Refresh doubles as retry for the error banner.
		model.errorBanner = ""
		return model, tea.Batch(model.fetchPage(), model.fetchSnapshot())
	}

	return model, nil
}

// openFilterDropdown opens an emotion or device dropdown with an
// "Any" entry first and the discovered values after it.
func (model Model) openFilterDropdown(field string, values []string, current string) (tea.Model, tea.Cmd) {
	options := []tui.DropdownOption{{Label: "Any", Value: ""}}
	cursor := 0
	for index, value := range values {
		options = append(options, tui.DropdownOption{Label: value, Value: value})
		if value == current {
			cursor = index + 1
		}
	}
	model.priorFocus = model.focusRegion
	model.activeDropdown = &tui.DropdownOverlay{
		Options: options,
		Cursor:  cursor,
		AnchorX: 2,
		AnchorY: 2,
		Field:   field,
	}
	model.focusRegion = FocusDropdown
	return model, nil
}

// openStatusDropdown opens the lifecycle state dropdown for the
// selected ticket.
func (model Model) openStatusDropdown() (tea.Model, tea.Cmd) {
	current, ok := model.selectedTicket()
	if session := model.detail.Session(); session != nil {
		current, ok = session.Ticket(), true
	}
	if !ok {
		return model, nil
	}
	statuses := []ticket.Status{ticket.StatusOpen, ticket.StatusInProgress, ticket.StatusClosed}
	options := make([]tui.DropdownOption, len(statuses))
	cursor := 0
	for index, status := range statuses {
		options[index] = tui.DropdownOption{Label: status.Label(), Value: string(status)}
		if status == current.Status {
			cursor = index
		}
	}
	model.priorFocus = model.focusRegion
	model.activeDropdown = &tui.DropdownOverlay{
		Options: options,
		Cursor:  cursor,
		AnchorX: 2,
		AnchorY: 2,
		Field:   "status",
	}
	model.focusRegion = FocusDropdown
	return model, nil
}

// selectedTicket returns the ticket under the list cursor.
func (model Model) selectedTicket() (ticket.Ticket, bool) {
	tickets := model.list.Tickets()
	if model.cursor < 0 || model.cursor >= len(tickets) {
		return ticket.Ticket{}, false
	}
	return tickets[model.cursor], true
}

// clampCursor keeps the cursor inside the current page after a fetch.
func (model *Model) clampCursor() {
	count := len(model.list.Tickets())
	if count == 0 {
		model.cursor = 0
		model.scrollOffset = 0
		return
	}
	if model.cursor >= count {
		model.cursor = count - 1
	}
	model.scrollIntoView()
}

// listHeight returns the number of visible list rows.
func (model Model) listHeight() int {
	// Chrome: tab bar, column header, filter bar, status bar, and
	// the error banner when present.
	height := model.height - 4
	if model.errorBanner != "" {
		height--
	}
	if height < 1 {
		height = 1
	}
	return height
}

// scrollIntoView adjusts the scroll offset so the cursor stays
// visible.
func (model *Model) scrollIntoView() {
	visible := model.listHeight()
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+visible {
		model.scrollOffset = model.cursor - visible + 1
	}
	if model.scrollOffset < 0 {
		model.scrollOffset = 0
	}
}

// layout recomputes pane sizes from the terminal dimensions.
func (model *Model) layout() {
	if !model.ready {
		return
	}
	contentHeight := model.listHeight()
	detailWidth := model.width - model.width/2
	model.detail.SetSize(detailWidth, contentHeight+1)
	model.analytics.SetSize(model.width, contentHeight+1)
	if model.createForm != nil {
		model.createForm.SetSize(detailWidth, contentHeight+1)
	}
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, model.renderTabBar())

	if model.activeTab == TabAnalytics {
		body := model.analytics.View()
		sections = append(sections, model.padBody(body, model.listHeight()+2))
	} else {
		sections = append(sections, model.renderFilterBar())
		sections = append(sections, model.renderSplitPane())
	}

	if model.errorBanner != "" {
		bannerStyle := lipgloss.NewStyle().
			Foreground(model.theme.ErrorForeground).
			Background(model.theme.ErrorBackground).
			Width(model.width).
			MaxWidth(model.width)
		sections = append(sections, bannerStyle.Render(" "+model.errorBanner+"  (R retry)"))
	}

	sections = append(sections, model.renderStatusBar())

	view := strings.Join(sections, "\n")
	if model.activeDropdown != nil {
		view = tui.SpliceOverlay(view, model.activeDropdown.Render(model.theme),
			model.activeDropdown.AnchorX, model.activeDropdown.AnchorY)
	}
	return view
}

// renderTabBar renders the top line with the two tabs.
func (model Model) renderTabBar() string {
	activeStyle := lipgloss.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Bold(true)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(model.theme.FaintText)

	tickets := " Tickets [1] "
	analytics := " Analytics [2] "
	if model.activeTab == TabTickets {
		tickets = activeStyle.Render(tickets)
		analytics = inactiveStyle.Render(analytics)
	} else {
		tickets = inactiveStyle.Render(tickets)
		analytics = activeStyle.Render(analytics)
	}
	bar := tickets + analytics
	return lipgloss.NewStyle().Width(model.width).MaxWidth(model.width).Render(bar)
}

// renderFilterBar renders the line showing the active filters.
func (model Model) renderFilterBar() string {
	if model.focusRegion == FocusSearch || model.search.Input != "" {
		return model.search.View(model.theme, model.width)
	}
	if model.focusRegion == FocusDate {
		label := " date from: "
		if model.dateEditingTo {
			label = " date to: "
		}
		return lipgloss.NewStyle().Width(model.width).MaxWidth(model.width).Render(
			label + model.dateEditor.Render(model.theme, true))
	}

	query := model.list.Query()
	var parts []string
	if query.Emotion != "" {
		parts = append(parts, "emotion: "+query.Emotion)
	}
	if query.DeviceType != "" {
		parts = append(parts, "device: "+query.DeviceType)
	}
	if query.DateFrom != "" || query.DateTo != "" {
		parts = append(parts, "dates: "+query.DateFrom+".."+query.DateTo)
	}
	style := lipgloss.NewStyle().
		Foreground(model.theme.FaintText).
		Width(model.width).
		MaxWidth(model.width)
	if len(parts) == 0 {
		return style.Render(" / search  e emotion  d device  f/t dates")
	}
	return style.Render(" " + strings.Join(parts, "  ·  ") + "  (C clears)")
}

// renderSplitPane renders the list and detail panes side by side.
func (model Model) renderSplitPane() string {
	listWidth := model.width / 2
	contentHeight := model.listHeight()

	renderer := NewListRenderer(model.theme, listWidth)
	lines := []string{renderer.RenderHeader()}

	tickets := model.list.Tickets()
	switch {
	case model.list.Loading() && len(tickets) == 0:
		lines = append(lines, lipgloss.NewStyle().
			Foreground(model.theme.FaintText).Render(" Loading tickets…"))
	case model.list.Loaded() && len(tickets) == 0:
		lines = append(lines, lipgloss.NewStyle().
			Foreground(model.theme.FaintText).Render(" No tickets match the current filters."))
	default:
		end := model.scrollOffset + contentHeight
		if end > len(tickets) {
			end = len(tickets)
		}
		for index := model.scrollOffset; index < end; index++ {
			lines = append(lines, renderer.RenderRow(tickets[index], index == model.cursor))
		}
	}
	for len(lines) < contentHeight+1 {
		lines = append(lines, "")
	}
	listPane := strings.Join(lines[:contentHeight+1], "\n")

	var rightPane string
	if model.createForm != nil {
		rightPane = model.createForm.View(model.focusRegion == FocusCreate)
	} else {
		rightPane = model.detail.View(model.focusRegion == FocusDetail)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, rightPane)
}

// padBody pads or trims a body to exactly the given line count.
func (model Model) padBody(body string, height int) string {
	lines := strings.Split(body, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// renderStatusBar renders the bottom line: transient notices when
// present, otherwise pagination state and key help.
func (model Model) renderStatusBar() string {
	style := lipgloss.NewStyle().
		Foreground(model.theme.HelpText).
		Width(model.width).
		MaxWidth(model.width)

	if model.notice != "" {
		noticeStyle := style.Foreground(model.theme.NormalText)
		if model.noticeLevel >= slog.LevelWarn {
			noticeStyle = style.Foreground(model.theme.ErrorForeground)
		}
		return noticeStyle.Render(" " + model.notice)
	}

	if model.activeTab == TabAnalytics {
		return style.Render(" 1 tickets  R refresh  q quit")
	}

	query := model.list.Query()
	page := fmt.Sprintf(" page %d", query.Page)
	if model.list.Loading() {
		page += " ·"
	}
	nav := ""
	if model.list.CanPrev() {
		nav += "  p prev"
	}
	if model.list.CanNext() {
		nav += "  n next"
	}
	return style.Render(page + nav + "  ·  r reply  s status  c new  x/X export  R refresh  q quit")
}
