package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/traindesk/traindesk/internal/backoffice"
	"github.com/traindesk/traindesk/internal/core/catalog"
	"github.com/traindesk/traindesk/internal/core/config"
)

// UIState represents the current state of the TUI.
type UIState int

const (
	stateLoading UIState = iota
	stateNormal
	stateConfirming
	stateCreating
)

// ViewType identifies which entity table is shown.
type ViewType int

const (
	ViewBranches ViewType = iota
	ViewCourses
	ViewInstructors
	ViewBatches
	viewCount
)

func (v ViewType) String() string {
	switch v {
	case ViewBranches:
		return "Branches"
	case ViewCourses:
		return "Courses"
	case ViewInstructors:
		return "Instructors"
	case ViewBatches:
		return "Batches"
	default:
		return "Unknown"
	}
}

// Key constants for event handling.
const (
	keyEnter = "enter"
	keyCtrlC = "ctrl+c"
)

// loadedMsg is sent when the initial or requested refresh completes.
type loadedMsg struct {
	err error
}

// mutationDoneMsg is sent when a mutation settles. The user-visible
// outcome arrives separately through the notifier.
type mutationDoneMsg struct{}

// Model is the main Bubble Tea model for the dashboard.
type Model struct {
	cfg      *config.Config
	service  *backoffice.Service
	notifier *Notifier
	handler  *KeybindingHandler

	state      UIState
	activeView ViewType
	tables     [viewCount]table.Model
	pending    Action
	form       *createForm
	spinner    spinner.Model
	help       help.Model
	keys       []key.Binding

	toastText string
	toastOK   bool

	width    int
	height   int
	quitting bool
}

// New creates the dashboard model and wires the service collections to
// its redraw events.
func New(service *backoffice.Service, cfg *config.Config, notifier *Notifier) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorBlue)

	handler := NewKeybindingHandler(cfg.Keybindings)

	keys := []key.Binding{
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
	}
	keys = append(keys, handler.KeyBindings()...)
	keys = append(keys, key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")))

	h := help.New()
	h.Styles.ShortKey = helpStyle
	h.Styles.ShortDesc = helpStyle
	h.Styles.ShortSeparator = helpStyle

	m := Model{
		cfg:      cfg,
		service:  service,
		notifier: notifier,
		handler:  handler,
		state:    stateLoading,
		spinner:  s,
		help:     h,
		keys:     keys,
	}

	for v := ViewType(0); v < viewCount; v++ {
		m.tables[v] = newTable(columnsFor(v))
	}

	service.Branches.OnChange(func([]catalog.Branch) { notifier.CollectionChanged() })
	service.Courses.OnChange(func([]catalog.Course) { notifier.CollectionChanged() })
	service.Instructors.OnChange(func([]catalog.Instructor) { notifier.CollectionChanged() })
	service.Batches.OnChange(func([]catalog.Batch) { notifier.CollectionChanged() })

	return m
}

func newTable(cols []table.Column) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	st := table.DefaultStyles()
	st.Header = tableHeaderStyle
	st.Selected = tableSelectedStyle
	t.SetStyles(st)
	return t
}

func columnsFor(v ViewType) []table.Column {
	switch v {
	case ViewBranches:
		return []table.Column{
			{Title: "ID", Width: 24},
			{Title: "NAME", Width: 20},
			{Title: "CODE", Width: 8},
			{Title: "COUNTRY", Width: 12},
		}
	case ViewCourses:
		return []table.Column{
			{Title: "ID", Width: 24},
			{Title: "NAME", Width: 28},
			{Title: "DURATION", Width: 10},
		}
	case ViewInstructors:
		return []table.Column{
			{Title: "ID", Width: 24},
			{Title: "NAME", Width: 20},
			{Title: "EMAIL", Width: 24},
			{Title: "PHONE", Width: 14},
		}
	case ViewBatches:
		return []table.Column{
			{Title: "ID", Width: 24},
			{Title: "CODE", Width: 10},
			{Title: "FROM", Width: 12},
			{Title: "TO", Width: 12},
		}
	default:
		return nil
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadAll(), m.spinner.Tick, m.notifier.listen())
}

// loadAll returns a command that refreshes every collection.
func (m Model) loadAll() tea.Cmd {
	return func() tea.Msg {
		err := m.service.RefreshAll(context.Background())
		return loadedMsg{err: err}
	}
}

// executeAction returns a command that executes the given action.
func (m Model) executeAction(action Action) tea.Cmd {
	view := m.activeView
	return func() tea.Msg {
		ctx := context.Background()
		switch view {
		case ViewBranches:
			_ = m.service.DeleteBranch(ctx, action.RecordID)
		case ViewCourses:
			_ = m.service.DeleteCourse(ctx, action.RecordID)
		case ViewInstructors:
			_ = m.service.DeleteInstructor(ctx, action.RecordID)
		case ViewBatches:
			_ = m.service.DeleteBatch(ctx, action.RecordID)
		}
		// Failures roll the collection back and surface via the notifier.
		return mutationDoneMsg{}
	}
}

// submitForm returns a command that runs the completed create form.
func (m Model) submitForm(f *createForm) tea.Cmd {
	return func() tea.Msg {
		_ = f.submit(context.Background(), m.service)
		return mutationDoneMsg{}
	}
}

// selectedID returns the id column of the selected row, if any.
func (m Model) selectedID() string {
	row := m.tables[m.activeView].SelectedRow()
	if len(row) == 0 {
		return ""
	}
	return row[0]
}

// syncRows re-reads every collection into its table.
func (m *Model) syncRows() {
	branches := m.service.Branches.Items()
	rows := make([]table.Row, len(branches))
	for i, b := range branches {
		rows[i] = table.Row{b.ID, b.BranchName, b.BranchCode, b.Country}
	}
	m.tables[ViewBranches].SetRows(rows)

	courses := m.service.Courses.Items()
	rows = make([]table.Row, len(courses))
	for i, c := range courses {
		rows[i] = table.Row{c.ID, c.Name, strconv.Itoa(c.Duration) + "d"}
	}
	m.tables[ViewCourses].SetRows(rows)

	instructors := m.service.Instructors.Items()
	rows = make([]table.Row, len(instructors))
	for i, ins := range instructors {
		rows[i] = table.Row{ins.ID, ins.Name, ins.Email, ins.Phone}
	}
	m.tables[ViewInstructors].SetRows(rows)

	batches := m.service.Batches.Items()
	rows = make([]table.Row, len(batches))
	for i, b := range batches {
		rows[i] = table.Row{b.ID, b.Code, b.FromDate, b.ToDate}
	}
	m.tables[ViewBatches].SetRows(rows)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Banner (4) + cards (3) + tab bar (1) + status (1) + help (1).
		contentHeight := msg.Height - 10
		if contentHeight < 3 {
			contentHeight = 3
		}
		for v := ViewType(0); v < viewCount; v++ {
			m.tables[v].SetHeight(contentHeight)
		}
		return m, nil

	case loadedMsg:
		m.state = stateNormal
		if msg.err != nil {
			m.toastText = fmt.Sprintf("Load failed: %v", msg.err)
			m.toastOK = false
			return m, nil
		}
		m.syncRows()
		return m, nil

	case collectionChangedMsg:
		m.syncRows()
		return m, m.notifier.listen()

	case toastMsg:
		m.toastText = msg.text
		m.toastOK = msg.ok
		return m, m.notifier.listen()

	case mutationDoneMsg:
		return m, nil

	case spinner.TickMsg:
		if m.state != stateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.state == stateCreating && m.form != nil {
		return m.updateForm(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == keyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case stateConfirming:
		switch key {
		case "y", keyEnter:
			m.state = stateNormal
			m.toastText = ""
			return m, m.executeAction(m.pending)
		case "n", "esc":
			m.state = stateNormal
			m.toastText = ""
			return m, nil
		}
		return m, nil

	case stateCreating:
		if key == "esc" {
			m.state = stateNormal
			m.form = nil
			return m, nil
		}
		return m.updateForm(msg)

	case stateLoading:
		return m, nil
	}

	switch key {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "tab":
		m.activeView = (m.activeView + 1) % viewCount
		return m, nil
	case "shift+tab":
		m.activeView = (m.activeView + viewCount - 1) % viewCount
		return m, nil
	}

	if action, ok := m.handler.Resolve(key, m.selectedID()); ok {
		switch action.Type {
		case ActionTypeReload:
			m.state = stateLoading
			return m, tea.Batch(m.loadAll(), m.spinner.Tick)
		case ActionTypeNew:
			form := newCreateForm(m.activeView, m.service)
			if form == nil {
				return m, nil
			}
			m.form = form
			m.state = stateCreating
			return m, form.form.Init()
		case ActionTypeDelete:
			if action.RecordID == "" {
				return m, nil
			}
			if action.NeedsConfirm() {
				m.pending = action
				m.state = stateConfirming
				return m, nil
			}
			return m, m.executeAction(action)
		}
	}

	var cmd tea.Cmd
	m.tables[m.activeView], cmd = m.tables[m.activeView].Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form.form = f

		if f.State == huh.StateCompleted {
			submit := m.submitForm(m.form)
			m.form = nil
			m.state = stateNormal
			return m, submit
		}
		if f.State == huh.StateAborted {
			m.form = nil
			m.state = stateNormal
			return m, nil
		}
	}
	return m, cmd
}
