// Package ui implements the terminal user interface using bubbletea.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"classdesk/internal/anim"
	"classdesk/internal/log"
	"classdesk/internal/model"
	"classdesk/internal/notify"
	"classdesk/internal/state"
	"classdesk/internal/ui/components"
	"classdesk/internal/ui/theme"
)

// DefaultRequestTimeout bounds each API call made from the UI.
const DefaultRequestTimeout = 15 * time.Second

// StudentService is the student API as used by the UI.
type StudentService interface {
	BaseURL() string
	List(ctx context.Context) ([]model.Student, error)
	Search(ctx context.Context, query, class string) ([]model.Student, error)
	Create(ctx context.Context, in model.StudentInput) (model.Student, error)
	Update(ctx context.Context, id int64, in model.StudentInput) (model.Student, error)
	Delete(ctx context.Context, id int64) error
}

// Options holds the Model's dependencies.
type Options struct {
	Service  StudentService
	Themes   *theme.Manager
	Surface  *theme.Surface
	Notifier *notify.Manager
	Toasts   *notify.Board
	Animator *anim.Manager
	Prefs    theme.Preferences
	Logger   *log.Logger

	// LogSource feeds the logs panel; nil disables it.
	LogSource components.EntrySource

	RefreshInterval time.Duration
	RequestTimeout  time.Duration

	// Clipboard writes text to the system clipboard. Defaults to atotto/clipboard.
	Clipboard func(string) error
}

// Model is the main bubbletea model.
type Model struct {
	// Dependencies
	service   StudentService
	themes    *theme.Manager
	surface   *theme.Surface
	notifier  *notify.Manager
	board     *notify.Board
	animator  *anim.Manager
	prefs     theme.Preferences
	logger    *log.Logger
	clipboard func(string) error
	timeout   time.Duration

	// post delivers messages from timer goroutines; nil until Attach.
	post func(tea.Msg)

	// State
	state *state.State

	// UI components
	header           *components.Header
	footer           *components.Footer
	table            *components.StudentTable
	details          *components.Details
	logs             *components.Logs
	toasts           *components.Toasts
	form             *components.StudentForm
	confirm          *components.ConfirmDialog
	picker           *components.ThemePicker
	commandPalette   *components.CommandPalette
	refreshIndicator *components.RefreshIndicator
	help             help.Model

	// Filter input
	filterInput textinput.Model
	filtering   bool

	// Animation bookkeeping
	knownIDs    map[int64]bool
	highlightID int64
	spinning    bool
	saving      bool

	// Key bindings
	keys KeyMap

	// Current styles, rebuilt from the surface after each flush
	styles theme.Styles

	// Dimensions
	width  int
	height int
	ready  bool
}

// New creates a new Model.
func New(opts Options) *Model {
	ti := textinput.New()
	ti.Placeholder = "Type to filter by name or class..."
	ti.CharLimit = 64

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	surface := opts.Surface
	if surface == nil {
		surface = theme.NewSurface()
	}
	board := opts.Toasts
	if board == nil {
		board = notify.NewBoard()
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.NewManager(board, nil, logger)
	}
	animator := opts.Animator
	if animator == nil {
		animator = anim.NewManager(nil)
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = copyToClipboard
	}

	m := &Model{
		service:          opts.Service,
		themes:           opts.Themes,
		surface:          surface,
		notifier:         notifier,
		board:            board,
		animator:         animator,
		prefs:            opts.Prefs,
		logger:           logger.Component("ui"),
		clipboard:        clip,
		timeout:          timeout,
		state:            state.New(),
		header:           components.NewHeader(),
		footer:           components.NewFooter(),
		table:            components.NewStudentTable(),
		details:          components.NewDetails(),
		logs:             components.NewLogs(opts.LogSource),
		toasts:           components.NewToasts(board),
		form:             components.NewStudentForm(),
		confirm:          components.NewConfirmDialog(),
		picker:           components.NewThemePicker(),
		commandPalette:   components.NewCommandPalette(),
		refreshIndicator: components.NewRefreshIndicator(),
		help:             help.New(),
		filterInput:      ti,
		keys:             DefaultKeyMap(),
	}

	m.refreshIndicator.SetInterval(opts.RefreshInterval)
	if opts.Service != nil {
		m.state.APIBase = opts.Service.BaseURL()
	}
	m.state.DarkMode = surface.HasClass(theme.DarkModeClass)
	m.applyStyles()

	return m
}

// Attach wires surface, toast and animation change notifications to send.
// send must not block the caller: the surface notifies from inside Update.
func (m *Model) Attach(send func(tea.Msg)) {
	m.post = send
	m.surface.OnChange(func() {
		send(surfaceChangedMsg{revision: m.surface.Revision()})
	})
	m.board.OnChange(func() {
		send(toastsChangedMsg{})
	})
}

// State exposes the application state.
func (m *Model) State() *state.State {
	return m.state
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadStudents(),
		m.refreshIndicator.TickCmd(),
	)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.updateComponentSizes()

	case studentsLoadedMsg:
		cmds = append(cmds, m.handleStudentsLoaded(msg))

	case studentSavedMsg:
		cmds = append(cmds, m.handleStudentSaved(msg))

	case studentDeletedMsg:
		cmds = append(cmds, m.handleStudentDeleted(msg))

	case clipboardMsg:
		if msg.err != nil {
			m.notifier.Error("Copy failed: " + msg.err.Error())
		} else {
			m.notifier.Show("Copied row to clipboard", notify.KindSuccess)
		}

	case preferenceSavedMsg:
		if msg.err != nil {
			m.logger.Warn("Failed to save %s: %v", msg.key, msg.err)
		}

	case surfaceChangedMsg:
		m.applyStyles()

	case toastsChangedMsg:
		m.updateComponentSizes()

	case effectChangedMsg:
		m.pruneEffect(msg.rowID)

	case components.SpinnerTickMsg:
		if m.state.StudentsLoading {
			m.table.Spinner().Tick()
			m.refreshIndicator.Tick()
			cmds = append(cmds, m.table.Spinner().TickCmd())
		} else {
			m.spinning = false
		}

	case components.AutoRefreshTickMsg:
		if m.state.AutoRefresh && !m.state.StudentsLoading && m.state.View == state.ViewTable {
			m.logger.Debug("auto-refresh")
			cmds = append(cmds, m.loadStudents())
		}
		cmds = append(cmds, m.refreshIndicator.TickCmd())
	}

	return m, tea.Batch(cmds...)
}

// send delivers msg if the model is attached to a program.
func (m *Model) send(msg tea.Msg) {
	if m.post != nil {
		m.post(msg)
	}
}
