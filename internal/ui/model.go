package ui

import (
	"fmt"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zSuperx/muffin/internal/engine"
	"github.com/zSuperx/muffin/internal/preset"
	"github.com/zSuperx/muffin/internal/theme"
	"github.com/zSuperx/muffin/internal/tmux"
	uistate "github.com/zSuperx/muffin/internal/ui/state"
)

// Mode is the controller state. Browse treats single keys as commands;
// Filtering routes printable keys into the filter; the form modes take
// over input entirely until submitted or cancelled.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeFiltering
	ModeSessionForm
	ModeKillConfirm
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Config carries the startup state the model needs.
type Config struct {
	SocketPath   string
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
	ExitOnSwitch bool
	Presets      []preset.Record
	Warnings     []preset.Warning
	Snapshot     tmux.SessionSnapshot
}

// Model implements the Bubble Tea model for the session switcher.
type Model struct {
	engine     *engine.Engine
	presets    []preset.Record
	candidates []engine.Candidate
	list       *uistate.List

	mode         Mode
	loading      bool
	errMsg       string
	infoMsg      string
	infoExpire   time.Time
	width        int
	height       int
	fixedWidth   bool
	fixedHeight  bool
	showFooter   bool
	verbose      bool
	exitOnSwitch bool
	socketPath   string
	interrupted  bool

	sessionForm *SessionForm
	killTarget  string

	filterCursor      cursor.Model
	filterCursorDirty bool

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI over an already-fetched session snapshot.
func NewModel(cfg Config) *Model {
	m := &Model{
		engine:       engine.New(cfg.SocketPath),
		presets:      cfg.Presets,
		mode:         ModeBrowse,
		showFooter:   cfg.ShowFooter,
		verbose:      cfg.Verbose,
		exitOnSwitch: cfg.ExitOnSwitch,
		socketPath:   cfg.SocketPath,
	}
	if cfg.Width > 0 {
		m.width = cfg.Width
		m.fixedWidth = true
	}
	if cfg.Height > 0 {
		m.height = cfg.Height
		m.fixedHeight = true
	}
	m.candidates = engine.BuildCandidates(m.presets, cfg.Snapshot)
	m.list = uistate.NewList(buildItems(m.candidates))
	m.list.Cursor = 0
	m.syncViewport()
	if n := len(cfg.Warnings); n > 0 && cfg.Verbose {
		m.setInfo(fmt.Sprintf("%d preset(s) skipped, see log", n))
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// Interrupted reports whether the user quit with ctrl+c.
func (m *Model) Interrupted() bool { return m.interrupted }

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if cmd := m.filterCursor.Focus(); cmd != nil {
		return cmd
	}
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handled, cmd := m.handleActiveForm(msg); handled {
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}

	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}

	return m, m.finishUpdate(cmds)
}

func (m *Model) handleActiveForm(msg tea.Msg) (bool, tea.Cmd) {
	switch m.mode {
	case ModeSessionForm:
		return m.handleSessionForm(msg)
	case ModeKillConfirm:
		return m.handleKillConfirm(msg)
	default:
		return false, nil
	}
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):           m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):    m.handleWindowSizeMsg,
		reflect.TypeOf(confirmResultMsg{}):     m.handleConfirmResultMsg,
		reflect.TypeOf(sessionsRefreshedMsg{}): m.handleSessionsRefreshedMsg,
		reflect.TypeOf(sessionActionMsg{}):     m.handleSessionActionMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// candidateByName resolves a filtered item back to its candidate.
func (m *Model) candidateByName(name string) (engine.Candidate, bool) {
	for _, c := range m.candidates {
		if c.Name == name {
			return c, true
		}
	}
	return engine.Candidate{}, false
}

func (m *Model) currentCandidate() (engine.Candidate, bool) {
	item, ok := m.list.Current()
	if !ok {
		return engine.Candidate{}, false
	}
	return m.candidateByName(item.ID)
}

// effectiveExitOnSwitch applies a preset's override on top of the
// global setting.
func (m *Model) effectiveExitOnSwitch(c engine.Candidate) bool {
	if c.Preset != nil && c.Preset.ExitOnSwitch != nil {
		return *c.Preset.ExitOnSwitch
	}
	return m.exitOnSwitch
}

// liveSessionNames returns the names of running sessions, used by the
// forms to reject duplicates.
func (m *Model) liveSessionNames() []string {
	names := make([]string, 0, len(m.candidates))
	for _, c := range m.candidates {
		if c.Running() {
			names = append(names, c.Name)
		}
	}
	return names
}
