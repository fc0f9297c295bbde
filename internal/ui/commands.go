package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zSuperx/muffin/internal/engine"
	"github.com/zSuperx/muffin/internal/logging/events"
	"github.com/zSuperx/muffin/internal/tmux"
)

// Package seams for the tmux side effects. Tests swap these so the
// controller logic runs without a live server.
var (
	realizeCandidate = func(e *engine.Engine, c engine.Candidate) (string, error) {
		return e.Realize(c)
	}
	refreshSessions = func(e *engine.Engine) (tmux.SessionSnapshot, error) {
		return e.Refresh()
	}
	attachSession = tmux.SwitchClient
	createSession = tmux.NewSession
	renameSession = tmux.RenameSession
	killSessions  = tmux.KillSessions
)

type confirmResultMsg struct {
	name string
	exit bool
	err  error
}

type sessionsRefreshedMsg struct {
	snapshot tmux.SessionSnapshot
	err      error
}

// sessionActionMsg reports the outcome of a create/rename/kill action.
type sessionActionMsg struct {
	info string
	err  error
}

func (m *Model) confirmCmd(c engine.Candidate) tea.Cmd {
	exit := m.effectiveExitOnSwitch(c)
	socket := m.socketPath
	eng := m.engine
	return func() tea.Msg {
		name, err := realizeCandidate(eng, c)
		if err != nil {
			return confirmResultMsg{err: err}
		}
		if err := attachSession(socket, name); err != nil {
			return confirmResultMsg{err: err}
		}
		events.Session.Switch(name)
		return confirmResultMsg{name: name, exit: exit}
	}
}

func (m *Model) refreshCmd() tea.Cmd {
	eng := m.engine
	return func() tea.Msg {
		snapshot, err := refreshSessions(eng)
		return sessionsRefreshedMsg{snapshot: snapshot, err: err}
	}
}

func (m *Model) createSessionCmd(name string) tea.Cmd {
	socket := m.socketPath
	return func() tea.Msg {
		if err := createSession(socket, name); err != nil {
			return sessionActionMsg{err: err}
		}
		events.Session.Create(name)
		return sessionActionMsg{info: "Created session " + name}
	}
}

func (m *Model) renameSessionCmd(target, name string) tea.Cmd {
	socket := m.socketPath
	return func() tea.Msg {
		if err := renameSession(socket, target, name); err != nil {
			return sessionActionMsg{err: err}
		}
		events.Session.Rename(target, name)
		return sessionActionMsg{info: "Renamed " + target + " to " + name}
	}
}

func (m *Model) killSessionCmd(target string) tea.Cmd {
	socket := m.socketPath
	return func() tea.Msg {
		if err := killSessions(socket, []string{target}); err != nil {
			return sessionActionMsg{err: err}
		}
		events.Session.Kill(target)
		return sessionActionMsg{info: "Killed session " + target}
	}
}

func (m *Model) handleConfirmResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(confirmResultMsg)
	if !ok {
		return nil
	}
	m.loading = false
	if result.err != nil {
		m.errMsg = result.err.Error()
		m.forceClearInfo()
		return nil
	}
	m.errMsg = ""
	if result.exit {
		return tea.Quit
	}
	if m.verbose {
		m.setInfo("Switched to " + result.name)
	}
	m.resetFilter()
	m.mode = ModeBrowse
	return m.refreshCmd()
}

func (m *Model) handleSessionsRefreshedMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(sessionsRefreshedMsg)
	if !ok {
		return nil
	}
	m.loading = false
	if result.err != nil {
		m.errMsg = result.err.Error()
		return nil
	}
	m.errMsg = ""
	selected := ""
	if item, ok := m.list.Current(); ok {
		selected = item.ID
	}
	m.candidates = engine.BuildCandidates(m.presets, result.snapshot)
	m.list.UpdateItems(buildItems(m.candidates))
	// Keep the cursor on the same session when the list shifts.
	if idx := m.list.IndexOf(selected); idx >= 0 {
		m.list.Cursor = idx
	} else if m.list.Cursor >= len(m.list.Items) {
		m.list.Cursor = len(m.list.Items) - 1
	}
	m.syncViewport()
	events.Session.Refresh(len(m.candidates))
	return nil
}

func (m *Model) handleSessionActionMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(sessionActionMsg)
	if !ok {
		return nil
	}
	m.loading = false
	if result.err != nil {
		m.errMsg = result.err.Error()
		m.forceClearInfo()
		return nil
	}
	m.errMsg = ""
	if result.info != "" && m.verbose {
		m.setInfo(result.info)
	}
	return m.refreshCmd()
}
