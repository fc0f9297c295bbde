package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zSuperx/muffin/internal/logging/events"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.mode != ModeBrowse && m.mode != ModeFiltering {
		return nil
	}
	if keyMsg.String() == "ctrl+c" {
		m.interrupted = true
		events.UI.Quit("interrupt")
		return tea.Quit
	}
	switch m.mode {
	case ModeBrowse:
		return m.handleBrowseKey(keyMsg)
	case ModeFiltering:
		return m.handleFilteringKey(keyMsg)
	}
	return nil
}

// handleBrowseKey treats single keys as commands. Printable keys that
// are not bound to a command seed the filter and switch to Filtering.
func (m *Model) handleBrowseKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc":
		events.UI.Quit("browse")
		return tea.Quit
	case "enter":
		return m.handleEnterKey()
	case "up", "k":
		m.moveCursorUp()
		return nil
	case "down", "j":
		m.moveCursorDown()
		return nil
	case "pgup":
		m.moveCursorPageUp()
		return nil
	case "pgdown":
		m.moveCursorPageDown()
		return nil
	case "home", "g":
		m.moveCursorHome()
		return nil
	case "end", "G":
		m.moveCursorEnd()
		return nil
	case "ctrl+r":
		m.loading = true
		return m.refreshCmd()
	case "/":
		m.enterFiltering()
		return nil
	case "n":
		return m.startCreateForm()
	case "r":
		return m.startRenameForm()
	case "d":
		return m.startKillConfirm()
	}
	if text := printableRunes(msg); text != "" {
		m.enterFiltering()
		m.appendToFilter(text)
	}
	return nil
}

// handleFilteringKey routes every printable key into the filter;
// navigation and confirm stay active.
func (m *Model) handleFilteringKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.resetFilter()
		m.mode = ModeBrowse
		events.UI.Mode("browse")
		return nil
	case "enter":
		return m.handleEnterKey()
	case "up":
		m.moveCursorUp()
		return nil
	case "down":
		m.moveCursorDown()
		return nil
	case "pgup":
		m.moveCursorPageUp()
		return nil
	case "pgdown":
		m.moveCursorPageDown()
		return nil
	case "home":
		m.moveCursorHome()
		return nil
	case "end":
		m.moveCursorEnd()
		return nil
	case "backspace", "ctrl+h":
		if m.list.Filter == "" {
			m.mode = ModeBrowse
			events.UI.Mode("browse")
			return nil
		}
	}
	if m.handleTextInput(msg) {
		if m.list.Filter == "" {
			m.mode = ModeBrowse
			events.UI.Mode("browse")
		}
		return nil
	}
	return nil
}

func (m *Model) enterFiltering() {
	if m.mode == ModeFiltering {
		return
	}
	m.mode = ModeFiltering
	events.UI.Mode("filtering")
}

func (m *Model) resetFilter() {
	before := m.list.FilterCursorPos()
	m.list.ClearFilter()
	m.noteFilterCursorChange(before)
	events.Filter.Cleared()
	m.syncViewport()
}

func (m *Model) handleEnterKey() tea.Cmd {
	if m.loading {
		return nil
	}
	candidate, ok := m.currentCandidate()
	if !ok {
		return nil
	}
	events.UI.Confirm(candidate.Name, sourceLabel(candidate), m.list.Filter)
	m.loading = true
	m.errMsg = ""
	m.forceClearInfo()
	return m.confirmCmd(candidate)
}

func (m *Model) moveCursorUp() {
	if m.list.MoveCursorUp() {
		events.UI.Cursor(m.list.Cursor)
	}
	m.syncViewport()
}

func (m *Model) moveCursorDown() {
	if m.list.MoveCursorDown() {
		events.UI.Cursor(m.list.Cursor)
	}
	m.syncViewport()
}

func (m *Model) moveCursorPageUp() {
	if m.list.MoveCursorPageUp(m.maxVisibleItems()) {
		events.UI.Cursor(m.list.Cursor)
	}
	m.syncViewport()
}

func (m *Model) moveCursorPageDown() {
	if m.list.MoveCursorPageDown(m.maxVisibleItems()) {
		events.UI.Cursor(m.list.Cursor)
	}
	m.syncViewport()
}

func (m *Model) moveCursorHome() {
	if m.list.MoveCursorHome() {
		events.UI.Cursor(m.list.Cursor)
	}
	m.syncViewport()
}

func (m *Model) moveCursorEnd() {
	if m.list.MoveCursorEnd() {
		events.UI.Cursor(m.list.Cursor)
	}
	m.syncViewport()
}

func (m *Model) syncViewport() {
	m.list.EnsureCursorVisible(m.maxVisibleItems())
}
