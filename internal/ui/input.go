package ui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zSuperx/muffin/internal/logging/events"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(before int) {
	if before != m.list.FilterCursorPos() {
		m.filterCursorDirty = true
	}
}

// printableRunes returns the printable text of a key message, or "".
func printableRunes(msg tea.KeyMsg) string {
	if msg.Type == tea.KeySpace {
		return " "
	}
	if msg.Type != tea.KeyRunes || msg.Alt || len(msg.Runes) == 0 {
		return ""
	}
	for _, r := range msg.Runes {
		if unicode.IsControl(r) {
			return ""
		}
	}
	return string(msg.Runes)
}

func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	if m.loading {
		return false
	}
	switch msg.String() {
	case "ctrl+u":
		if m.list.Filter == "" {
			return false
		}
		before := m.list.FilterCursorPos()
		m.list.ClearFilter()
		m.noteFilterCursorChange(before)
		m.forceClearInfo()
		m.errMsg = ""
		events.Filter.Cleared()
		m.syncViewport()
		return true
	case "ctrl+w":
		before := m.list.FilterCursorPos()
		if !m.list.DeleteFilterWordBackward() {
			return false
		}
		m.noteFilterCursorChange(before)
		m.forceClearInfo()
		m.errMsg = ""
		events.Filter.WordBackspace(m.list.Filter)
		m.syncViewport()
		return true
	case "ctrl+a":
		before := m.list.FilterCursorPos()
		if !m.list.MoveFilterCursorStart() {
			return false
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(m.list.FilterCursor)
		return true
	case "ctrl+e":
		before := m.list.FilterCursorPos()
		if !m.list.MoveFilterCursorEnd() {
			return false
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(m.list.FilterCursor)
		return true
	case "alt+b":
		before := m.list.FilterCursorPos()
		if !m.list.MoveFilterCursorWordBackward() {
			return false
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(m.list.FilterCursor)
		return true
	case "alt+f":
		before := m.list.FilterCursorPos()
		if !m.list.MoveFilterCursorWordForward() {
			return false
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(m.list.FilterCursor)
		return true
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return m.removeFilterRune()
	case tea.KeyRunes, tea.KeySpace:
		if text := printableRunes(msg); text != "" {
			return m.appendToFilter(text)
		}
		return false
	case tea.KeyLeft:
		before := m.list.FilterCursorPos()
		if !m.list.MoveFilterCursorRuneBackward() {
			return false
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(m.list.FilterCursor)
		return true
	case tea.KeyRight:
		before := m.list.FilterCursorPos()
		if !m.list.MoveFilterCursorRuneForward() {
			return false
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(m.list.FilterCursor)
		return true
	}
	return false
}

func (m *Model) appendToFilter(text string) bool {
	if text == "" {
		return false
	}
	before := m.list.FilterCursorPos()
	if !m.list.InsertFilterText(text) {
		return false
	}
	m.noteFilterCursorChange(before)
	m.forceClearInfo()
	m.errMsg = ""
	events.Filter.Append(m.list.Filter)
	m.syncViewport()
	return true
}

func (m *Model) removeFilterRune() bool {
	before := m.list.FilterCursorPos()
	if !m.list.DeleteFilterRuneBackward() {
		return false
	}
	m.noteFilterCursorChange(before)
	m.forceClearInfo()
	m.errMsg = ""
	events.Filter.Backspace(m.list.Filter)
	m.syncViewport()
	return true
}

func (m *Model) filterPrompt() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	text := m.list.Filter
	if text == "" {
		placeholder := "(type to filter)"
		runes := []rune(placeholder)
		caretRune := string(runes[0])
		rest := string(runes[1:])
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(caretRune)
		return prompt + caret + render(styles.FilterPlaceholder, rest)
	}
	runes := []rune(text)
	pos := m.list.FilterCursorPos()
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	before := render(styles.Filter, string(runes[:pos]))
	caretRune := " "
	if pos < len(runes) {
		caretRune = string(runes[pos])
	}
	caret := m.renderFilterCursor(caretRune)
	after := ""
	if pos < len(runes) {
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + caret + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Copy()
	base = base.Inline(true)

	if m.filterCursor.Blink {
		return base.Render(char)
	}

	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}

	return base.Reverse(true).Render(char)
}
