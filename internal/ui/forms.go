package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zSuperx/muffin/internal/engine"
	"github.com/zSuperx/muffin/internal/logging/events"
)

type sessionFormMode int

const (
	sessionFormModeCreate sessionFormMode = iota
	sessionFormModeRename
)

// SessionForm collects a session name for create and rename actions.
type SessionForm struct {
	input    textinput.Model
	existing map[string]struct{}
	err      string
	mode     sessionFormMode
	target   string
	title    string
	help     string
}

func newCreateForm(existing []string) *SessionForm {
	return newSessionForm(sessionFormModeCreate, "", "", existing)
}

func newRenameForm(target string, existing []string) *SessionForm {
	return newSessionForm(sessionFormModeRename, target, target, existing)
}

func newSessionForm(mode sessionFormMode, target, initial string, existing []string) *SessionForm {
	ti := textinput.New()
	ti.Placeholder = "session-name"
	ti.CharLimit = 64
	ti.Focus()
	if initial != "" {
		ti.SetValue(initial)
	}
	title := "Create Session"
	help := "Press Enter to create. Esc to cancel."
	if mode == sessionFormModeRename {
		title = fmt.Sprintf("Rename %s", target)
		help = "Press Enter to rename. Esc to cancel."
	}
	form := &SessionForm{
		input:  ti,
		mode:   mode,
		target: strings.TrimSpace(target),
		title:  title,
		help:   help,
	}
	form.setExisting(existing)
	return form
}

func (f *SessionForm) Value() string     { return strings.TrimSpace(f.input.Value()) }
func (f *SessionForm) InputView() string { return f.input.View() }
func (f *SessionForm) Error() string     { return f.err }
func (f *SessionForm) Target() string    { return f.target }
func (f *SessionForm) Title() string     { return f.title }
func (f *SessionForm) Help() string      { return f.help }
func (f *SessionForm) IsRename() bool    { return f.mode == sessionFormModeRename }

// Update consumes one message. The bool results are (done, cancel):
// done means the form submitted and the returned command performs the
// action, cancel means the user backed out.
func (f *SessionForm) Update(msg tea.Msg, m *Model) (tea.Cmd, bool, bool) {
	switch keyMsg := msg.(type) {
	case tea.KeyMsg:
		switch keyMsg.String() {
		case "ctrl+u":
			if f.input.Value() != "" {
				f.input.SetValue("")
				f.input.CursorStart()
				f.err = f.validate()
			}
			return nil, false, false
		}
		switch keyMsg.Type {
		case tea.KeyEsc:
			if f.mode == sessionFormModeRename {
				events.Session.CancelRename(f.target, events.SessionReasonEscape)
			} else {
				events.Session.CancelNew(events.SessionReasonEscape)
			}
			return nil, false, true
		case tea.KeyEnter:
			value := f.Value()
			switch f.mode {
			case sessionFormModeCreate:
				if err := f.validateName(value); err != "" {
					f.err = err
					return nil, false, false
				}
				f.err = ""
				events.Session.SubmitNew(value)
				return m.createSessionCmd(value), true, false
			case sessionFormModeRename:
				if value == "" {
					events.Session.CancelRename(f.target, events.SessionReasonEmpty)
					return nil, false, true
				}
				if value == f.target {
					events.Session.CancelRename(f.target, events.SessionReasonEmpty)
					return nil, false, true
				}
				if err := f.validateName(value); err != "" {
					f.err = err
					return nil, false, false
				}
				f.err = ""
				events.Session.SubmitRename(f.target, value)
				return m.renameSessionCmd(f.target, value), true, false
			}
		}
	}

	updated, cmd := f.input.Update(msg)
	f.input = updated
	f.err = f.validate()
	return cmd, false, false
}

func (f *SessionForm) setExisting(names []string) {
	f.existing = make(map[string]struct{}, len(names))
	targetLower := strings.ToLower(f.target)
	for _, name := range names {
		trim := strings.ToLower(strings.TrimSpace(name))
		if trim == "" {
			continue
		}
		if f.mode == sessionFormModeRename && trim == targetLower {
			continue
		}
		f.existing[trim] = struct{}{}
	}
	f.err = f.validate()
}

func (f *SessionForm) validate() string {
	return f.validateName(f.Value())
}

func (f *SessionForm) validateName(name string) string {
	trimmed := strings.TrimSpace(name)
	lower := strings.ToLower(trimmed)
	if trimmed == "" {
		if f.mode == sessionFormModeCreate {
			return "Session name required"
		}
		return ""
	}
	if strings.ContainsAny(trimmed, ":.") {
		return "Session names cannot contain ':' or '.'"
	}
	if _, exists := f.existing[lower]; exists {
		return "Session already exists"
	}
	return ""
}

func (m *Model) startCreateForm() tea.Cmd {
	events.Session.NewPrompt(len(m.liveSessionNames()))
	m.sessionForm = newCreateForm(m.liveSessionNames())
	m.mode = ModeSessionForm
	return nil
}

func (m *Model) startRenameForm() tea.Cmd {
	candidate, ok := m.currentCandidate()
	if !ok {
		return nil
	}
	if !candidate.Running() {
		m.setInfo("Only running sessions can be renamed")
		return nil
	}
	events.Session.RenamePrompt(candidate.Name)
	m.sessionForm = newRenameForm(candidate.Name, m.liveSessionNames())
	m.mode = ModeSessionForm
	return nil
}

func (m *Model) startKillConfirm() tea.Cmd {
	candidate, ok := m.currentCandidate()
	if !ok {
		return nil
	}
	if !candidate.Running() {
		m.setInfo("Only running sessions can be killed")
		return nil
	}
	m.killTarget = candidate.Name
	m.mode = ModeKillConfirm
	return nil
}

func (m *Model) handleSessionForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.sessionForm == nil {
		m.mode = ModeBrowse
		return false, nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+c" {
		m.interrupted = true
		return true, tea.Quit
	}
	cmd, done, cancel := m.sessionForm.Update(msg, m)
	if cancel {
		m.sessionForm = nil
		m.mode = ModeBrowse
		return true, cmd
	}
	if done {
		m.sessionForm = nil
		m.mode = ModeBrowse
		m.loading = true
		m.errMsg = ""
		m.forceClearInfo()
		return true, cmd
	}
	return true, cmd
}

func (m *Model) handleKillConfirm(msg tea.Msg) (bool, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return true, nil
	}
	switch keyMsg.String() {
	case "ctrl+c":
		m.interrupted = true
		return true, tea.Quit
	case "y", "enter":
		target := m.killTarget
		m.killTarget = ""
		m.mode = ModeBrowse
		m.loading = true
		m.errMsg = ""
		m.forceClearInfo()
		return true, m.killSessionCmd(target)
	case "n", "esc", "q":
		m.killTarget = ""
		m.mode = ModeBrowse
		return true, nil
	}
	return true, nil
}

func sourceLabel(c engine.Candidate) string {
	switch c.Source {
	case engine.SourceLive:
		return "live"
	case engine.SourcePreset:
		return "preset"
	case engine.SourceBoth:
		return "both"
	}
	return "unknown"
}
