package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zSuperx/muffin/internal/tmux"
)

func threeSessionSnapshot() tmux.SessionSnapshot {
	return tmux.SessionSnapshot{
		Current: "alpha",
		Sessions: []tmux.Session{
			{Name: "alpha", Attached: true, Current: true, Windows: 1},
			{Name: "beta", Windows: 2},
			{Name: "gamma", Windows: 1},
		},
	}
}

func TestPrintableKeySeedsFilterAndEntersFiltering(t *testing.T) {
	model := newTestModel(nil, threeSessionSnapshot(), false)
	harness := NewHarness(model)

	harness.Send(keyRunes("b"))

	m := harness.Model()
	if m.mode != ModeFiltering {
		t.Fatalf("expected filtering mode, got %v", m.mode)
	}
	if m.list.Filter != "b" {
		t.Fatalf("expected filter %q, got %q", "b", m.list.Filter)
	}
	if len(m.list.Items) != 1 || m.list.Items[0].ID != "beta" {
		t.Fatalf("expected only beta to match, got %v", m.list.Items)
	}
	if m.list.Cursor != 0 {
		t.Fatalf("expected cursor reset to 0, got %d", m.list.Cursor)
	}
}

func TestSlashEntersFilteringWithEmptyFilter(t *testing.T) {
	model := newTestModel(nil, threeSessionSnapshot(), false)
	harness := NewHarness(model)

	harness.Send(keyRunes("/"))

	m := harness.Model()
	if m.mode != ModeFiltering {
		t.Fatalf("expected filtering mode, got %v", m.mode)
	}
	if m.list.Filter != "" {
		t.Fatalf("expected empty filter, got %q", m.list.Filter)
	}
	if len(m.list.Items) != 3 {
		t.Fatalf("expected full list, got %d items", len(m.list.Items))
	}
}

func TestCursorClampsAtListEdges(t *testing.T) {
	model := newTestModel(nil, threeSessionSnapshot(), false)
	harness := NewHarness(model)

	harness.Send(keyRunes("k"))
	if got := harness.Model().list.Cursor; got != 0 {
		t.Fatalf("expected cursor pinned at top, got %d", got)
	}

	harness.Send(keyRunes("j"))
	harness.Send(keyRunes("j"))
	harness.Send(keyRunes("j"))
	if got := harness.Model().list.Cursor; got != 2 {
		t.Fatalf("expected cursor pinned at bottom, got %d", got)
	}

	harness.Send(keyRunes("g"))
	if got := harness.Model().list.Cursor; got != 0 {
		t.Fatalf("expected home to jump to top, got %d", got)
	}
	harness.Send(keyRunes("G"))
	if got := harness.Model().list.Cursor; got != 2 {
		t.Fatalf("expected end to jump to bottom, got %d", got)
	}
}

func TestQuitKeysExitFromBrowse(t *testing.T) {
	for _, key := range []tea.KeyMsg{keyRunes("q"), {Type: tea.KeyEsc}} {
		model := newTestModel(nil, threeSessionSnapshot(), false)
		harness := NewHarness(model)
		harness.Send(key)
		if !harness.Quit() {
			t.Fatalf("expected %q to quit from browse", key.String())
		}
		if harness.Model().Interrupted() {
			t.Fatalf("expected clean quit for %q", key.String())
		}
	}
}

func TestEscapeInFilteringClearsFilterAndReturnsToBrowse(t *testing.T) {
	model := newTestModel(nil, threeSessionSnapshot(), false)
	harness := NewHarness(model)

	harness.Send(keyRunes("be"))
	harness.Send(tea.KeyMsg{Type: tea.KeyEsc})

	m := harness.Model()
	if harness.Quit() {
		t.Fatal("expected escape in filtering to stay in the popup")
	}
	if m.mode != ModeBrowse {
		t.Fatalf("expected browse mode, got %v", m.mode)
	}
	if m.list.Filter != "" {
		t.Fatalf("expected filter cleared, got %q", m.list.Filter)
	}
	if len(m.list.Items) != 3 {
		t.Fatalf("expected full list restored, got %d items", len(m.list.Items))
	}
}

func TestBackspaceOnLastRuneReturnsToBrowse(t *testing.T) {
	model := newTestModel(nil, threeSessionSnapshot(), false)
	harness := NewHarness(model)

	harness.Send(keyRunes("b"))
	harness.Send(tea.KeyMsg{Type: tea.KeyBackspace})

	m := harness.Model()
	if m.mode != ModeBrowse {
		t.Fatalf("expected browse mode after deleting last rune, got %v", m.mode)
	}
	if m.list.Filter != "" {
		t.Fatalf("expected empty filter, got %q", m.list.Filter)
	}
}

func TestBackspaceOnEmptyFilterReturnsToBrowse(t *testing.T) {
	model := newTestModel(nil, threeSessionSnapshot(), false)
	harness := NewHarness(model)

	harness.Send(keyRunes("/"))
	harness.Send(tea.KeyMsg{Type: tea.KeyBackspace})

	m := harness.Model()
	if m.mode != ModeBrowse {
		t.Fatalf("expected browse mode after backspace on empty filter, got %v", m.mode)
	}
	if harness.Quit() {
		t.Fatal("expected model to stay running")
	}
}

func TestCtrlCInterruptsFromAnyMode(t *testing.T) {
	model := newTestModel(nil, threeSessionSnapshot(), false)
	harness := NewHarness(model)
	harness.Send(keyRunes("b"))
	harness.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

	if !harness.Quit() {
		t.Fatal("expected ctrl+c to quit")
	}
	if !harness.Model().Interrupted() {
		t.Fatal("expected interrupted flag set")
	}
}

func TestEnterWithNoMatchesDoesNothing(t *testing.T) {
	rec := &seamRecorder{snapshot: threeSessionSnapshot()}
	installSeams(t, rec)
	model := newTestModel(nil, threeSessionSnapshot(), false)
	harness := NewHarness(model)

	harness.Send(keyRunes("zzz"))
	if got := len(harness.Model().list.Items); got != 0 {
		t.Fatalf("expected no matches, got %d", got)
	}
	harness.Send(tea.KeyMsg{Type: tea.KeyEnter})

	if len(rec.attaches) != 0 {
		t.Fatalf("expected no attach with empty view, got %v", rec.attaches)
	}
	if harness.Quit() {
		t.Fatal("expected popup to stay open")
	}
}

func TestEnterIgnoredWhileLoading(t *testing.T) {
	rec := &seamRecorder{snapshot: threeSessionSnapshot()}
	installSeams(t, rec)
	model := newTestModel(nil, threeSessionSnapshot(), false)
	harness := NewHarness(model)

	harness.Model().loading = true
	harness.Send(tea.KeyMsg{Type: tea.KeyEnter})

	if len(rec.attaches) != 0 {
		t.Fatalf("expected no attach while loading, got %v", rec.attaches)
	}
}

func TestFilteringKeepsCursorNavigation(t *testing.T) {
	model := newTestModel(nil, threeSessionSnapshot(), false)
	harness := NewHarness(model)

	harness.Send(keyRunes("a"))
	if got := len(harness.Model().list.Items); got < 2 {
		t.Fatalf("expected several matches for %q, got %d", "a", got)
	}
	harness.Send(tea.KeyMsg{Type: tea.KeyDown})
	if got := harness.Model().list.Cursor; got != 1 {
		t.Fatalf("expected cursor to move within filtered view, got %d", got)
	}
}
