package engine

import (
	"github.com/zSuperx/muffin/internal/logging/events"
	"github.com/zSuperx/muffin/internal/preset"
	"github.com/zSuperx/muffin/internal/tmux"
)

// Source tags where a candidate comes from. The set is closed; every
// switch over it handles all three variants.
type Source int

const (
	// SourceLive is a running session with no matching preset.
	SourceLive Source = iota
	// SourcePreset is a declared preset with no running session.
	SourcePreset
	// SourceBoth is a preset whose session is already running.
	SourceBoth
)

// Candidate is one selectable row: a live session, an unrealized
// preset, or both collapsed under a shared name.
type Candidate struct {
	Name    string
	Source  Source
	Session *tmux.Session
	Preset  *preset.Record
}

// Running reports whether confirming the candidate can attach without
// creating anything first.
func (c Candidate) Running() bool {
	return c.Source == SourceLive || c.Source == SourceBoth
}

// Engine resolves presets against live tmux state and realizes presets
// into sessions on demand.
type Engine struct {
	socket string

	fetch  func(string) (tmux.SessionSnapshot, error)
	spawn  func(string, preset.Record) error
	exists func(string, string) (bool, error)
}

func New(socketPath string) *Engine {
	return &Engine{
		socket: socketPath,
		fetch:  tmux.FetchSessions,
		spawn:  tmux.SpawnPreset,
		exists: tmux.HasSession,
	}
}

// Refresh queries the tmux server for a fresh session snapshot. The
// previous snapshot is always replaced wholesale, never patched.
func (e *Engine) Refresh() (tmux.SessionSnapshot, error) {
	snapshot, err := e.fetch(e.socket)
	if err != nil {
		return tmux.SessionSnapshot{}, &GatewayError{Err: err}
	}
	return snapshot, nil
}

// BuildCandidates merges presets and live sessions into one list. It is
// a pure function of its inputs: presets keep store order, a preset
// sharing a name with a live session collapses into a single Both
// entry, and unmatched live sessions follow in server order with the
// current session pinned first.
func BuildCandidates(presets []preset.Record, snapshot tmux.SessionSnapshot) []Candidate {
	liveByName := make(map[string]int, len(snapshot.Sessions))
	for i, s := range snapshot.Sessions {
		if _, ok := liveByName[s.Name]; !ok {
			liveByName[s.Name] = i
		}
	}
	matched := make(map[string]bool, len(presets))
	out := make([]Candidate, 0, len(presets)+len(snapshot.Sessions))
	for i := range presets {
		rec := &presets[i]
		if idx, ok := liveByName[rec.Name]; ok {
			matched[rec.Name] = true
			out = append(out, Candidate{
				Name:    rec.Name,
				Source:  SourceBoth,
				Session: &snapshot.Sessions[idx],
				Preset:  rec,
			})
			continue
		}
		out = append(out, Candidate{Name: rec.Name, Source: SourcePreset, Preset: rec})
	}
	appendLive := func(onlyCurrent bool) {
		for i := range snapshot.Sessions {
			s := &snapshot.Sessions[i]
			if matched[s.Name] {
				continue
			}
			if s.Current != onlyCurrent {
				continue
			}
			matched[s.Name] = true
			out = append(out, Candidate{Name: s.Name, Source: SourceLive, Session: s})
		}
	}
	appendLive(true)
	appendLive(false)
	return out
}

// Realize ensures a live session exists for the candidate and returns
// its name. Live and Both candidates are returned as-is; Preset
// candidates are spawned first. A failed spawn leaves no state behind
// for the caller to clean up.
func (e *Engine) Realize(c Candidate) (string, error) {
	if c.Running() {
		events.Preset.Realize(c.Name, "running")
		return c.Name, nil
	}
	// The snapshot can go stale between refresh and confirm; a session
	// with this name may have appeared in the meantime.
	if e.exists != nil {
		if running, err := e.exists(e.socket, c.Name); err == nil && running {
			events.Preset.Realize(c.Name, "running")
			return c.Name, nil
		}
	}
	if err := e.spawn(e.socket, *c.Preset); err != nil {
		events.Preset.Realize(c.Name, "error")
		return "", &RealizationError{Name: c.Name, Err: err}
	}
	events.Preset.Spawn(c.Name, c.Preset.WindowCount())
	events.Preset.Realize(c.Name, "spawned")
	return c.Name, nil
}
