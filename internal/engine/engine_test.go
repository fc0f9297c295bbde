package engine

import (
	"errors"
	"reflect"
	"testing"

	"github.com/zSuperx/muffin/internal/preset"
	"github.com/zSuperx/muffin/internal/tmux"
)

func TestBuildCandidatesPresetFirstOrdering(t *testing.T) {
	presets := []preset.Record{{Name: "work", Dir: "/home/u/work"}}
	snapshot := tmux.SessionSnapshot{Sessions: []tmux.Session{{Name: "scratch"}}}

	got := BuildCandidates(presets, snapshot)
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].Name != "work" || got[0].Source != SourcePreset {
		t.Fatalf("expected Preset(work) first, got %+v", got[0])
	}
	if got[1].Name != "scratch" || got[1].Source != SourceLive {
		t.Fatalf("expected Live(scratch) second, got %+v", got[1])
	}
}

func TestBuildCandidatesCollapsesSharedNames(t *testing.T) {
	presets := []preset.Record{{Name: "work"}}
	snapshot := tmux.SessionSnapshot{Sessions: []tmux.Session{{Name: "work", Windows: 2}}}

	got := BuildCandidates(presets, snapshot)
	if len(got) != 1 {
		t.Fatalf("expected a single collapsed candidate, got %d", len(got))
	}
	c := got[0]
	if c.Source != SourceBoth {
		t.Fatalf("expected SourceBoth, got %v", c.Source)
	}
	if c.Session == nil || c.Session.Windows != 2 {
		t.Fatalf("expected live session attached to candidate, got %+v", c.Session)
	}
	if c.Preset == nil || c.Preset.Name != "work" {
		t.Fatalf("expected preset attached to candidate, got %+v", c.Preset)
	}
}

func TestBuildCandidatesPinsCurrentSessionFirst(t *testing.T) {
	presets := []preset.Record{{Name: "work"}}
	snapshot := tmux.SessionSnapshot{
		Current: "beta",
		Sessions: []tmux.Session{
			{Name: "alpha"},
			{Name: "beta", Current: true},
			{Name: "work"},
		},
	}

	got := BuildCandidates(presets, snapshot)
	names := make([]string, 0, len(got))
	for _, c := range got {
		names = append(names, c.Name)
	}
	want := []string{"work", "beta", "alpha"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("expected order %v, got %v", want, names)
	}
	if got[0].Source != SourceBoth {
		t.Fatalf("expected work to be SourceBoth, got %v", got[0].Source)
	}
}

func TestBuildCandidatesIdempotent(t *testing.T) {
	presets := []preset.Record{{Name: "work"}, {Name: "notes"}}
	snapshot := tmux.SessionSnapshot{
		Current: "work",
		Sessions: []tmux.Session{
			{Name: "work", Current: true},
			{Name: "scratch"},
		},
	}

	first := BuildCandidates(presets, snapshot)
	second := BuildCandidates(presets, snapshot)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output across calls:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestRealizeRunningCandidateSkipsSpawn(t *testing.T) {
	spawns := 0
	e := &Engine{
		spawn: func(string, preset.Record) error { spawns++; return nil },
	}
	rec := preset.Record{Name: "work"}
	c := Candidate{Name: "work", Source: SourceBoth, Preset: &rec}

	name, err := e.Realize(c)
	if err != nil {
		t.Fatalf("Realize returned error: %v", err)
	}
	if name != "work" {
		t.Fatalf("expected name work, got %q", name)
	}
	if spawns != 0 {
		t.Fatalf("expected no spawns for running candidate, got %d", spawns)
	}
}

func TestRealizePresetSpawnsExactlyOnce(t *testing.T) {
	spawns := 0
	var spawned preset.Record
	e := &Engine{
		socket: "/tmp/sock",
		spawn: func(socket string, rec preset.Record) error {
			spawns++
			if socket != "/tmp/sock" {
				t.Fatalf("expected socket /tmp/sock, got %q", socket)
			}
			spawned = rec
			return nil
		},
	}
	rec := preset.Record{Name: "work", Dir: "/home/u/work"}

	name, err := e.Realize(Candidate{Name: "work", Source: SourcePreset, Preset: &rec})
	if err != nil {
		t.Fatalf("Realize returned error: %v", err)
	}
	if name != "work" || spawns != 1 {
		t.Fatalf("expected one spawn of work, got name=%q spawns=%d", name, spawns)
	}
	if spawned.Dir != "/home/u/work" {
		t.Fatalf("expected record passed through, got %+v", spawned)
	}
}

func TestRealizeSkipsSpawnWhenSessionAppeared(t *testing.T) {
	spawns := 0
	e := &Engine{
		spawn:  func(string, preset.Record) error { spawns++; return nil },
		exists: func(string, string) (bool, error) { return true, nil },
	}
	rec := preset.Record{Name: "work"}

	name, err := e.Realize(Candidate{Name: "work", Source: SourcePreset, Preset: &rec})
	if err != nil {
		t.Fatalf("Realize returned error: %v", err)
	}
	if name != "work" || spawns != 0 {
		t.Fatalf("expected attach without spawn for a session that appeared, got name=%q spawns=%d", name, spawns)
	}
}

func TestRealizeWrapsSpawnFailure(t *testing.T) {
	boom := errors.New("duplicate session")
	e := &Engine{
		spawn: func(string, preset.Record) error { return boom },
	}
	rec := preset.Record{Name: "work"}

	_, err := e.Realize(Candidate{Name: "work", Source: SourcePreset, Preset: &rec})
	var realizeErr *RealizationError
	if !errors.As(err, &realizeErr) {
		t.Fatalf("expected RealizationError, got %v", err)
	}
	if realizeErr.Name != "work" || !errors.Is(err, boom) {
		t.Fatalf("unexpected error contents: %+v", realizeErr)
	}
}

func TestRefreshWrapsGatewayFailure(t *testing.T) {
	boom := errors.New("no server running")
	e := &Engine{
		fetch: func(string) (tmux.SessionSnapshot, error) {
			return tmux.SessionSnapshot{}, boom
		},
	}

	_, err := e.Refresh()
	var gatewayErr *GatewayError
	if !errors.As(err, &gatewayErr) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}
