package tmux

import (
	"errors"
	"fmt"
	"os/user"
	"path/filepath"
	"testing"

	gotmux "github.com/GianlucaP106/gotmux/gotmux"
)

func withStubTmux(t *testing.T, fn func(string) (tmuxClient, error)) {
	t.Helper()
	prev := newTmux
	newTmux = fn
	t.Cleanup(func() { newTmux = prev })
}

func withStubSessionHandles(t *testing.T, handles map[string]sessionHandle) {
	t.Helper()
	prev := newSessionHandle
	newSessionHandle = func(s *gotmux.Session) sessionHandle {
		if s == nil {
			return nil
		}
		return handles[s.Name]
	}
	t.Cleanup(func() { newSessionHandle = prev })
}

type stubSessionHandle struct {
	renameArgs []string
	renameErr  error
	killCalls  int
	killErr    error
}

func (s *stubSessionHandle) Rename(name string) error {
	s.renameArgs = append(s.renameArgs, name)
	return s.renameErr
}

func (s *stubSessionHandle) Kill() error {
	s.killCalls++
	return s.killErr
}

type fakeClient struct {
	sessions       []*gotmux.Session
	sessionsErr    error
	clients        []*gotmux.Client
	clientsErr     error
	switchCalls    int
	switchErr      error
	lastSwitchOpts *gotmux.SwitchClientOptions
	getSessions    map[string]*gotmux.Session
	getErr         error
	newCalls       []string
	newErr         error
}

func (f *fakeClient) ListSessions() ([]*gotmux.Session, error) {
	if f.sessionsErr != nil {
		return nil, f.sessionsErr
	}
	return f.sessions, nil
}

func (f *fakeClient) ListClients() ([]*gotmux.Client, error) {
	if f.clientsErr != nil {
		return nil, f.clientsErr
	}
	return f.clients, nil
}

func (f *fakeClient) SwitchClient(opts *gotmux.SwitchClientOptions) error {
	f.switchCalls++
	f.lastSwitchOpts = opts
	return f.switchErr
}

func (f *fakeClient) GetSessionByName(name string) (*gotmux.Session, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getSessions[name], nil
}

func (f *fakeClient) NewSession(opts *gotmux.SessionOptions) (*gotmux.Session, error) {
	f.newCalls = append(f.newCalls, opts.Name)
	if f.newErr != nil {
		return nil, f.newErr
	}
	return &gotmux.Session{Name: opts.Name}, nil
}

func TestFetchSessionsBuildsSnapshot(t *testing.T) {
	fake := &fakeClient{
		sessions: []*gotmux.Session{
			{Name: "work", Attached: 1, AttachedList: []string{"/dev/pts/1"}, Windows: 3},
			{Name: "scratch", Windows: 1},
		},
		clients: []*gotmux.Client{{Session: "work"}},
	}
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })

	snapshot, err := FetchSessions("")
	if err != nil {
		t.Fatalf("FetchSessions returned error: %v", err)
	}
	if snapshot.Current != "work" {
		t.Fatalf("expected current session work, got %q", snapshot.Current)
	}
	if len(snapshot.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(snapshot.Sessions))
	}
	work := snapshot.Sessions[0]
	if !work.Attached || !work.Current || work.Windows != 3 {
		t.Fatalf("unexpected work session entry: %+v", work)
	}
	if len(work.Clients) != 1 || work.Clients[0] != "/dev/pts/1" {
		t.Fatalf("unexpected clients: %v", work.Clients)
	}
	scratch := snapshot.Sessions[1]
	if scratch.Attached || scratch.Current {
		t.Fatalf("unexpected scratch session entry: %+v", scratch)
	}
}

func TestFetchSessionsPropagatesListError(t *testing.T) {
	boom := errors.New("no server running")
	withStubTmux(t, func(string) (tmuxClient, error) {
		return &fakeClient{sessionsErr: boom}, nil
	})
	if _, err := FetchSessions(""); !errors.Is(err, boom) {
		t.Fatalf("expected list error, got %v", err)
	}
}

func TestFetchSessionsCurrentEmptyWithoutClients(t *testing.T) {
	fake := &fakeClient{
		sessions:   []*gotmux.Session{{Name: "bg"}},
		clientsErr: errors.New("no clients"),
	}
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })

	snapshot, err := FetchSessions("")
	if err != nil {
		t.Fatalf("FetchSessions returned error: %v", err)
	}
	if snapshot.Current != "" {
		t.Fatalf("expected empty current, got %q", snapshot.Current)
	}
}

func TestSwitchClientPassesTarget(t *testing.T) {
	fake := &fakeClient{}
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })

	if err := SwitchClient("", "work"); err != nil {
		t.Fatalf("SwitchClient returned error: %v", err)
	}
	if fake.switchCalls != 1 || fake.lastSwitchOpts.TargetSession != "work" {
		t.Fatalf("unexpected switch call: calls=%d opts=%+v", fake.switchCalls, fake.lastSwitchOpts)
	}
}

func TestNewSessionUsesName(t *testing.T) {
	fake := &fakeClient{}
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })

	if err := NewSession("", "notes"); err != nil {
		t.Fatalf("NewSession returned error: %v", err)
	}
	if len(fake.newCalls) != 1 || fake.newCalls[0] != "notes" {
		t.Fatalf("unexpected new-session calls: %v", fake.newCalls)
	}
}

func TestHasSessionChecksByName(t *testing.T) {
	fake := &fakeClient{
		getSessions: map[string]*gotmux.Session{"work": {Name: "work"}},
	}
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })

	found, err := HasSession("/tmp/sock", "work")
	if err != nil || !found {
		t.Fatalf("expected work found, got found=%v err=%v", found, err)
	}
	found, err = HasSession("/tmp/sock", "idle")
	if err != nil || found {
		t.Fatalf("expected idle absent, got found=%v err=%v", found, err)
	}
}

func TestRenameSessionTargetsHandle(t *testing.T) {
	handle := &stubSessionHandle{}
	fake := &fakeClient{getSessions: map[string]*gotmux.Session{"work": {Name: "work"}}}
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })
	withStubSessionHandles(t, map[string]sessionHandle{"work": handle})

	if err := RenameSession("", "work", "deep-work"); err != nil {
		t.Fatalf("RenameSession returned error: %v", err)
	}
	if len(handle.renameArgs) != 1 || handle.renameArgs[0] != "deep-work" {
		t.Fatalf("unexpected rename args: %v", handle.renameArgs)
	}
}

func TestRenameSessionMissingTarget(t *testing.T) {
	withStubTmux(t, func(string) (tmuxClient, error) {
		return &fakeClient{getSessions: map[string]*gotmux.Session{}}, nil
	})
	if err := RenameSession("", "gone", "other"); err == nil {
		t.Fatal("expected error for missing session")
	}
}

func TestKillSessionsSkipsBlankTargets(t *testing.T) {
	handle := &stubSessionHandle{}
	fake := &fakeClient{getSessions: map[string]*gotmux.Session{"work": {Name: "work"}}}
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })
	withStubSessionHandles(t, map[string]sessionHandle{"work": handle})

	if err := KillSessions("", []string{"", "  ", "work"}); err != nil {
		t.Fatalf("KillSessions returned error: %v", err)
	}
	if handle.killCalls != 1 {
		t.Fatalf("expected one kill, got %d", handle.killCalls)
	}
}

func TestResolveSocketPathPrecedence(t *testing.T) {
	t.Setenv("MUFFIN_SOCKET", "/tmp/env-socket")
	t.Setenv("TMUX", "/tmp/tmux-socket,1234,0")

	got, err := ResolveSocketPath("/tmp/flag-socket")
	if err != nil {
		t.Fatalf("ResolveSocketPath returned error: %v", err)
	}
	if got != "/tmp/flag-socket" {
		t.Fatalf("expected flag socket, got %q", got)
	}

	got, err = ResolveSocketPath("")
	if err != nil {
		t.Fatalf("ResolveSocketPath returned error: %v", err)
	}
	if got != "/tmp/env-socket" {
		t.Fatalf("expected env socket, got %q", got)
	}

	t.Setenv("MUFFIN_SOCKET", "")
	got, err = ResolveSocketPath("")
	if err != nil {
		t.Fatalf("ResolveSocketPath returned error: %v", err)
	}
	if got != "/tmp/tmux-socket" {
		t.Fatalf("expected TMUX socket, got %q", got)
	}
}

func TestResolveSocketPathDefault(t *testing.T) {
	t.Setenv("MUFFIN_SOCKET", "")
	t.Setenv("TMUX", "")
	t.Setenv("TMUX_TMPDIR", "/var/tmux")

	u, err := user.Current()
	if err != nil {
		t.Skipf("current user unavailable: %v", err)
	}
	got, err := ResolveSocketPath("")
	if err != nil {
		t.Fatalf("ResolveSocketPath returned error: %v", err)
	}
	want := filepath.Join("/var/tmux", fmt.Sprintf("tmux-%s", u.Uid), "default")
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
