package tmux

import (
	"os/exec"

	gotmux "github.com/GianlucaP106/gotmux/gotmux"
)

// Session is a snapshot of one live tmux session at query time.
type Session struct {
	Name     string
	Attached bool
	Clients  []string
	Current  bool
	Windows  int
}

// SessionSnapshot captures the full live-session view. Snapshots are
// replaced wholesale on refresh, never patched.
type SessionSnapshot struct {
	Sessions []Session
	Current  string
}

type sessionHandle interface {
	Rename(string) error
	Kill() error
}

type tmuxClient interface {
	ListSessions() ([]*gotmux.Session, error)
	ListClients() ([]*gotmux.Client, error)
	SwitchClient(*gotmux.SwitchClientOptions) error
	GetSessionByName(string) (*gotmux.Session, error)
	NewSession(*gotmux.SessionOptions) (*gotmux.Session, error)
}

// Package seams. Tests swap these for fakes so the gateway logic runs
// without a live tmux server.
var (
	newTmux = func(socketPath string) (tmuxClient, error) {
		if socketPath != "" {
			return gotmux.NewTmux(socketPath)
		}
		return gotmux.DefaultTmux()
	}

	runExecCommand = func(name string, args ...string) commander {
		return realCommander{cmd: exec.Command(name, args...)}
	}

	newSessionHandle = func(s *gotmux.Session) sessionHandle {
		if s == nil {
			return nil
		}
		return &realSessionHandle{session: s}
	}
)

type commander interface {
	Run() error
	Output() ([]byte, error)
}

type realCommander struct {
	cmd *exec.Cmd
}

func (r realCommander) Run() error {
	return r.cmd.Run()
}

func (r realCommander) Output() ([]byte, error) {
	return r.cmd.Output()
}

type realSessionHandle struct {
	session *gotmux.Session
}

func (h *realSessionHandle) Rename(name string) error {
	return h.session.Rename(name)
}

func (h *realSessionHandle) Kill() error {
	return h.session.Kill()
}
