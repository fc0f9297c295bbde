package tmux

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	gotmux "github.com/GianlucaP106/gotmux/gotmux"
)

// FetchSessions queries the tmux server for all sessions. The returned
// snapshot is a point-in-time view; callers replace it on refresh.
func FetchSessions(socketPath string) (SessionSnapshot, error) {
	client, err := newTmux(socketPath)
	if err != nil {
		return SessionSnapshot{}, err
	}
	sessions, err := client.ListSessions()
	if err != nil {
		return SessionSnapshot{}, err
	}
	currentName := currentSessionName(client)
	out := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		entry := Session{
			Name:     s.Name,
			Attached: s.Attached > 0,
			Clients:  append([]string(nil), s.AttachedList...),
			Current:  s.Name == currentName,
			Windows:  s.Windows,
		}
		out = append(out, entry)
	}
	return SessionSnapshot{Sessions: out, Current: currentName}, nil
}

func SwitchClient(socketPath, target string) error {
	client, err := newTmux(socketPath)
	if err != nil {
		return err
	}
	return client.SwitchClient(&gotmux.SwitchClientOptions{TargetSession: target})
}

func NewSession(socketPath, name string) error {
	client, err := newTmux(socketPath)
	if err != nil {
		return err
	}
	_, err = client.NewSession(&gotmux.SessionOptions{Name: name})
	return err
}

func HasSession(socketPath, name string) (bool, error) {
	client, err := newTmux(socketPath)
	if err != nil {
		return false, err
	}
	session, err := client.GetSessionByName(name)
	if err != nil {
		return false, err
	}
	return session != nil, nil
}

func RenameSession(socketPath, target, newName string) error {
	client, err := newTmux(socketPath)
	if err != nil {
		return err
	}
	handle, err := findSession(client, target)
	if err != nil {
		return err
	}
	if handle == nil {
		return fmt.Errorf("session %s not found", target)
	}
	return handle.Rename(newName)
}

func KillSessions(socketPath string, targets []string) error {
	if len(targets) == 0 {
		return nil
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return err
	}
	for _, target := range targets {
		target = strings.TrimSpace(target)
		if target == "" {
			continue
		}
		handle, err := findSession(client, target)
		if err != nil {
			return err
		}
		if handle == nil {
			return fmt.Errorf("session %s not found", target)
		}
		if err := handle.Kill(); err != nil {
			return err
		}
	}
	return nil
}

// ResolveSocketPath picks the tmux socket: explicit flag, then
// MUFFIN_SOCKET, then the socket of the surrounding tmux client, then
// the server default for the current user.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if envSocket := os.Getenv("MUFFIN_SOCKET"); envSocket != "" {
		return envSocket, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}

func findSession(client tmuxClient, target string) (sessionHandle, error) {
	name := target
	if idx := strings.IndexRune(target, ':'); idx >= 0 {
		name = target[:idx]
	}
	if name == "" {
		name = target
	}
	session, err := client.GetSessionByName(name)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	return newSessionHandle(session), nil
}

func baseArgs(socketPath string) []string {
	if strings.TrimSpace(socketPath) == "" {
		return []string{}
	}
	return []string{"-S", socketPath}
}

func currentSessionName(client tmuxClient) string {
	if clients, err := client.ListClients(); err == nil {
		for _, c := range clients {
			if c != nil && c.Session != "" {
				return c.Session
			}
		}
	}
	return ""
}
