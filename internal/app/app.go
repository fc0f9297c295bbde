package app

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zSuperx/muffin/internal/engine"
	"github.com/zSuperx/muffin/internal/logging/events"
	"github.com/zSuperx/muffin/internal/preset"
	"github.com/zSuperx/muffin/internal/tmux"
	"github.com/zSuperx/muffin/internal/ui"
)

// ErrInterrupted reports that the user quit the popup with ctrl+c.
var ErrInterrupted = errors.New("interrupted")

// UnknownPresetError reports a --start-preset name with no matching
// preset or running session.
type UnknownPresetError struct {
	Name string
}

func (e *UnknownPresetError) Error() string {
	return fmt.Sprintf("unknown preset or session %q", e.Name)
}

// Config describes user-provided application options.
type Config struct {
	SocketPath   string
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
	ExitOnSwitch bool
	PresetPath   string
	StartPreset  string
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	socketPath, err := tmux.ResolveSocketPath(cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("resolve socket path: %w", err)
	}
	presets, warnings, err := loadPresets(cfg.PresetPath)
	if err != nil {
		return err
	}
	eng := engine.New(socketPath)
	snapshot, err := eng.Refresh()
	if err != nil {
		return err
	}

	if cfg.StartPreset != "" {
		return startPreset(eng, socketPath, cfg.StartPreset, presets, snapshot)
	}

	model := ui.NewModel(ui.Config{
		SocketPath:   socketPath,
		Width:        cfg.Width,
		Height:       cfg.Height,
		ShowFooter:   cfg.ShowFooter,
		Verbose:      cfg.Verbose,
		ExitOnSwitch: cfg.ExitOnSwitch,
		Presets:      presets,
		Warnings:     warnings,
		Snapshot:     snapshot,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	final, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	if err != nil {
		return err
	}
	if m, ok := final.(*ui.Model); ok && m.Interrupted() {
		return ErrInterrupted
	}
	return nil
}

// startPreset realizes one candidate by name and attaches to it,
// bypassing the popup entirely.
func startPreset(eng *engine.Engine, socketPath, name string, presets []preset.Record, snapshot tmux.SessionSnapshot) error {
	candidates := engine.BuildCandidates(presets, snapshot)
	for _, candidate := range candidates {
		if candidate.Name != name {
			continue
		}
		target, err := eng.Realize(candidate)
		if err != nil {
			return err
		}
		if err := tmux.SwitchClient(socketPath, target); err != nil {
			return err
		}
		events.Session.Switch(target)
		return nil
	}
	return &UnknownPresetError{Name: name}
}

// ListPresets prints the configured presets without touching tmux.
func ListPresets(cfg Config, w io.Writer) error {
	presets, warnings, err := loadPresets(cfg.PresetPath)
	if err != nil {
		return err
	}
	for _, rec := range presets {
		windows := rec.WindowCount()
		noun := "windows"
		if windows == 1 {
			noun = "window"
		}
		if rec.Dir != "" {
			fmt.Fprintf(w, "%s\t%d %s\t%s\n", rec.Name, windows, noun, rec.Dir)
		} else {
			fmt.Fprintf(w, "%s\t%d %s\n", rec.Name, windows, noun)
		}
	}
	for _, warning := range warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	return nil
}

// loadPresets resolves the preset file path and loads it. A missing
// file at the default location is not an error; the popup then shows
// live sessions only. An explicitly configured path must exist.
func loadPresets(path string) ([]preset.Record, []preset.Warning, error) {
	explicit := path != ""
	if !explicit {
		resolved, err := preset.DefaultPath()
		if err != nil {
			return nil, nil, nil
		}
		path = resolved
	}
	records, warnings, err := preset.Load(path)
	if err != nil {
		var loadErr *preset.LoadError
		if !explicit && errors.As(err, &loadErr) && errors.Is(loadErr.Err, fs.ErrNotExist) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	for _, warning := range warnings {
		events.Preset.Warning(path, warning.String())
	}
	events.Preset.Loaded(path, len(records), len(warnings))
	return records, warnings, nil
}
