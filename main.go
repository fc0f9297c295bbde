package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zSuperx/muffin/internal/app"
	"github.com/zSuperx/muffin/internal/config"
	"github.com/zSuperx/muffin/internal/logging"
	"github.com/zSuperx/muffin/internal/logging/events"
	"github.com/zSuperx/muffin/internal/preset"
)

const (
	exitOK        = 0
	exitError     = 1
	exitUsage     = 2
	exitInterrupt = 130
)

func main() {
	os.Exit(run(os.Args[1:], os.Environ()))
}

func run(args, environ []string) int {
	cfg := config.FromEnv(environ)
	ran := false

	root := &cobra.Command{
		Use:           "muffin",
		Short:         "tmux session switcher popup",
		Long:          "muffin lists running tmux sessions alongside declarative presets\nand switches the attached client to the one you pick.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ran = true
			if err := config.Validate(cfg); err != nil {
				return err
			}
			config.Finalize(&cfg, args)
			logging.Configure(cfg.Logging.FilePath)
			logging.SetTraceEnabled(cfg.Logging.Trace)
			events.App.Start(startupTracePayload(cfg))
			if cfg.ListPresets {
				return app.ListPresets(cfg.App, cmd.OutOrStdout())
			}
			return app.Run(cfg.App)
		},
	}

	flags := root.Flags()
	flags.StringVarP(&cfg.App.PresetPath, "presets", "p", cfg.App.PresetPath, "path to the preset file")
	flags.StringVarP(&cfg.App.StartPreset, "start-preset", "s", cfg.App.StartPreset, "realize one preset by name and attach without the popup")
	flags.BoolVarP(&cfg.ListPresets, "list-presets", "l", false, "print configured presets and exit")
	flags.BoolVarP(&cfg.App.ExitOnSwitch, "exit-on-switch", "e", cfg.App.ExitOnSwitch, "close the popup after switching sessions")
	flags.StringVar(&cfg.App.SocketPath, "socket", cfg.App.SocketPath, "path to the tmux socket (overrides environment detection)")
	flags.IntVar(&cfg.App.Width, "width", cfg.App.Width, "desired viewport width in cells (0 uses terminal width)")
	flags.IntVar(&cfg.App.Height, "height", cfg.App.Height, "desired viewport height in rows (0 uses terminal height)")
	flags.BoolVar(&cfg.App.ShowFooter, "footer", cfg.App.ShowFooter, "enable footer hint row (disabled by default)")
	flags.BoolVar(&cfg.App.Verbose, "verbose", cfg.App.Verbose, "print success messages for actions")
	flags.StringVar(&cfg.Logging.FilePath, "log-file", cfg.Logging.FilePath, "path to the log file")
	flags.BoolVar(&cfg.Logging.Trace, "trace", cfg.Logging.Trace, "enable verbose JSON trace logging")

	root.SetArgs(args)
	err := root.Execute()
	code := classifyExit(err, ran)
	switch {
	case err == nil || errors.Is(err, app.ErrInterrupted):
	case code == exitUsage:
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
	default:
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	events.App.Exit(code)
	return code
}

func classifyExit(err error, ran bool) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, app.ErrInterrupted) {
		return exitInterrupt
	}
	if !ran {
		// Execute failed before RunE: flag parsing or argument errors.
		return exitUsage
	}
	var inputErr *config.InputError
	var loadErr *preset.LoadError
	var unknownErr *app.UnknownPresetError
	if errors.As(err, &inputErr) || errors.As(err, &loadErr) || errors.As(err, &unknownErr) {
		return exitUsage
	}
	return exitError
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		} else {
			entry.IsTerminal = false
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
