package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zSuperx/muffin/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App         app.Config
	Logging     Logging
	ListPresets bool
	Flags       map[string]string
	Args        []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envSocketPath   = "MUFFIN_SOCKET"
	envWidth        = "MUFFIN_WIDTH"
	envHeight       = "MUFFIN_HEIGHT"
	envShowFooter   = "MUFFIN_FOOTER"
	envVerbose      = "MUFFIN_VERBOSE"
	envTrace        = "MUFFIN_TRACE"
	envLogFile      = "MUFFIN_LOG_FILE"
	envPresetPath   = "MUFFIN_PRESETS"
	envExitOnSwitch = "MUFFIN_EXIT_ON_SWITCH"
)

// InputError marks configuration problems that map to the usage exit code.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string { return e.Reason }

// FromEnv builds the configuration defaults from environment variables.
// Command-line flags are bound over these values by the CLI layer.
func FromEnv(environ []string) Config {
	env := parseEnv(environ)
	return Config{
		App: app.Config{
			SocketPath:   envOrDefault(env, envSocketPath, ""),
			Width:        envOrInt(env, envWidth, 0),
			Height:       envOrInt(env, envHeight, 0),
			ShowFooter:   envOrBool(env, envShowFooter, false),
			Verbose:      envOrBool(env, envVerbose, false),
			ExitOnSwitch: envOrBool(env, envExitOnSwitch, false),
			PresetPath:   envOrDefault(env, envPresetPath, ""),
		},
		Logging: Logging{
			FilePath: envOrDefault(env, envLogFile, ""),
			Trace:    envOrBool(env, envTrace, false),
		},
	}
}

// Finalize records the effective flag values for trace logging.
func Finalize(cfg *Config, args []string) {
	cfg.Flags = map[string]string{
		"socket":       cfg.App.SocketPath,
		"width":        strconv.Itoa(cfg.App.Width),
		"height":       strconv.Itoa(cfg.App.Height),
		"footer":       strconv.FormatBool(cfg.App.ShowFooter),
		"verbose":      strconv.FormatBool(cfg.App.Verbose),
		"exitOnSwitch": strconv.FormatBool(cfg.App.ExitOnSwitch),
		"presets":      cfg.App.PresetPath,
		"startPreset":  cfg.App.StartPreset,
		"listPresets":  strconv.FormatBool(cfg.ListPresets),
		"trace":        strconv.FormatBool(cfg.Logging.Trace),
		"logFile":      cfg.Logging.FilePath,
	}
	cfg.Args = append([]string(nil), args...)
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.Width < 0 {
		return &InputError{Reason: fmt.Sprintf("width must be >= 0 (got %d)", cfg.App.Width)}
	}
	if cfg.App.Height < 0 {
		return &InputError{Reason: fmt.Sprintf("height must be >= 0 (got %d)", cfg.App.Height)}
	}
	if cfg.ListPresets && cfg.App.StartPreset != "" {
		return &InputError{Reason: "--list-presets and --start-preset are mutually exclusive"}
	}
	return nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
