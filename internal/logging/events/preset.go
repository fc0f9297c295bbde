package events

import "github.com/zSuperx/muffin/internal/logging"

type PresetTracer struct{}

var Preset = PresetTracer{}

func (PresetTracer) Loaded(path string, count, warnings int) {
	logging.Trace("preset.loaded", map[string]interface{}{
		"path":     path,
		"count":    count,
		"warnings": warnings,
	})
}

func (PresetTracer) Warning(path, message string) {
	logging.Trace("preset.warning", map[string]interface{}{"path": path, "message": message})
}

func (PresetTracer) Spawn(name string, windows int) {
	logging.Trace("preset.spawn", map[string]interface{}{"name": name, "windows": windows})
}

func (PresetTracer) Realize(name, outcome string) {
	logging.Trace("preset.realize", map[string]interface{}{"name": name, "outcome": outcome})
}
