package events

import "github.com/zSuperx/muffin/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Exit(code int) {
	logging.Trace("app.exit", map[string]interface{}{"code": code})
}
