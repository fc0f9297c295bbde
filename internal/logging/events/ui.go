package events

import "github.com/zSuperx/muffin/internal/logging"

type UITracer struct{}

var UI = UITracer{}

func (UITracer) Cursor(index int) {
	logging.Trace("ui.cursor", map[string]interface{}{"index": index})
}

func (UITracer) Mode(mode string) {
	logging.Trace("ui.mode", map[string]interface{}{"mode": mode})
}

func (UITracer) Confirm(name, source, filter string) {
	logging.Trace("ui.confirm", map[string]interface{}{
		"name":   name,
		"source": source,
		"filter": filter,
	})
}

func (UITracer) Quit(reason string) {
	logging.Trace("ui.quit", map[string]interface{}{"reason": reason})
}

type FilterTracer struct{}

var Filter = FilterTracer{}

func (FilterTracer) Append(query string) {
	logging.Trace("filter.append", map[string]interface{}{"query": query})
}

func (FilterTracer) Backspace(query string) {
	logging.Trace("filter.backspace", map[string]interface{}{"query": query})
}

func (FilterTracer) WordBackspace(query string) {
	logging.Trace("filter.word_backspace", map[string]interface{}{"query": query})
}

func (FilterTracer) Cleared() {
	logging.Trace("filter.cleared", nil)
}

func (FilterTracer) Cursor(position int) {
	logging.Trace("filter.cursor", map[string]interface{}{"position": position})
}
