package ui

import (
	"fmt"

	"github.com/zSuperx/muffin/internal/engine"
	"github.com/zSuperx/muffin/internal/format/table"
	uistate "github.com/zSuperx/muffin/internal/ui/state"
)

// buildItems renders candidates into aligned list rows: name, window
// count, and a badge describing the candidate's state.
func buildItems(candidates []engine.Candidate) []uistate.Item {
	rows := make([][]string, len(candidates))
	for i, c := range candidates {
		rows[i] = []string{c.Name, windowColumn(c), badgeColumn(c)}
	}
	lines := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight, table.AlignLeft})
	items := make([]uistate.Item, len(candidates))
	for i, c := range candidates {
		label := c.Name
		if i < len(lines) {
			label = lines[i]
		}
		items[i] = uistate.Item{ID: c.Name, Label: label}
	}
	return items
}

func windowColumn(c engine.Candidate) string {
	count := 0
	switch {
	case c.Session != nil:
		count = c.Session.Windows
	case c.Preset != nil:
		count = c.Preset.WindowCount()
	}
	if count == 1 {
		return "1 window"
	}
	return fmt.Sprintf("%d windows", count)
}

func badgeColumn(c engine.Candidate) string {
	if c.Source == engine.SourcePreset {
		return "[preset]"
	}
	if c.Session != nil && c.Session.Current {
		return "(current)"
	}
	if c.Session != nil && c.Session.Attached {
		return "(attached)"
	}
	return ""
}
