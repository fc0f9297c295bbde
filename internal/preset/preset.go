package preset

import (
	"fmt"
	"strings"
)

// Package preset defines the declarative session template format.
//
// A preset describes a tmux session to create on demand: a name, a working
// directory, and an ordered list of windows. Each window holds either a
// single pane or a split plan, a recursive tree of panes whose sizes are
// percentages of the enclosing split.

// Record is one preset entry. Records are immutable after loading.
type Record struct {
	Name string `yaml:"name"`
	Dir  string `yaml:"dir,omitempty"`

	// ExitOnSwitch overrides the global exit-on-switch setting when set.
	ExitOnSwitch *bool `yaml:"exit_on_switch,omitempty"`

	Windows []Window `yaml:"windows,omitempty"`
}

// Window names a tmux window and embeds its layout root.
type Window struct {
	Name string `yaml:"name,omitempty"`
	Node `yaml:",inline"`
}

// Node is one element of a window layout: a pane when Split is empty,
// otherwise a split holding two or more child nodes.
type Node struct {
	Dir     string `yaml:"dir,omitempty"`
	Command string `yaml:"command,omitempty"`

	// Size is the percentage of the parent split this node occupies.
	// Zero means "unspecified"; sibling sizes are then distributed evenly.
	Size int `yaml:"size,omitempty"`

	Split string `yaml:"split,omitempty"` // SplitHorizontal or SplitVertical
	Panes []Node `yaml:"panes,omitempty"`
}

// Split directions. Horizontal places panes side by side, vertical
// stacks them, matching tmux's split-window -h and -v.
const (
	SplitHorizontal = "h"
	SplitVertical   = "v"
)

// IsSplit reports whether the node is a split rather than a single pane.
func (n Node) IsSplit() bool {
	return n.Split != ""
}

// WindowCount returns the number of windows the record will create.
func (r Record) WindowCount() int {
	if len(r.Windows) == 0 {
		return 1
	}
	return len(r.Windows)
}

// EffectiveWindows returns the record's windows, substituting the implicit
// single-pane "main" window when none are declared.
func (r Record) EffectiveWindows() []Window {
	if len(r.Windows) > 0 {
		return r.Windows
	}
	return []Window{{Name: "main", Node: Node{Dir: r.Dir}}}
}

// Validate checks structural constraints: the record needs a name, splits
// need direction "h" or "v" with at least two children, and explicit sibling
// sizes must sum to 100.
func Validate(rec Record) error {
	if strings.TrimSpace(rec.Name) == "" {
		return fmt.Errorf("preset name required")
	}
	for i, window := range rec.Windows {
		if err := validateNode(window.Node); err != nil {
			label := window.Name
			if label == "" {
				label = fmt.Sprintf("#%d", i)
			}
			return fmt.Errorf("window %s: %w", label, err)
		}
	}
	return nil
}

func validateNode(node Node) error {
	if !node.IsSplit() {
		if len(node.Panes) > 0 {
			return fmt.Errorf("panes given without a split direction")
		}
		return nil
	}
	if node.Split != SplitHorizontal && node.Split != SplitVertical {
		return fmt.Errorf("unknown split direction %q", node.Split)
	}
	if len(node.Panes) < 2 {
		return fmt.Errorf("split needs at least two panes")
	}
	sum := 0
	explicit := 0
	for _, child := range node.Panes {
		if child.Size < 0 || child.Size > 100 {
			return fmt.Errorf("pane size %d out of range", child.Size)
		}
		if child.Size > 0 {
			explicit++
		}
		sum += child.Size
	}
	if explicit > 0 && explicit < len(node.Panes) {
		return fmt.Errorf("either all or none of a split's pane sizes may be set")
	}
	if explicit == len(node.Panes) && sum != 100 {
		return fmt.Errorf("pane sizes add up to %d, expected 100", sum)
	}
	for _, child := range node.Panes {
		if err := validateNode(child); err != nil {
			return err
		}
	}
	return nil
}

// Normalize fills in derived fields: omitted sibling sizes become an even
// distribution, and window/pane directories inherit from their parent.
func Normalize(rec Record) Record {
	out := rec
	out.Windows = make([]Window, len(rec.Windows))
	for i, window := range rec.Windows {
		if window.Dir == "" {
			window.Dir = rec.Dir
		}
		window.Node = normalizeNode(window.Node, window.Dir)
		out.Windows[i] = window
	}
	return out
}

func normalizeNode(node Node, parentDir string) Node {
	if node.Dir == "" {
		node.Dir = parentDir
	}
	if !node.IsSplit() {
		return node
	}
	allZero := true
	for _, child := range node.Panes {
		if child.Size != 0 {
			allZero = false
			break
		}
	}
	children := make([]Node, len(node.Panes))
	for i, child := range node.Panes {
		if allZero {
			child.Size = evenShare(len(node.Panes), i)
		}
		children[i] = normalizeNode(child, node.Dir)
	}
	node.Panes = children
	return node
}

// evenShare splits 100 into count parts; the last part absorbs the remainder
// so that the shares always sum to exactly 100.
func evenShare(count, index int) int {
	base := 100 / count
	if index == count-1 {
		return 100 - base*(count-1)
	}
	return base
}
