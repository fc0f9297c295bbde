package tmux

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/zSuperx/muffin/internal/preset"
)

const paneTargetFormat = "#{session_name}:#{window_index}.#{pane_index}"

// SpawnPreset materialises a preset as a detached tmux session: one
// window per declared window, split layouts applied recursively, and
// each pane seeded with its working directory and command.
func SpawnPreset(socketPath string, rec preset.Record) error {
	windows := rec.EffectiveWindows()
	if err := runTmux(socketPath, "new-session", "-d", "-s", rec.Name); err != nil {
		return fmt.Errorf("create session %s: %w", rec.Name, err)
	}
	for i, w := range windows {
		if i == 0 {
			if err := runTmux(socketPath, "rename-window", "-t", rec.Name+":0", w.Name); err != nil {
				return fmt.Errorf("rename window %s: %w", w.Name, err)
			}
		} else {
			if err := runTmux(socketPath, "new-window", "-t", rec.Name, "-n", w.Name); err != nil {
				return fmt.Errorf("create window %s: %w", w.Name, err)
			}
		}
		target := fmt.Sprintf("%s:%s.0", rec.Name, w.Name)
		if err := applyLayout(socketPath, target, w.Node); err != nil {
			return fmt.Errorf("layout window %s: %w", w.Name, err)
		}
	}
	return nil
}

// applyLayout walks a pane tree depth-first. Split percentages are
// computed against the remaining share of the current area, since each
// split-window call carves the new pane out of what is left.
func applyLayout(socketPath, target string, node preset.Node) error {
	if !node.IsSplit() {
		return setupPane(socketPath, target, node)
	}
	remaining := 0
	for _, child := range node.Panes {
		remaining += child.Size
	}
	current := target
	for i, child := range node.Panes {
		if i == len(node.Panes)-1 {
			return applyLayout(socketPath, current, child)
		}
		percent := int(math.Round(float64(remaining-child.Size) / float64(remaining) * 100))
		next, err := splitPane(socketPath, current, node.Split, percent)
		if err != nil {
			return err
		}
		if err := applyLayout(socketPath, current, child); err != nil {
			return err
		}
		current = next
		remaining -= child.Size
	}
	return nil
}

func splitPane(socketPath, target, direction string, percent int) (string, error) {
	flag := "-v"
	if direction == preset.SplitHorizontal {
		flag = "-h"
	}
	args := append(baseArgs(socketPath),
		"split-window", "-t", target, flag, "-p", strconv.Itoa(percent),
		"-P", "-F", paneTargetFormat)
	output, err := runExecCommand("tmux", args...).Output()
	if err != nil {
		return "", fmt.Errorf("split %s: %w", target, err)
	}
	pane := strings.TrimSpace(string(output))
	if pane == "" {
		return "", fmt.Errorf("split %s: empty pane target", target)
	}
	return pane, nil
}

func setupPane(socketPath, target string, node preset.Node) error {
	if node.Dir != "" {
		if err := sendKeys(socketPath, target, "cd "+node.Dir); err != nil {
			return err
		}
	}
	if node.Command != "" {
		if err := sendKeys(socketPath, target, node.Command); err != nil {
			return err
		}
	}
	return nil
}

func sendKeys(socketPath, target, line string) error {
	args := append(baseArgs(socketPath), "send-keys", "-t", target, line, "Enter")
	if err := runExecCommand("tmux", args...).Run(); err != nil {
		return fmt.Errorf("send-keys %s: %w", target, err)
	}
	return nil
}

func runTmux(socketPath string, args ...string) error {
	return runExecCommand("tmux", append(baseArgs(socketPath), args...)...).Run()
}
