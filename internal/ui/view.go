package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; use ANSI-aware truncation
}

const (
	browseFooter    = "j/k move  enter switch  / filter  n new  r rename  d kill  q quit"
	filteringFooter = "↑/↓ move  enter switch  backspace delete  esc clear  ctrl+c quit"
)

// View implements tea.Model.
func (m *Model) View() string {
	switch m.mode {
	case ModeSessionForm:
		if m.sessionForm != nil {
			return m.viewSessionForm()
		}
	case ModeKillConfirm:
		return m.viewKillConfirm()
	}
	return m.viewList()
}

func (m *Model) viewList() string {
	lines := make([]styledLine, 0, 16)
	lines = append(lines, styledLine{text: m.header(), style: styles.Header})
	m.syncViewport()
	start := 0
	displayItems := m.list.Items
	if maxItems := m.maxVisibleItems(); maxItems > 0 && len(displayItems) > maxItems {
		start = m.list.ViewportOffset
		if start < 0 {
			start = 0
		}
		if start+maxItems > len(displayItems) {
			start = len(displayItems) - maxItems
			if start < 0 {
				start = 0
			}
			m.list.ViewportOffset = start
		}
		displayItems = displayItems[start : start+maxItems]
	}
	if len(m.list.Items) == 0 {
		msg := "(no sessions or presets)"
		if m.list.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", m.list.Filter)
		}
		lines = append(lines, styledLine{text: msg, style: styles.Info})
	} else {
		for i, item := range displayItems {
			lines = append(lines, m.buildItemLine(item.Label, start+i))
		}
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		footer := browseFooter
		if m.mode == ModeFiltering {
			footer = filteringFooter
		}
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: footer, style: styles.Footer})
	}
	// Reserve 2 rows for the bottom bar (error/status + prompt).
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)

	var statusLine styledLine
	if m.errMsg != "" {
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	bottomLines := []styledLine{
		statusLine,
		{text: m.filterPrompt(), raw: true},
	}
	bottomLines = applyWidth(bottomLines, m.width)
	lines = append(lines, bottomLines...)
	return renderLines(lines)
}

func (m *Model) header() string {
	total := len(m.list.Full)
	shown := len(m.list.Items)
	if shown != total {
		return fmt.Sprintf("sessions (%d/%d)", shown, total)
	}
	return "sessions"
}

// buildItemLine constructs a single styledLine for a list row.
func (m *Model) buildItemLine(label string, idx int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if idx == m.list.Cursor {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := indicator + " " + label
	if m.width > 0 {
		if pad := m.width - len([]rune(fullText)); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the ▌ character
	}
}

func (m *Model) viewSessionForm() string {
	lines := []string{m.sessionForm.Title(), "", m.sessionForm.InputView()}
	if err := m.sessionForm.Error(); err != "" {
		rendered := err
		if styles.Error != nil {
			rendered = styles.Error.Render(err)
		}
		lines = append(lines, "", rendered)
	}
	help := m.sessionForm.Help()
	if styles.FormHelp != nil {
		help = styles.FormHelp.Render(help)
	}
	lines = append(lines, "", help)
	if styles.FormTitle != nil {
		lines[0] = styles.FormTitle.Render(lines[0])
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewKillConfirm() string {
	title := fmt.Sprintf("Kill session %s?", m.killTarget)
	if styles.FormTitle != nil {
		title = styles.FormTitle.Render(title)
	}
	help := "y/enter kill  n/esc cancel"
	if styles.FormHelp != nil {
		help = styles.FormHelp.Render(help)
	}
	return strings.Join([]string{title, "", help}, "\n")
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.syncViewport()
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 3 // header + bottom bar (error/status + filter prompt)
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if w := lipgloss.Width(text); w > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{
			text:          text,
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
			raw:           line.raw,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
