package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/ntustvocab/vocabterm/internal/menu"
	"github.com/ntustvocab/vocabterm/internal/vocab"
)

const (
	detailPanelMinWidth = 36  // below this the list is shown without a panel
	detailPanelFraction = 0.5 // share of the width given to the panel
	detailScrollStep    = 3
)

var (
	detailBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	detailScrollStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// detailPanelWidth returns the width of the side panel, or 0 when the
// terminal is too narrow to split.
func (m *Model) detailPanelWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := int(float64(m.width) * detailPanelFraction)
	if w < detailPanelMinWidth {
		return 0
	}
	return w
}

func (m *Model) hasDetailPanel() bool {
	return m.mode == ModeWords && len(m.stack) == 1 && m.layout == menu.LayoutList && m.detailPanelWidth() > 0
}

// renderDetailPanel draws a bordered box exactly height rows tall and
// totalWidth columns wide describing word.
func (m *Model) renderDetailPanel(word *vocab.WordEntry, totalWidth, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)
	innerW := totalWidth - 2
	innerH := height - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	title := "Details"
	scrollInfo := ""
	var content []string
	if word == nil {
		content = []string{"No word selected."}
	} else {
		title = word.Word
		all := wordDetailLines(*word, innerW)
		maxOffset := len(all) - innerH
		if maxOffset < 0 {
			maxOffset = 0
		}
		if m.detailScroll > maxOffset {
			m.detailScroll = maxOffset
		}
		if m.detailScroll < 0 {
			m.detailScroll = 0
		}
		end := m.detailScroll + innerH
		if end > len(all) {
			end = len(all)
		}
		content = all[m.detailScroll:end]
		if len(all) > innerH {
			scrollInfo = fmt.Sprintf(" %d/%d ", end, len(all))
		}
	}

	titleSeg := " " + title + " "
	dashes := totalWidth - 4 - lipgloss.Width(titleSeg) - lipgloss.Width(scrollInfo)
	if dashes < 0 {
		scrollInfo = ""
		dashes = totalWidth - 4 - lipgloss.Width(titleSeg)
	}
	if dashes < 0 {
		titleSeg = " " + truncate.StringWithTail(title, uint(max(totalWidth-7, 1)), "…") + " "
		dashes = totalWidth - 4 - lipgloss.Width(titleSeg)
	}
	if dashes < 0 {
		dashes = 0
	}
	rows := make([]string, 0, height)
	rows = append(rows, detailBorderStyle.Render(tlc+hz)+
		m.styles.DetailTitle.Render(titleSeg)+
		detailBorderStyle.Render(strings.Repeat(hz, dashes))+
		detailScrollStyle.Render(scrollInfo)+
		detailBorderStyle.Render(hz+trc))
	for i := 0; i < innerH; i++ {
		var line string
		if i < len(content) {
			line = content[i]
		}
		w := lipgloss.Width(line)
		if w > innerW {
			line = truncate.StringWithTail(line, uint(innerW-1), "…")
			w = lipgloss.Width(line)
		}
		if w < innerW {
			line += strings.Repeat(" ", innerW-w)
		}
		style := m.styles.DetailBody
		switch strings.TrimSpace(line) {
		case "Definitions", "Verb forms", "Audio":
			style = m.styles.DetailLabel
		}
		rows = append(rows, detailBorderStyle.Render(vt)+style.Render(line)+detailBorderStyle.Render(vt))
	}
	rows = append(rows, detailBorderStyle.Render(blc+strings.Repeat(hz, innerW)+brc))
	return strings.Join(rows, "\n")
}

// handleMouseMsg scrolls the detail panel with the wheel.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok || !m.hasDetailPanel() {
		return nil
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		m.detailScroll -= detailScrollStep
		if m.detailScroll < 0 {
			m.detailScroll = 0
		}
	case tea.MouseButtonWheelDown:
		// clamped against the content height when the panel renders
		m.detailScroll += detailScrollStep
	}
	return nil
}
