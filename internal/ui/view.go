package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/ntustvocab/vocabterm/internal/format/table"
	"github.com/ntustvocab/vocabterm/internal/menu"
	"github.com/ntustvocab/vocabterm/internal/state"
)

const (
	wordsFooter    = "tab part  shift+tab topic  enter expand  ctrl+g layout  ctrl+r practice  ctrl+p menu  esc quit"
	dropdownFooter = "↑/↓ move  enter select  type to filter  esc back"
	bottomBarRows  = 2
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text already carries ANSI styling
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.mode == ModePractice {
		return m.viewPractice()
	}
	if len(m.stack) > 1 {
		return m.viewDropdown()
	}
	if m.layout == menu.LayoutList && m.detailPanelWidth() > 0 {
		return m.viewListWithDetail()
	}
	return m.viewWords()
}

// viewWords renders the word list in a single column: cards in grid layout,
// table rows with inline details otherwise.
func (m *Model) viewWords() string {
	root := m.wordsLevel()
	lines := m.topLines()
	if m.layout == menu.LayoutGrid {
		lines = append(lines, m.gridLines(root)...)
	} else {
		lines = append(lines, m.listLines(root, m.width, true)...)
	}
	lines = append(lines, m.trailerLines(wordsFooter)...)
	return m.finishView(lines)
}

// viewListWithDetail renders the word table on the left and the detail
// panel for the word under the cursor on the right.
func (m *Model) viewListWithDetail() string {
	root := m.wordsLevel()
	listW := m.width - m.detailPanelWidth()
	panelW := m.detailPanelWidth()

	contentLines := m.topLines()
	contentLines = append(contentLines, m.listLines(root, listW, false)...)
	contentLines = append(contentLines, m.trailerLines(wordsFooter)...)

	panelH := m.height - bottomBarRows
	if panelH < 3 {
		panelH = 3
	}
	if len(contentLines) > panelH {
		contentLines = contentLines[:panelH]
	}
	for len(contentLines) < panelH {
		contentLines = append(contentLines, styledLine{})
	}
	contentLines = applyWidth(contentLines, listW)
	leftRows := strings.Split(renderLines(contentLines), "\n")
	for i, row := range leftRows {
		w := lipgloss.Width(row)
		if w > listW {
			leftRows[i] = truncate.StringWithTail(row, uint(listW-1), "…")
		} else if w < listW {
			leftRows[i] = row + strings.Repeat(" ", listW-w)
		}
	}
	left := strings.Join(leftRows, "\n")
	right := m.renderDetailPanel(m.currentWord(), panelW, panelH)
	top := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return top + "\n" + renderLines(applyWidth(m.bottomBar(), m.width))
}

// viewDropdown renders the open Part/Topic/menu level.
func (m *Model) viewDropdown() string {
	lines := []styledLine{{text: m.menuHeader(), style: m.styles.Header}}
	current := m.currentLevel()
	m.syncViewport(current)
	start := 0
	display := current.Items
	if maxItems := m.maxVisibleItems(); maxItems > 0 && len(display) > maxItems {
		start = current.ViewportOffset
		if start+maxItems > len(display) {
			start = len(display) - maxItems
			current.ViewportOffset = start
		}
		display = display[start : start+maxItems]
	}
	if len(current.Items) == 0 {
		msg := "(no entries)"
		if current.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", current.Filter)
		}
		lines = append(lines, styledLine{text: msg, style: m.styles.Info})
	}
	for i, item := range display {
		idx := start + i
		lines = append(lines, m.buildItemLine(item, idx, current, m.width))
	}
	lines = append(lines, m.trailerLines(dropdownFooter)...)
	return m.finishView(lines)
}

func (m *Model) finishView(lines []styledLine) string {
	lines = limitHeight(lines, m.height-bottomBarRows, m.width)
	lines = applyWidth(lines, m.width)
	lines = append(lines, applyWidth(m.bottomBar(), m.width)...)
	return renderLines(lines)
}

// topLines is the header plus any status lines shown above the words.
func (m *Model) topLines() []styledLine {
	header := m.menuHeader()
	if count := m.wordCountText(); count != "" {
		header += " · " + count
	}
	lines := []styledLine{{text: header, style: m.styles.Header}}
	if status, ok := m.statusLine(); ok {
		lines = append(lines, status)
	}
	if health, ok := m.healthLine(); ok {
		lines = append(lines, health)
	}
	return lines
}

func (m *Model) trailerLines(footer string) []styledLine {
	var lines []styledLine
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{}, styledLine{text: info, style: m.styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{}, styledLine{text: footer, style: m.styles.Footer})
	}
	return lines
}

func (m *Model) bottomBar() []styledLine {
	var status styledLine
	if m.errMsg != "" {
		status = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: m.styles.Error}
	}
	return []styledLine{status, {text: m.filterPrompt(), raw: true}}
}

func (m *Model) wordCountText() string {
	if m.selector.Status() != state.StatusIdle {
		return ""
	}
	words := m.selector.Words()
	root := m.wordsLevel()
	total := humanize.Comma(int64(len(words)))
	if root != nil && root.Filter != "" {
		return fmt.Sprintf("%s of %s words", humanize.Comma(int64(len(root.Items))), total)
	}
	if len(words) == 1 {
		return "1 word"
	}
	return total + " words"
}

// statusLine reports loading, failure and empty results. Failures are shown
// generically; details go to the log.
func (m *Model) statusLine() (styledLine, bool) {
	switch m.selector.Status() {
	case state.StatusLoading:
		return styledLine{text: "Loading…", style: m.styles.Loading}, true
	case state.StatusError:
		return styledLine{text: "Could not load words. Press ctrl+l to retry.", style: m.styles.Error}, true
	}
	if len(m.selector.Words()) == 0 {
		return styledLine{text: "No words found.", style: m.styles.Info}, true
	}
	return styledLine{}, false
}

func (m *Model) healthLine() (styledLine, bool) {
	checked := m.health.Checked()
	suffix := ""
	if !checked.IsZero() {
		suffix = " · checked " + humanize.Time(checked)
	}
	if warn, text := m.backendIssue(); warn {
		return styledLine{text: text + suffix, style: m.styles.Warning}, true
	}
	if m.verbose && m.health.Health() == state.HealthUp {
		return styledLine{text: "Backend up" + suffix, style: m.styles.Info}, true
	}
	return styledLine{}, false
}

func (m *Model) menuHeader() string {
	return strings.Join(m.headerSegments(), menuHeaderSeparator)
}

func (m *Model) headerSegments() []string {
	part, topic := selectionLabels(m.selector.Pending())
	segments := []string{part, topic}
	for _, l := range m.stack[1:] {
		if title := strings.ToLower(strings.TrimSpace(l.Title)); title != "" {
			segments = append(segments, title)
		}
	}
	return segments
}

// buildItemLine constructs a single styledLine for a list entry. Dropdown
// entries carry a mark for the value already in effect.
func (m *Model) buildItemLine(item menu.Item, idx int, current *level, width int) styledLine {
	indicator := "▌"
	lineStyle := m.styles.Item
	indicatorStyle := m.styles.ItemIndicator
	mark := ""
	if current.ID != wordsLevelID {
		mark = "  "
		if current.IsCurrent(item.ID) {
			mark = "✓ "
		}
	}
	if idx == current.Cursor {
		indicatorStyle = m.styles.SelectedItemIndicator
		lineStyle = m.styles.SelectedItem
	}
	fullText := indicator + " " + mark + item.Label
	if width > 0 {
		fullText = table.Pad(fullText, width)
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
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
	for _, l := range m.stack {
		m.syncViewport(l)
	}
	return nil
}

// chromeRows counts the rows around the item area.
func (m *Model) chromeRows() int {
	used := bottomBarRows + 1
	if len(m.stack) <= 1 {
		if _, ok := m.statusLine(); ok {
			used++
		}
		if _, ok := m.healthLine(); ok {
			used++
		}
	}
	if m.currentInfo() != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	return used
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	remain := m.height - m.chromeRows()
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
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
		if line.raw {
			if lipgloss.Width(line.text) > width {
				line.text = truncate.StringWithTail(line.text, uint(width-1), "…")
			}
		} else {
			line.text = truncateText(line.text, width)
		}
		result[i] = line
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
	if width <= 0 || runewidth.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return runewidth.Truncate(text, 1, "")
	}
	return table.Truncate(text, width)
}
