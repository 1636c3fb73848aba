package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	hardwrap "github.com/muesli/reflow/wrap"
	"github.com/ntustvocab/vocabterm/internal/format/table"
	"github.com/ntustvocab/vocabterm/internal/menu"
	"github.com/ntustvocab/vocabterm/internal/vocab"
)

const (
	cardWidth          = 30
	cardHeight         = 5
	defaultGridColumns = 3
	listWordWidth      = 20
	listPOSWidth       = 10
)

func (m *Model) gridColumns() int {
	if m.width <= 0 {
		return defaultGridColumns
	}
	if cols := m.width / cardWidth; cols > 1 {
		return cols
	}
	return 1
}

func (m *Model) gridRows() int {
	if m.height <= 0 {
		return 1 << 16
	}
	rows := (m.height - m.chromeRows()) / cardHeight
	if rows < 1 {
		return 1
	}
	return rows
}

// gridWindow keeps the cursor's row on screen and returns the visible item
// range. ViewportOffset always holds the index of a row's first card.
func (m *Model) gridWindow(l *level) (int, int) {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return 0, 0
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= n {
		l.Cursor = n - 1
	}
	cols := m.gridColumns()
	rows := m.gridRows()
	cursorRow := l.Cursor / cols
	offset := l.ViewportOffset / cols
	if cursorRow < offset {
		offset = cursorRow
	}
	if cursorRow >= offset+rows {
		offset = cursorRow - rows + 1
	}
	l.ViewportOffset = offset * cols
	end := l.ViewportOffset + rows*cols
	if end > n {
		end = n
	}
	return l.ViewportOffset, end
}

func (m *Model) gridLines(l *level) []styledLine {
	if empty, ok := m.emptyFilterLine(l); ok {
		return []styledLine{empty}
	}
	ctx := m.menuContext()
	cols := m.gridColumns()
	start, end := m.gridWindow(l)
	var lines []styledLine
	for rowStart := start; rowStart < end; rowStart += cols {
		rowEnd := rowStart + cols
		if rowEnd > end {
			rowEnd = end
		}
		cards := make([]string, 0, cols)
		for i := rowStart; i < rowEnd; i++ {
			item := l.Items[i]
			entry, ok := menu.WordAt(ctx, item)
			if !ok {
				entry = vocab.WordEntry{Word: item.Label}
			}
			cards = append(cards, m.renderCard(entry, i == l.Cursor, l.IsExpanded(item.ID)))
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
		for _, text := range strings.Split(row, "\n") {
			lines = append(lines, styledLine{text: text, raw: true})
		}
	}
	return lines
}

func (m *Model) renderCard(w vocab.WordEntry, selected, expanded bool) string {
	inner := cardWidth - 4
	word := table.Truncate(w.Word, inner)
	head := m.styles.Word.Render(word)
	if tags := w.POSTags(); len(tags) > 0 {
		if rest := inner - runewidth.StringWidth(word) - 1; rest > 1 {
			head += " " + m.styles.POS.Render(table.Truncate(strings.Join(tags, "/"), rest))
		}
	}
	lines := []string{
		head,
		m.styles.Pron.Render(table.Truncate(pronunciationSummary(w), inner)),
		m.styles.Meaning.Render(table.Truncate(w.Meaning, inner)),
	}
	if expanded {
		for _, line := range expandedLines(w, inner) {
			lines = append(lines, m.styles.DetailBody.Render(table.Truncate(line, inner)))
		}
	}
	style := m.styles.Card
	if selected {
		style = m.styles.SelectedCard
	}
	return style.Width(cardWidth - 2).Render(strings.Join(lines, "\n"))
}

// listLines renders one table row per word. With inline set, expanded words
// show their details beneath the row.
func (m *Model) listLines(l *level, width int, inline bool) []styledLine {
	if empty, ok := m.emptyFilterLine(l); ok {
		return []styledLine{empty}
	}
	m.syncViewport(l)
	start := 0
	display := l.Items
	if maxItems := m.maxVisibleItems(); maxItems > 0 && len(display) > maxItems {
		start = l.ViewportOffset
		if start+maxItems > len(display) {
			start = len(display) - maxItems
			l.ViewportOffset = start
		}
		display = display[start : start+maxItems]
	}
	ctx := m.menuContext()
	rows := make([][]string, len(display))
	entries := make([]vocab.WordEntry, len(display))
	for i, item := range display {
		entry, ok := menu.WordAt(ctx, item)
		if !ok {
			entry = vocab.WordEntry{Word: item.Label}
		}
		entries[i] = entry
		rows[i] = []string{entry.Word, strings.Join(entry.POSTags(), "/"), entry.Meaning}
	}
	formatted := table.FormatMax(rows, nil, []int{listWordWidth, listPOSWidth, 0})
	lines := make([]styledLine, 0, len(display))
	for i, text := range formatted {
		idx := start + i
		lines = append(lines, m.buildItemLine(menu.Item{ID: display[i].ID, Label: text}, idx, l, width))
		if inline && l.IsExpanded(display[i].ID) {
			for _, detail := range wordDetailLines(entries[i], width-4) {
				lines = append(lines, styledLine{text: "    " + detail, style: m.styles.DetailBody})
			}
		}
	}
	return lines
}

func (m *Model) emptyFilterLine(l *level) (styledLine, bool) {
	if l == nil {
		return styledLine{}, true
	}
	if len(l.Items) > 0 {
		return styledLine{}, false
	}
	if l.Filter != "" && len(m.selector.Words()) > 0 {
		return styledLine{text: fmt.Sprintf("No matches for %q", l.Filter), style: m.styles.Info}, true
	}
	return styledLine{}, true
}

func (m *Model) currentWord() *vocab.WordEntry {
	root := m.wordsLevel()
	if root == nil {
		return nil
	}
	item, ok := root.CurrentItem()
	if !ok {
		return nil
	}
	entry, ok := menu.WordAt(m.menuContext(), item)
	if !ok {
		return nil
	}
	return &entry
}

func pronunciationSummary(w vocab.WordEntry) string {
	parts := make([]string, 0, len(vocab.AudioLangs))
	for _, lang := range vocab.AudioLangs {
		if p, ok := w.Pronunciation(lang); ok && p.Pron != "" {
			parts = append(parts, strings.ToUpper(lang)+" "+p.Pron)
		}
	}
	return strings.Join(parts, "  ")
}

// wordDetailLines is the full description of w wrapped to width.
func wordDetailLines(w vocab.WordEntry, width int) []string {
	var lines []string
	if tags := w.POSTags(); len(tags) > 0 {
		lines = append(lines, strings.Join(tags, " / "))
	}
	if pron := pronunciationSummary(w); pron != "" {
		lines = append(lines, pron)
	}
	if w.Meaning != "" {
		lines = append(lines, wrap(w.Meaning, width)...)
	}
	return append(lines, expandedLines(w, width)...)
}

// expandedLines lists definitions, verb forms and recording links, the part
// hidden until a card is expanded.
func expandedLines(w vocab.WordEntry, width int) []string {
	var lines []string
	if len(w.Definitions) > 0 {
		lines = append(lines, "", "Definitions")
		for i, d := range w.Definitions {
			text := fmt.Sprintf("%d. %s", i+1, d.Definition)
			if pos := strings.TrimSpace(d.POS); pos != "" {
				text = fmt.Sprintf("%d. (%s) %s", i+1, pos, d.Definition)
			}
			lines = append(lines, wrap(text, width)...)
			if d.Translation != "" {
				lines = append(lines, wrap("   "+d.Translation, width)...)
			}
		}
	}
	if len(w.Verbs) > 0 {
		lines = append(lines, "", "Verb forms")
		for _, v := range w.Verbs {
			lines = append(lines, wrap(fmt.Sprintf("%s: %s", v.Type, v.Text), width)...)
		}
	}
	if recs := w.Recordings(); len(recs) > 0 {
		lines = append(lines, "", "Audio")
		for _, p := range recs {
			lines = append(lines, breakLink(strings.ToUpper(p.Lang)+"  "+p.URL, width)...)
		}
	}
	if !w.HasDetails() {
		lines = append(lines, "", "No further details.")
	}
	return lines
}

// breakLink splits text at width regardless of spaces so long links stay
// whole across lines instead of being truncated.
func breakLink(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	return strings.Split(hardwrap.String(text, width), "\n")
}

func wrap(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	return strings.Split(wordwrap.String(text, width), "\n")
}
