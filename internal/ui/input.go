package ui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ntustvocab/vocabterm/internal/logging/events"
)

const filterPlaceholder = "(type to filter)"

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(l *level, before int) {
	if l == nil {
		return
	}
	if before != l.FilterCursorPos() {
		m.filterCursorDirty = true
	}
}

// handleTextInput edits the filter of the top level. It reports whether the
// key was consumed.
func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	if m.loading || m.mode != ModeWords {
		return false
	}
	current := m.currentLevel()
	if current == nil {
		return false
	}
	move := func(moved bool, before int) bool {
		if !moved {
			return false
		}
		m.noteFilterCursorChange(current, before)
		events.Filter.Cursor(current.ID, current.FilterCursor)
		return true
	}
	before := current.FilterCursorPos()
	switch msg.String() {
	case "ctrl+u":
		if current.Filter == "" {
			return false
		}
		current.SetFilter("", 0)
		m.afterFilterEdit(current, before)
		events.Filter.Cleared(current.ID)
		return true
	case "ctrl+w":
		if !current.DeleteFilterWordBackward() {
			return false
		}
		m.afterFilterEdit(current, before)
		events.Filter.WordBackspace(current.ID, current.Filter)
		return true
	case "ctrl+a":
		return move(current.MoveFilterCursorStart(), before)
	case "ctrl+e":
		return move(current.MoveFilterCursorEnd(), before)
	case "alt+b":
		return move(current.MoveFilterCursorWordBackward(), before)
	case "alt+f":
		return move(current.MoveFilterCursorWordForward(), before)
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return m.removeFilterRune()
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false
			}
		}
		return m.appendToFilter(string(msg.Runes))
	case tea.KeySpace:
		return m.appendToFilter(" ")
	case tea.KeyLeft:
		return move(current.MoveFilterCursorRuneBackward(), before)
	case tea.KeyRight:
		return move(current.MoveFilterCursorRuneForward(), before)
	}
	return false
}

func (m *Model) afterFilterEdit(l *level, before int) {
	m.noteFilterCursorChange(l, before)
	m.forceClearInfo()
	m.errMsg = ""
	if l.ID == wordsLevelID {
		m.detailScroll = 0
	}
	m.syncViewport(l)
}

func (m *Model) appendToFilter(text string) bool {
	current := m.currentLevel()
	if current == nil || text == "" {
		return false
	}
	before := current.FilterCursorPos()
	if !current.InsertFilterText(text) {
		return false
	}
	m.afterFilterEdit(current, before)
	events.Filter.Append(current.ID, current.Filter)
	return true
}

func (m *Model) removeFilterRune() bool {
	current := m.currentLevel()
	if current == nil {
		return false
	}
	before := current.FilterCursorPos()
	if !current.DeleteFilterRuneBackward() {
		return false
	}
	m.afterFilterEdit(current, before)
	events.Filter.Backspace(current.ID, current.Filter)
	return true
}

func (m *Model) filterPrompt() string {
	current := m.currentLevel()
	prompt := "» "
	if m.styles.FilterPrompt != nil {
		prompt = m.styles.FilterPrompt.Render(prompt)
	}
	if current == nil {
		return prompt
	}
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if m.styles.Cursor != nil {
		m.filterCursor.Style = m.styles.Cursor.Copy()
	}
	if m.styles.Filter != nil {
		m.filterCursor.TextStyle = m.styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	if current.Filter == "" {
		runes := []rune(filterPlaceholder)
		if m.styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = m.styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(string(runes[0]))
		return prompt + caret + render(m.styles.FilterPlaceholder, string(runes[1:]))
	}
	runes := []rune(current.Filter)
	pos := current.FilterCursorPos()
	before := render(m.styles.Filter, string(runes[:pos]))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(m.styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + m.renderFilterCursor(caretRune) + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)
	base := m.filterCursor.TextStyle.Copy().Inline(true)
	if m.filterCursor.Blink {
		return base.Render(char)
	}
	if m.styles.Cursor != nil {
		return base.Inherit(m.styles.Cursor.Copy().Inline(true)).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}
