package ui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ntustvocab/vocabterm/internal/logging/events"
	"github.com/ntustvocab/vocabterm/internal/menu"
)

var dropdownTitles = map[string]string{
	"root":   "Menu",
	"part":   "Part",
	"topic":  "Topic",
	"layout": "Layout",
	"theme":  "Theme",
	"keys":   "Keys",
}

func (m *Model) handleEscapeKey() tea.Cmd {
	current := m.currentLevel()
	if current == nil {
		return tea.Quit
	}
	if len(m.stack) <= 1 {
		if current.Filter != "" {
			before := current.FilterCursorPos()
			current.SetFilter("", 0)
			m.noteFilterCursorChange(current, before)
			events.Filter.Cleared(current.ID)
			m.syncViewport(current)
			return nil
		}
		return tea.Quit
	}
	events.UI.DropdownClose(current.ID, "esc")
	parent := m.stack[len(m.stack)-2]
	m.stack = m.stack[:len(m.stack)-1]
	if parent != nil {
		if parent.LastCursor >= 0 && parent.LastCursor < len(parent.Items) {
			parent.Cursor = parent.LastCursor
		} else if idx := parent.IndexOf(current.ID); idx >= 0 {
			parent.Cursor = idx
		}
		parent.LastCursor = -1
		m.syncViewport(parent)
	}
	m.errMsg = ""
	m.forceClearInfo()
	return nil
}

func (m *Model) handleEnterKey() tea.Cmd {
	if m.loading {
		return nil
	}
	current := m.currentLevel()
	if current == nil || len(current.Items) == 0 {
		return nil
	}
	if current.ID == wordsLevelID {
		m.toggleExpanded(current)
		return nil
	}
	item := current.Items[current.Cursor]
	events.UI.Enter(current.ID, item.ID, current.Filter)
	before := current.FilterCursorPos()
	current.SetFilter("", 0)
	m.noteFilterCursorChange(current, before)
	node := current.Node
	if node == nil {
		node, _ = m.registry.Find(current.ID)
	}
	if node != nil {
		if child, ok := node.Children[item.ID]; ok {
			if child.Loader != nil {
				current.LastCursor = current.Cursor
				m.beginPending(child.ID, item.Label)
				return m.loadMenuCmd(child.ID, titleFor(child.ID, item.Label), child.Loader)
			}
			if child.Action != nil {
				return m.executeNode(child, item)
			}
		}
		if node.Action != nil {
			return m.executeNode(node, item)
		}
	}
	m.setInfo("Nothing to do for " + item.Label)
	return nil
}

func (m *Model) toggleExpanded(l *level) {
	item, ok := l.CurrentItem()
	if !ok {
		return
	}
	l.ToggleExpanded(item.ID)
	events.UI.Expand(item.Label, l.IsExpanded(item.ID))
	m.detailScroll = 0
	m.syncViewport(l)
}

// openDropdown pushes the menu with id over the word list, replacing any
// dropdown already open.
func (m *Model) openDropdown(id string) tea.Cmd {
	if m.loading {
		return nil
	}
	node, ok := m.registry.Find(id)
	if !ok || node.Loader == nil {
		return nil
	}
	if current := m.currentLevel(); current != nil && current.ID == id {
		return nil
	}
	m.closeDropdowns("switch")
	m.beginPending(id, titleFor(id, id))
	return m.loadMenuCmd(id, titleFor(id, id), node.Loader)
}

func (m *Model) closeDropdowns(reason string) {
	for len(m.stack) > 1 {
		events.UI.DropdownClose(m.currentLevel().ID, reason)
		m.stack = m.stack[:len(m.stack)-1]
	}
}

func titleFor(id, fallback string) string {
	if title, ok := dropdownTitles[id]; ok {
		return title
	}
	return fallback
}

func (m *Model) handleCategoryLoadedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(categoryLoadedMsg)
	if !ok {
		return nil
	}
	if update.id != m.pendingID {
		return nil
	}
	m.finishPending()
	if update.err != nil {
		m.errMsg = update.err.Error()
		return nil
	}
	m.errMsg = ""
	node, _ := m.registry.Find(update.id)
	lvl := newLevel(update.id, update.title, update.items, node)
	m.markCurrent(lvl)
	m.syncViewport(lvl)
	m.stack = append(m.stack, lvl)
	events.UI.DropdownOpen(lvl.ID, len(lvl.Items))
	if len(lvl.Items) == 0 {
		m.setInfo("No entries found.")
	} else if m.infoMsg != "" {
		m.clearInfo()
	}
	return nil
}

func (m *Model) markCurrent(l *level) {
	pending := m.selector.Pending()
	switch l.ID {
	case "part":
		l.SetCurrent(pending.Part.String())
	case "topic":
		l.SetCurrent(pending.Topic.String())
	case "layout":
		l.SetCurrent(string(m.layout))
	case "theme":
		l.SetCurrent(string(m.theme))
	}
}

func (m *Model) moveCursorVertical(delta int) {
	current := m.currentLevel()
	if current == nil || len(current.Items) == 0 {
		return
	}
	if m.isGrid(current) {
		current.MoveCursorBy(delta * m.gridColumns())
	} else {
		current.MoveCursorWrap(delta)
	}
	m.afterCursorMove(current)
}

func (m *Model) moveCursorHorizontal(delta int) bool {
	current := m.currentLevel()
	if current == nil || !m.isGrid(current) {
		return false
	}
	if current.MoveCursorBy(delta) {
		m.afterCursorMove(current)
	}
	return true
}

func (m *Model) moveCursorPageUp() {
	if current := m.currentLevel(); current != nil {
		if current.MoveCursorPageUp(m.pageSize(current)) {
			m.afterCursorMove(current)
		}
	}
}

func (m *Model) moveCursorPageDown() {
	if current := m.currentLevel(); current != nil {
		if current.MoveCursorPageDown(m.pageSize(current)) {
			m.afterCursorMove(current)
		}
	}
}

func (m *Model) moveCursorHome() {
	if current := m.currentLevel(); current != nil {
		if current.MoveCursorHome() {
			m.afterCursorMove(current)
		}
	}
}

func (m *Model) moveCursorEnd() {
	if current := m.currentLevel(); current != nil {
		if current.MoveCursorEnd() {
			m.afterCursorMove(current)
		}
	}
}

func (m *Model) afterCursorMove(l *level) {
	events.UI.Cursor(l.ID, l.Cursor)
	if l.ID == wordsLevelID {
		m.detailScroll = 0
	}
	m.syncViewport(l)
}

func (m *Model) pageSize(l *level) int {
	if m.isGrid(l) {
		cols := m.gridColumns()
		return cols * m.gridRows()
	}
	return m.maxVisibleItems()
}

func (m *Model) isGrid(l *level) bool {
	return l != nil && l.ID == wordsLevelID && m.layout == menu.LayoutGrid
}

func (m *Model) syncViewport(l *level) {
	if l == nil {
		return
	}
	if m.isGrid(l) {
		m.gridWindow(l)
		return
	}
	l.EnsureCursorVisible(m.maxVisibleItems())
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.mode == ModePractice {
		return m.handlePracticeKey(keyMsg)
	}
	switch keyMsg.String() {
	case "ctrl+c":
		return tea.Quit
	case "tab":
		return m.openDropdown("part")
	case "shift+tab":
		return m.openDropdown("topic")
	case "ctrl+p":
		return m.openDropdown("root")
	case "ctrl+g":
		m.applyLayout(m.layout.Toggle())
		return nil
	case "ctrl+t":
		m.applyTheme(m.theme.Toggle())
		return nil
	case "ctrl+r":
		return m.requestPractice()
	case "ctrl+l":
		return m.reload()
	case "ctrl+y":
		return m.copyFromCurrentWord("words:copy")
	case "ctrl+o":
		return m.copyFromCurrentWord("words:copy-audio")
	}
	if m.handleTextInput(keyMsg) {
		return nil
	}
	switch keyMsg.String() {
	case "esc":
		return m.handleEscapeKey()
	case "enter":
		return m.handleEnterKey()
	case "up":
		m.moveCursorVertical(-1)
	case "down":
		m.moveCursorVertical(1)
	case "left":
		m.moveCursorHorizontal(-1)
	case "right":
		m.moveCursorHorizontal(1)
	case "pgup":
		m.moveCursorPageUp()
	case "pgdown":
		m.moveCursorPageDown()
	case "home":
		m.moveCursorHome()
	case "end":
		m.moveCursorEnd()
	}
	return nil
}

func (m *Model) findLevelByID(id string) *level {
	for _, lvl := range m.stack {
		if lvl.ID == id {
			return lvl
		}
	}
	return nil
}

func (m *Model) currentLevel() *level {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

func (m *Model) wordsLevel() *level {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[0]
}

// choiceKey maps "1".."9" to a zero-based choice index.
func choiceKey(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	n, err := strconv.Atoi(key)
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}
