package ui

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ntustvocab/vocabterm/internal/menu"
)

func wordItems(n int) []menu.Item {
	items := make([]menu.Item, n)
	for i := range items {
		items[i] = menu.Item{ID: fmt.Sprint(i), Label: fmt.Sprintf("word-%02d", i)}
	}
	return items
}

func TestHandleEscapeKeyFromRootQuits(t *testing.T) {
	m := NewModel(Options{Defaults: testDefaults})
	cmd := m.handleEscapeKey()
	if cmd == nil {
		t.Fatalf("expected quit command from root level")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestHandleEscapeKeyClearsFilterFirst(t *testing.T) {
	m := NewModel(Options{Defaults: testDefaults})
	root := m.wordsLevel()
	root.UpdateItems(wordItems(3))
	root.SetFilter("word-01", 7)

	if cmd := m.handleEscapeKey(); cmd != nil {
		t.Fatalf("expected esc to clear the filter instead of quitting")
	}
	if root.Filter != "" || len(root.Items) != 3 {
		t.Fatalf("expected filter cleared, got %q with %d items", root.Filter, len(root.Items))
	}
}

func TestEscapeClosesDropdown(t *testing.T) {
	_, h := startHarness(t, Options{})
	h.Key("tab")
	if len(h.Model().stack) != 2 || h.Model().currentLevel().ID != "part" {
		t.Fatalf("expected part dropdown open, stack=%d", len(h.Model().stack))
	}
	h.Key("esc")
	if len(h.Model().stack) != 1 {
		t.Fatalf("expected dropdown closed, stack=%d", len(h.Model().stack))
	}
}

func TestDropdownsReplaceEachOther(t *testing.T) {
	_, h := startHarness(t, Options{})
	h.Key("tab")
	h.Key("shift+tab")
	m := h.Model()
	if len(m.stack) != 2 || m.currentLevel().ID != "topic" {
		t.Fatalf("expected only the topic dropdown, got %d levels", len(m.stack))
	}
	topic := m.currentLevel()
	if !topic.IsCurrent("pvqc-ict") {
		t.Fatalf("expected pvqc-ict marked current, got %q", topic.Current)
	}
	if item, _ := topic.CurrentItem(); item.ID != "pvqc-ict" {
		t.Fatalf("expected cursor parked on the current topic, got %q", item.ID)
	}
}

func TestGridCursorMovesByColumns(t *testing.T) {
	m := NewModel(Options{Defaults: testDefaults, Layout: menu.LayoutGrid, Width: 90})
	root := m.wordsLevel()
	root.UpdateItems(wordItems(7))

	steps := []struct {
		key  tea.KeyType
		want int
	}{
		{tea.KeyDown, 3},
		{tea.KeyRight, 4},
		{tea.KeyDown, 6},
		{tea.KeyUp, 3},
		{tea.KeyLeft, 2},
		{tea.KeyUp, 0},
	}
	for i, step := range steps {
		m.handleKeyMsg(tea.KeyMsg{Type: step.key})
		if root.Cursor != step.want {
			t.Fatalf("step %d: expected cursor %d, got %d", i, step.want, root.Cursor)
		}
	}
}

func TestListCursorWraps(t *testing.T) {
	m := NewModel(Options{Defaults: testDefaults, Layout: menu.LayoutList})
	root := m.wordsLevel()
	root.UpdateItems(wordItems(4))

	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyUp})
	if root.Cursor != 3 {
		t.Fatalf("expected wrap to last item, got %d", root.Cursor)
	}
	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyDown})
	if root.Cursor != 0 {
		t.Fatalf("expected wrap to first item, got %d", root.Cursor)
	}
	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyEnd})
	if root.Cursor != 3 {
		t.Fatalf("expected end to jump to last item, got %d", root.Cursor)
	}
}

func TestEnterTogglesWordExpansion(t *testing.T) {
	m := NewModel(Options{Defaults: testDefaults})
	root := m.wordsLevel()
	root.UpdateItems(wordItems(2))

	m.handleEnterKey()
	if !root.IsExpanded("0") {
		t.Fatalf("expected first word expanded")
	}
	m.handleEnterKey()
	if root.IsExpanded("0") {
		t.Fatalf("expected second enter to collapse")
	}
}

func TestChoiceKey(t *testing.T) {
	tests := []struct {
		key  string
		idx  int
		want bool
	}{
		{"1", 0, true},
		{"9", 8, true},
		{"0", 0, false},
		{"a", 0, false},
		{"12", 0, false},
	}
	for _, tt := range tests {
		idx, ok := choiceKey(tt.key)
		if ok != tt.want || (ok && idx != tt.idx) {
			t.Fatalf("choiceKey(%q) = %d, %v", tt.key, idx, ok)
		}
	}
}
