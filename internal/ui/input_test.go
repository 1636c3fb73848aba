package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/ntustvocab/vocabterm/internal/menu"
)

func TestHandleTextInputAppendsRunes(t *testing.T) {
	m := NewModel(Options{Defaults: testDefaults})
	current := m.currentLevel()
	current.UpdateItems([]menu.Item{{ID: "one"}})
	handled := m.handleTextInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc")})
	if !handled {
		t.Fatalf("expected key press to be handled")
	}
	if current.Filter != "abc" {
		t.Fatalf("expected filter 'abc', got %q", current.Filter)
	}
	if pos := current.FilterCursorPos(); pos != 3 {
		t.Fatalf("expected cursor at end, got %d", pos)
	}
}

func TestHandleTextInputCursorMovement(t *testing.T) {
	m := NewModel(Options{Defaults: testDefaults})
	current := m.currentLevel()
	current.UpdateItems([]menu.Item{{ID: "one"}})
	current.SetFilter("abc", 3)

	if !m.handleTextInput(tea.KeyMsg{Type: tea.KeyLeft}) {
		t.Fatalf("expected left arrow to be handled")
	}
	if pos := current.FilterCursorPos(); pos != 2 {
		t.Fatalf("expected cursor at 2 after left, got %d", pos)
	}

	if !m.handleTextInput(tea.KeyMsg{Type: tea.KeyRight}) {
		t.Fatalf("expected right arrow to be handled")
	}
	if pos := current.FilterCursorPos(); pos != 3 {
		t.Fatalf("expected cursor back at 3, got %d", pos)
	}
}

func TestHandleTextInputWordEditing(t *testing.T) {
	m := NewModel(Options{Defaults: testDefaults})
	current := m.currentLevel()
	current.UpdateItems([]menu.Item{{ID: "one"}})
	current.SetFilter("net link", 8)

	if !m.handleTextInput(tea.KeyMsg{Type: tea.KeyCtrlW}) {
		t.Fatalf("expected ctrl+w to be handled")
	}
	if current.Filter != "net " {
		t.Fatalf("expected last word removed, got %q", current.Filter)
	}
	if !m.handleTextInput(tea.KeyMsg{Type: tea.KeyCtrlU}) {
		t.Fatalf("expected ctrl+u to be handled")
	}
	if current.Filter != "" {
		t.Fatalf("expected filter cleared, got %q", current.Filter)
	}
	if m.handleTextInput(tea.KeyMsg{Type: tea.KeyCtrlU}) {
		t.Fatalf("expected ctrl+u on an empty filter to fall through")
	}
}

func TestTextInputIgnoredOutsideWords(t *testing.T) {
	m := NewModel(Options{Defaults: testDefaults})
	m.mode = ModePractice
	if m.handleTextInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}) {
		t.Fatalf("expected practice mode to bypass the filter")
	}
	m.mode = ModeWords
	m.loading = true
	if m.handleTextInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}) {
		t.Fatalf("expected input to be ignored while loading")
	}
}

func TestFilterMatchesMeaning(t *testing.T) {
	_, h := startHarness(t, Options{})
	h.Type("頻寬")
	root := h.Model().wordsLevel()
	if len(root.Items) != 1 || root.Items[0].Label != "bandwidth" {
		t.Fatalf("expected meaning to match bandwidth, got %#v", root.Items)
	}
	if got := h.Model().wordCountText(); got != "1 of 2 words" {
		t.Fatalf("unexpected count %q", got)
	}
}

func TestFilterPromptPlaceholder(t *testing.T) {
	m := NewModel(Options{Defaults: testDefaults})
	current := m.currentLevel()
	current.SetFilter("", 0)
	prompt := ansi.Strip(m.filterPrompt())
	if prompt == "" {
		t.Fatalf("expected non-empty prompt")
	}
	if !strings.Contains(prompt, "type to filter") {
		t.Fatalf("expected placeholder in prompt, got %q", prompt)
	}
	current.SetFilter("ban", 3)
	if prompt := ansi.Strip(m.filterPrompt()); !strings.Contains(prompt, "ban") {
		t.Fatalf("expected filter text in prompt, got %q", prompt)
	}
}
