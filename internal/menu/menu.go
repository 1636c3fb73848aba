package menu

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ntustvocab/vocabterm/internal/theme"
	"github.com/ntustvocab/vocabterm/internal/vocab"
)

// Item represents a selectable menu entry.
type Item struct {
	ID    string
	Label string
	// Detail is secondary text that filtering also matches, such as a
	// word's meaning.
	Detail string
}

// Context carries runtime data needed by loader functions.
type Context struct {
	Selection vocab.Selection
	Parts     []int
	Topics    []string
	Words     []vocab.WordEntry
	Layout    Layout
	Theme     theme.Name
}

// Loader populates submenu entries on demand.
type Loader func(Context) ([]Item, error)

type Action func(Context, Item) tea.Cmd

// ActionResult communicates the outcome of executing a menu action.
type ActionResult struct {
	Info string
	Err  error
}

// SelectPartMsg asks the UI to reconcile against a new part.
type SelectPartMsg struct {
	Part vocab.Part
}

// SelectTopicMsg asks the UI to reconcile against a new topic.
type SelectTopicMsg struct {
	Topic vocab.Topic
}

// LayoutMsg switches the word view layout.
type LayoutMsg struct {
	Layout Layout
}

// ThemeMsg switches the colour scheme.
type ThemeMsg struct {
	Theme theme.Name
}

// PracticeMsg starts a practice session for a concrete pair.
type PracticeMsg struct {
	Selection vocab.Selection
}

// RootItems returns the command palette entries.
func RootItems() []Item {
	return []Item{
		{ID: "part", Label: "Part"},
		{ID: "topic", Label: "Topic"},
		{ID: "layout", Label: "Layout"},
		{ID: "theme", Label: "Theme"},
		{ID: "practice", Label: "Practice"},
		{ID: "keys", Label: "Key bindings"},
	}
}

// CategoryLoaders lists submenu loaders keyed by root item ID.
func CategoryLoaders() map[string]Loader {
	return map[string]Loader{
		"part":   PartItems,
		"topic":  TopicItems,
		"layout": LayoutItems,
		"theme":  ThemeItems,
		"words":  WordItems,
		"keys":   loadKeybindingMenu,
	}
}

// ActionHandlers maps menu identifiers to their execution logic.
func ActionHandlers() map[string]Action {
	return map[string]Action{
		"part":             PartAction,
		"topic":            TopicAction,
		"layout":           LayoutAction,
		"theme":            ThemeAction,
		"practice":         PracticeAction,
		"words:copy":       CopyWordAction,
		"words:copy-audio": CopyAudioAction,
		"keys":             KeybindingAction,
	}
}
