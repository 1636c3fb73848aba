package state

import (
	"github.com/ntustvocab/vocabterm/internal/menu"
)

// Level is one entry on the navigation stack: the word list itself or a
// dropdown opened over it.
type Level struct {
	ID             string
	Title          string
	Items          []menu.Item
	Full           []menu.Item
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	Node           *menu.Node
	ViewportOffset int

	// Current is the id of the value already in effect, marked in dropdowns.
	Current  string
	Expanded map[string]struct{}
}

// NewLevel constructs a Level using the provided items and menu node.
func NewLevel(id, title string, items []menu.Item, node *menu.Node) *Level {
	l := &Level{
		ID:         id,
		Title:      title,
		Cursor:     -1,
		LastCursor: -1,
		Expanded:   make(map[string]struct{}),
		Node:       node,
	}
	l.UpdateItems(items)
	return l
}

// IndexOf returns the index for a given item identifier.
func (l *Level) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// UpdateItems replaces the level's items. Expanded ids that no longer exist
// are forgotten and the viewport is kept when it still fits.
func (l *Level) UpdateItems(items []menu.Item) {
	prevOffset := l.ViewportOffset
	l.Full = append([]menu.Item(nil), items...)
	l.pruneExpanded()
	l.applyFilter()
	if len(l.Items) == 0 || prevOffset < 0 || prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}

// SetCurrent marks id as the value in effect and parks the cursor on it.
func (l *Level) SetCurrent(id string) {
	l.Current = id
	if idx := l.IndexOf(id); idx >= 0 {
		l.Cursor = idx
	}
}

// IsCurrent reports whether id is the value in effect.
func (l *Level) IsCurrent(id string) bool {
	return id != "" && l.Current == id
}

// CurrentItem returns the item under the cursor.
func (l *Level) CurrentItem() (menu.Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return menu.Item{}, false
	}
	return l.Items[l.Cursor], true
}
