package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Layout is how the word view arranges entries.
type Layout string

const (
	LayoutGrid Layout = "grid"
	LayoutList Layout = "list"
)

// ParseLayout accepts "grid" or "list", case-insensitively.
func ParseLayout(raw string) (Layout, error) {
	switch Layout(strings.ToLower(strings.TrimSpace(raw))) {
	case LayoutGrid:
		return LayoutGrid, nil
	case LayoutList:
		return LayoutList, nil
	}
	return "", fmt.Errorf("unknown layout %q", raw)
}

// Toggle returns the other layout.
func (l Layout) Toggle() Layout {
	if l == LayoutList {
		return LayoutGrid
	}
	return LayoutList
}

func LayoutItems(Context) ([]Item, error) {
	return []Item{
		{ID: string(LayoutGrid), Label: "Cards"},
		{ID: string(LayoutList), Label: "List with details"},
	}, nil
}

func LayoutAction(ctx Context, item Item) tea.Cmd {
	return func() tea.Msg {
		layout, err := ParseLayout(item.ID)
		if err != nil {
			return ActionResult{Err: err}
		}
		return LayoutMsg{Layout: layout}
	}
}
