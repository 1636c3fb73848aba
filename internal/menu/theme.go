package menu

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ntustvocab/vocabterm/internal/theme"
)

func ThemeItems(Context) ([]Item, error) {
	return []Item{
		{ID: string(theme.Dark), Label: "Dark"},
		{ID: string(theme.Light), Label: "Light"},
	}, nil
}

func ThemeAction(ctx Context, item Item) tea.Cmd {
	return func() tea.Msg {
		name, err := theme.Parse(item.ID)
		if err != nil {
			return ActionResult{Err: err}
		}
		return ThemeMsg{Theme: name}
	}
}
