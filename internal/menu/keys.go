package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyBinding documents one shortcut.
type KeyBinding struct {
	Keys string
	Help string
}

// KeyBindings lists the shortcuts shown under the palette's "keys" entry.
var KeyBindings = []KeyBinding{
	{Keys: "tab", Help: "choose part"},
	{Keys: "shift+tab", Help: "choose topic"},
	{Keys: "ctrl+p", Help: "command palette"},
	{Keys: "ctrl+g", Help: "toggle cards/list"},
	{Keys: "ctrl+t", Help: "toggle dark/light theme"},
	{Keys: "ctrl+r", Help: "practice current part and topic"},
	{Keys: "ctrl+l", Help: "reload"},
	{Keys: "ctrl+y", Help: "copy word"},
	{Keys: "ctrl+o", Help: "copy audio link (US, else UK)"},
	{Keys: "enter", Help: "expand word / confirm"},
	{Keys: "esc", Help: "back / quit"},
}

func loadKeybindingMenu(Context) ([]Item, error) {
	items := make([]Item, 0, len(KeyBindings))
	for _, kb := range KeyBindings {
		items = append(items, Item{ID: kb.Keys, Label: fmt.Sprintf("%-10s %s", kb.Keys, kb.Help)})
	}
	return items, nil
}

// KeybindingAction echoes the chosen binding so it can be read at leisure.
func KeybindingAction(_ Context, item Item) tea.Cmd {
	binding := strings.TrimSpace(item.ID)
	return func() tea.Msg {
		for _, kb := range KeyBindings {
			if kb.Keys == binding {
				return ActionResult{Info: fmt.Sprintf("%s: %s", kb.Keys, kb.Help)}
			}
		}
		return ActionResult{Err: fmt.Errorf("unknown key binding %q", binding)}
	}
}
