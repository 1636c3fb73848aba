package menu

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ntustvocab/vocabterm/internal/vocab"
)

// PartItems lists the part dropdown: "all" first, then the catalog.
func PartItems(ctx Context) ([]Item, error) {
	items := make([]Item, 0, len(ctx.Parts)+1)
	items = append(items, Item{ID: vocab.AllValue, Label: "All parts"})
	for _, p := range ctx.Parts {
		items = append(items, Item{ID: strconv.Itoa(p), Label: fmt.Sprintf("Part %d", p)})
	}
	return items, nil
}

// TopicItems lists the topic dropdown in catalog order.
func TopicItems(ctx Context) ([]Item, error) {
	topics := vocab.SortTopics(ctx.Topics)
	items := make([]Item, 0, len(topics))
	for _, id := range topics {
		label := vocab.TopicLabel(id)
		if id == vocab.AllValue {
			label = "All topics"
		}
		items = append(items, Item{ID: id, Label: label})
	}
	return items, nil
}

func PartAction(ctx Context, item Item) tea.Cmd {
	return func() tea.Msg {
		part, err := vocab.ParsePart(item.ID)
		if err != nil {
			return ActionResult{Err: err}
		}
		return SelectPartMsg{Part: part}
	}
}

func TopicAction(ctx Context, item Item) tea.Cmd {
	return func() tea.Msg {
		topic, err := vocab.ParseTopic(item.ID)
		if err != nil {
			return ActionResult{Err: err}
		}
		return SelectTopicMsg{Topic: topic}
	}
}

// PracticeAction starts practice for the current selection when both axes
// are specific.
func PracticeAction(ctx Context, _ Item) tea.Cmd {
	sel := ctx.Selection
	return func() tea.Msg {
		if !sel.Practicable() {
			return ActionResult{Err: fmt.Errorf("choose a specific part and topic to practice (now %s)", sel)}
		}
		return PracticeMsg{Selection: sel}
	}
}
