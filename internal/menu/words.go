package menu

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ntustvocab/vocabterm/internal/vocab"
)

var clipboardWriteFn = clipboard.WriteAll

// WordItems lists the loaded words. Item ids are positions in ctx.Words so
// duplicate spellings stay distinct.
func WordItems(ctx Context) ([]Item, error) {
	items := make([]Item, 0, len(ctx.Words))
	for i, w := range ctx.Words {
		items = append(items, Item{ID: strconv.Itoa(i), Label: w.Word, Detail: w.Meaning})
	}
	return items, nil
}

// WordAt resolves an item produced by WordItems.
func WordAt(ctx Context, item Item) (vocab.WordEntry, bool) {
	idx, err := strconv.Atoi(item.ID)
	if err != nil || idx < 0 || idx >= len(ctx.Words) {
		return vocab.WordEntry{}, false
	}
	return ctx.Words[idx], true
}

// CopyWordAction puts the word on the system clipboard.
func CopyWordAction(ctx Context, item Item) tea.Cmd {
	word := strings.TrimSpace(item.Label)
	if entry, ok := WordAt(ctx, item); ok {
		word = entry.Word
	}
	return func() tea.Msg {
		if word == "" {
			return ActionResult{Err: fmt.Errorf("no word selected")}
		}
		if err := clipboardWriteFn(word); err != nil {
			return ActionResult{Err: fmt.Errorf("copy %q: %w", word, err)}
		}
		return ActionResult{Info: fmt.Sprintf("Copied %q", word)}
	}
}

// CopyAudioAction copies the word's recording link, US before UK, so it can
// be played in a browser or player.
func CopyAudioAction(ctx Context, item Item) tea.Cmd {
	entry, ok := WordAt(ctx, item)
	return func() tea.Msg {
		if !ok {
			return ActionResult{Err: fmt.Errorf("no word selected")}
		}
		recs := entry.Recordings()
		if len(recs) == 0 {
			return ActionResult{Err: fmt.Errorf("no audio for %q", entry.Word)}
		}
		rec := recs[0]
		if err := clipboardWriteFn(rec.URL); err != nil {
			return ActionResult{Err: fmt.Errorf("copy audio for %q: %w", entry.Word, err)}
		}
		return ActionResult{Info: fmt.Sprintf("Copied %s audio link for %q", strings.ToUpper(rec.Lang), entry.Word)}
	}
}
