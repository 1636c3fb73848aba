package ui

import (
	"context"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ntustvocab/vocabterm/internal/logging"
	"github.com/ntustvocab/vocabterm/internal/logging/events"
	"github.com/ntustvocab/vocabterm/internal/menu"
	"github.com/ntustvocab/vocabterm/internal/prefs"
	"github.com/ntustvocab/vocabterm/internal/state"
	"github.com/ntustvocab/vocabterm/internal/theme"
	"github.com/ntustvocab/vocabterm/internal/ui/command"
	"github.com/ntustvocab/vocabterm/internal/vocab"
)

// selectorResultMsg carries a finished reconciliation back to the selector.
type selectorResultMsg struct {
	result state.Result
}

// categoryLoadedMsg mirrors the async loader response.
type categoryLoadedMsg struct {
	id    string
	title string
	items []menu.Item
	err   error
}

func (m *Model) startCmd() tea.Cmd {
	return m.fetchCmd(m.selector.Start())
}

func (m *Model) fetchCmd(req state.Request) tea.Cmd {
	cat := m.catalog
	timeout := m.fetchTimeout
	return m.bus.Run("selector:fetch", req.Selection.String(), func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return selectorResultMsg{result: state.Fetch(ctx, cat, req)}
	})
}

func (m *Model) practiceLoadCmd(session *state.PracticeSession) tea.Cmd {
	src := m.catalog
	timeout := m.fetchTimeout
	id := session.ID()
	sel := session.Selection()
	return m.bus.Run("practice:load", sel.String(), func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return state.LoadPractice(ctx, src, id, sel)
	})
}

func (m *Model) loadMenuCmd(id, title string, loader menu.Loader) tea.Cmd {
	ctx := m.menuContext()
	return func() tea.Msg {
		items, err := loader(ctx)
		if err != nil {
			logging.Error(err)
		}
		return categoryLoadedMsg{id: id, title: title, items: items, err: err}
	}
}

func (m *Model) executeNode(node *menu.Node, item menu.Item) tea.Cmd {
	if node == nil || node.Action == nil {
		return nil
	}
	m.beginPending(node.ID, item.Label)
	return m.bus.Execute(m.menuContext(), command.Request{ID: node.ID, Label: item.Label, Handler: node.Action, Item: item})
}

func (m *Model) beginPending(id, label string) {
	m.loading = true
	m.pendingID = id
	m.pendingLabel = label
	m.errMsg = ""
	m.forceClearInfo()
}

func (m *Model) finishPending() {
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
}

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(menu.ActionResult)
	if !ok {
		return nil
	}
	m.finishPending()
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		events.Action.Error(result.Err)
		return nil
	}
	if result.Info != "" {
		m.setInfo(result.Info)
	} else {
		m.forceClearInfo()
	}
	events.Action.Success(result.Info)
	return nil
}

func (m *Model) handleSelectPartMsg(msg tea.Msg) tea.Cmd {
	sel, ok := msg.(menu.SelectPartMsg)
	if !ok {
		return nil
	}
	m.finishPending()
	m.closeDropdowns("select")
	req, fetch := m.selector.SelectPart(sel.Part)
	return m.afterSelect(req, fetch)
}

func (m *Model) handleSelectTopicMsg(msg tea.Msg) tea.Cmd {
	sel, ok := msg.(menu.SelectTopicMsg)
	if !ok {
		return nil
	}
	m.finishPending()
	m.closeDropdowns("select")
	req, fetch := m.selector.SelectTopic(sel.Topic)
	return m.afterSelect(req, fetch)
}

func (m *Model) afterSelect(req state.Request, fetch bool) tea.Cmd {
	m.refreshDropdowns()
	if !fetch {
		return nil
	}
	return m.fetchCmd(req)
}

func (m *Model) handleSelectorResultMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(selectorResultMsg)
	if !ok {
		return nil
	}
	res := update.result
	next, retry := m.selector.Apply(res)
	fresh := res.Err == nil && res.Request.Generation == m.selector.Generation()
	if fresh || m.selector.Status() == state.StatusError {
		m.syncWordsLevel()
	}
	m.refreshDropdowns()
	if retry {
		return m.fetchCmd(next)
	}
	if m.startPractice && m.selector.Status() != state.StatusLoading {
		m.startPractice = false
		if m.selector.Status() == state.StatusIdle {
			return m.beginPractice(m.selector.Pending())
		}
	}
	return nil
}

// syncWordsLevel replaces the word items after a load. Positions are ids, so
// expanded cards and the cursor start over.
func (m *Model) syncWordsLevel() {
	root := m.wordsLevel()
	if root == nil {
		return
	}
	items, _ := menu.WordItems(m.menuContext())
	root.CollapseAll()
	root.Cursor = 0
	root.ViewportOffset = 0
	root.UpdateItems(items)
	m.detailScroll = 0
	m.syncViewport(root)
}

func (m *Model) refreshDropdowns() {
	ctx := m.menuContext()
	pending := m.selector.Pending()
	if lvl := m.findLevelByID("part"); lvl != nil {
		items, _ := menu.PartItems(ctx)
		lvl.UpdateItems(items)
		lvl.Current = pending.Part.String()
		m.syncViewport(lvl)
	}
	if lvl := m.findLevelByID("topic"); lvl != nil {
		items, _ := menu.TopicItems(ctx)
		lvl.UpdateItems(items)
		lvl.Current = pending.Topic.String()
		m.syncViewport(lvl)
	}
}

func (m *Model) handleLayoutMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(menu.LayoutMsg)
	if !ok {
		return nil
	}
	m.finishPending()
	m.closeDropdowns("select")
	m.applyLayout(update.Layout)
	return nil
}

func (m *Model) applyLayout(layout menu.Layout) {
	if layout == "" || layout == m.layout {
		return
	}
	m.layout = layout
	m.detailScroll = 0
	events.UI.Layout(string(layout))
	if m.prefs != nil {
		if err := m.prefs.Set(prefs.KeyLayout, string(layout), prefs.DefaultTTL); err != nil {
			logging.Error(err)
		}
	}
	m.syncViewport(m.wordsLevel())
}

func (m *Model) handleThemeMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(menu.ThemeMsg)
	if !ok {
		return nil
	}
	m.finishPending()
	m.closeDropdowns("select")
	m.applyTheme(update.Theme)
	return nil
}

func (m *Model) applyTheme(name theme.Name) {
	if name == "" || name == m.theme {
		return
	}
	m.theme = name
	m.styles = theme.For(name)
	m.styleFilterCursor()
	events.UI.Theme(string(name))
	if m.prefs != nil {
		if err := m.prefs.Set(prefs.KeyTheme, string(name), prefs.DefaultTTL); err != nil {
			logging.Error(err)
		}
	}
}

func (m *Model) reload() tea.Cmd {
	return m.fetchCmd(m.selector.Reload())
}

// copyFromCurrentWord runs a words:copy* action on the highlighted word.
func (m *Model) copyFromCurrentWord(nodeID string) tea.Cmd {
	root := m.wordsLevel()
	if root == nil {
		return nil
	}
	item, ok := root.CurrentItem()
	if !ok {
		m.setInfo("No word to copy.")
		return nil
	}
	node, _ := m.registry.Find(nodeID)
	return m.executeNode(node, item)
}

func (m *Model) requestPractice() tea.Cmd {
	node, _ := m.registry.Find("practice")
	return m.executeNode(node, menu.Item{ID: "practice", Label: "Practice"})
}

func (m *Model) menuContext() menu.Context {
	return menu.Context{
		Selection: m.selector.Pending(),
		Parts:     m.selector.Parts(),
		Topics:    m.selector.Topics(),
		Words:     m.selector.Words(),
		Layout:    m.layout,
		Theme:     m.theme,
	}
}

func selectionLabels(sel vocab.Selection) (string, string) {
	part := "All parts"
	if n, ok := sel.Part.Value(); ok {
		part = "Part " + strconv.Itoa(n)
	}
	topic := "All topics"
	if name, ok := sel.Topic.Value(); ok {
		topic = vocab.TopicLabel(name)
	}
	return part, topic
}
