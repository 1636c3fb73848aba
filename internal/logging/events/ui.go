package events

import "github.com/ntustvocab/vocabterm/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) DropdownOpen(levelID string, options int) {
	logging.Trace("dropdown.open", map[string]interface{}{"level": levelID, "options": options})
}

func (UITracer) DropdownClose(levelID, reason string) {
	logging.Trace("dropdown.close", map[string]interface{}{"level": levelID, "reason": reason})
}

func (UITracer) Cursor(levelID string, cursor int) {
	logging.Trace("view.cursor", map[string]interface{}{"level": levelID, "cursor": cursor})
}

func (UITracer) Layout(layout string) {
	logging.Trace("view.layout", map[string]interface{}{"layout": layout})
}

func (UITracer) Theme(theme string) {
	logging.Trace("view.theme", map[string]interface{}{"theme": theme})
}

func (UITracer) Expand(word string, expanded bool) {
	logging.Trace("word.expand", map[string]interface{}{"word": word, "expanded": expanded})
}

func (UITracer) Mode(mode string) {
	logging.Trace("view.mode", map[string]interface{}{"mode": mode})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (FilterTracer) Cleared(levelID string) {
	logging.Trace("filter.clear", map[string]interface{}{"level": levelID})
}

func (FilterTracer) WordBackspace(levelID, filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"level": levelID, "filter": filter})
}

func (FilterTracer) Append(levelID, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"level": levelID, "filter": filter})
}

func (FilterTracer) Backspace(levelID, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"level": levelID, "filter": filter})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}

func (UITracer) Enter(levelID, itemID, filter string) {
	logging.Trace("menu.enter", map[string]interface{}{"level": levelID, "item": itemID, "filter": filter})
}

func (FilterTracer) Cursor(levelID string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"level": levelID, "pos": pos})
}
