package events

import "github.com/ntustvocab/vocabterm/internal/logging"

type PracticeTracer struct{}

var Practice = PracticeTracer{}

func (PracticeTracer) Load(session, selection string) {
	logging.Trace("practice.load", map[string]interface{}{"session": session, "selection": selection})
}

func (PracticeTracer) Loaded(session string, questions, rejected int, err error) {
	logging.Trace("practice.loaded", map[string]interface{}{
		"session":   session,
		"questions": questions,
		"rejected":  rejected,
		"error":     errString(err),
	})
}

func (PracticeTracer) Answer(session string, index, choice int, correct bool) {
	logging.Trace("practice.answer", map[string]interface{}{"session": session, "index": index, "choice": choice, "correct": correct})
}

func (PracticeTracer) Rejected(session, op, state string) {
	logging.Trace("practice.rejected", map[string]interface{}{"session": session, "op": op, "state": state})
}

func (PracticeTracer) Finish(session string, errors, total int, accuracy string) {
	logging.Trace("practice.finish", map[string]interface{}{"session": session, "errors": errors, "total": total, "accuracy": accuracy})
}

// Ignored records a UI request the session turned down, such as asking for
// results before the last answer.
func (PracticeTracer) Ignored(session, action string, err error) {
	logging.Trace("practice.ignored", map[string]interface{}{"session": session, "action": action, "error": errString(err)})
}
