package events

import "github.com/ntustvocab/vocabterm/internal/logging"

type SelectorTracer struct{}

var Selector = SelectorTracer{}

func (SelectorTracer) Select(axis, value string) {
	logging.Trace("selector.select", map[string]interface{}{"axis": axis, "value": value})
}

func (SelectorTracer) NoOp(axis, value string) {
	logging.Trace("selector.noop", map[string]interface{}{"axis": axis, "value": value})
}

func (SelectorTracer) Request(generation uint64, selection string, topics, parts, fallback bool) {
	logging.Trace("selector.request", map[string]interface{}{
		"generation": generation,
		"selection":  selection,
		"topics":     topics,
		"parts":      parts,
		"fallback":   fallback,
	})
}

func (SelectorTracer) Stale(generation, latest uint64) {
	logging.Trace("selector.stale", map[string]interface{}{"generation": generation, "latest": latest})
}

func (SelectorTracer) Applied(generation uint64, selection string, words int) {
	logging.Trace("selector.applied", map[string]interface{}{"generation": generation, "selection": selection, "words": words})
}

func (SelectorTracer) Fallback(selection string, err error) {
	logging.Trace("selector.fallback", map[string]interface{}{"selection": selection, "error": errString(err)})
}

func (SelectorTracer) Failed(selection string, err error) {
	logging.Trace("selector.failed", map[string]interface{}{"selection": selection, "error": errString(err)})
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
