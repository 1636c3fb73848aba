package events

import "github.com/ntustvocab/vocabterm/internal/logging"

type PrefsTracer struct{}

var Prefs = PrefsTracer{}

func (PrefsTracer) Set(key, value string) {
	logging.Trace("prefs.set", map[string]interface{}{"key": key, "value": value})
}

func (PrefsTracer) Clear(key string) {
	logging.Trace("prefs.clear", map[string]interface{}{"key": key})
}
