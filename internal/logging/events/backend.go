package events

import "github.com/ntustvocab/vocabterm/internal/logging"

type BackendTracer struct{}

var Backend = BackendTracer{}

func (BackendTracer) Heartbeat(healthy bool, err error) {
	logging.Trace("backend.heartbeat", map[string]interface{}{"healthy": healthy, "error": errString(err)})
}
