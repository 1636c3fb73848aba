package dispatcher

import (
	"net/http"
	"time"

	"github.com/ntustvocab/vocabterm/internal/backend"
	"github.com/ntustvocab/vocabterm/internal/catalog"
	"github.com/ntustvocab/vocabterm/internal/state"
)

type Result struct {
	HealthChanged bool
}

type Dispatcher struct {
	health state.HealthStore
}

func New(h state.HealthStore) *Dispatcher {
	return &Dispatcher{health: h}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	switch evt.Kind {
	case backend.KindHeartbeat:
		at := time.Now()
		if hb, ok := evt.Data.(backend.Heartbeat); ok && !hb.At.IsZero() {
			at = hb.At
		}
		next := Classify(evt.Err)
		res.HealthChanged = next != d.health.Health()
		d.health.SetHealth(next, evt.Err, at)
	}
	return res
}

// Classify maps a heartbeat error to a health state. A 502 from the proxy
// means the API process is not running yet.
func Classify(err error) state.Health {
	switch {
	case err == nil:
		return state.HealthUp
	case catalog.StatusCode(err) == http.StatusBadGateway:
		return state.HealthNotStarted
	default:
		return state.HealthUnreachable
	}
}
