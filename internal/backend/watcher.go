package backend

import (
	"context"
	"sync"
	"time"

	"github.com/ntustvocab/vocabterm/internal/logging/events"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindHeartbeat Kind = iota
)

// Event conveys a poll outcome. Err is the poll failure, if any.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Heartbeat is the Data of a KindHeartbeat event.
type Heartbeat struct {
	At      time.Time
	Latency time.Duration
}

// Pinger checks that the word API is up.
type Pinger interface {
	Heartbeat(ctx context.Context) error
}

// Watcher polls the word API at a fixed interval and publishes events.
type Watcher struct {
	pinger   Pinger
	interval time.Duration
	timeout  time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher that pings every interval. Each ping is
// bounded by timeout when it is positive.
func NewWatcher(pinger Pinger, interval, timeout time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		pinger:   pinger,
		interval: interval,
		timeout:  timeout,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.startHeartbeatPoller()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The poller exits after its current ping; use
// Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller has exited and the events channel is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startHeartbeatPoller() {
	throttle := newThrottle(250 * time.Millisecond)
	w.wg.Add(1)
	go w.poll(KindHeartbeat, func(ctx context.Context) (interface{}, error) {
		if err := throttle.wait(ctx); err != nil {
			return nil, err
		}
		if w.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, w.timeout)
			defer cancel()
		}
		started := time.Now()
		err := w.pinger.Heartbeat(ctx)
		events.Backend.Heartbeat(err == nil, err)
		return Heartbeat{At: started, Latency: time.Since(started)}, err
	})
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context) (interface{}, error)) {
	defer w.wg.Done()

	emit := func() bool {
		data, err := fetch(w.ctx)
		evt := Event{Kind: kind, Data: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}
	if w.interval <= 0 {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
