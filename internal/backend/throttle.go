package backend

import (
	"context"
	"sync"
	"time"
)

// throttle hands out heartbeat slots at least gap apart.
type throttle struct {
	gap time.Duration

	mu   sync.Mutex
	last time.Time
}

func newThrottle(gap time.Duration) *throttle {
	if gap < 0 {
		gap = 0
	}
	return &throttle{gap: gap}
}

// wait blocks until the caller's slot comes up or ctx is done.
func (t *throttle) wait(ctx context.Context) error {
	if t == nil || t.gap == 0 {
		return ctx.Err()
	}
	t.mu.Lock()
	slot := time.Now()
	if !t.last.IsZero() {
		if next := t.last.Add(t.gap); next.After(slot) {
			slot = next
		}
	}
	t.last = slot
	t.mu.Unlock()

	delay := time.Until(slot)
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
