package prefs

import (
	"sync"
	"time"

	"github.com/ntustvocab/vocabterm/internal/logging/events"
)

type entry struct {
	value   string
	expires time.Time
}

// Memory is an in-process Store. The zero value is not usable; call NewMemory.
type Memory struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]entry
	writes  int
}

// NewMemory returns an empty store that reads the wall clock.
func NewMemory() *Memory {
	return &Memory{now: time.Now, entries: make(map[string]entry)}
}

// SetClock replaces the time source used for expiry.
func (m *Memory) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if now == nil {
		now = time.Now
	}
	m.now = now
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return "", false
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.entries, key)
		return "", false
	}
	return e.value, true
}

func (m *Memory) Set(key, value string, ttl time.Duration) error {
	if key == "" {
		return ErrEmptyKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e := entry{value: value}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.entries[key] = e
	m.writes++
	events.Prefs.Set(key, value)
	return nil
}

func (m *Memory) Clear(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	m.writes++
	events.Prefs.Clear(key)
	return nil
}

// Writes counts Set and Clear calls since construction.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
