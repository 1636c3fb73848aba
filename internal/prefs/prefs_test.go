package prefs

import (
	"path/filepath"
	"testing"
	"time"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func storesUnderTest(t *testing.T) map[string]func(*clock) Store {
	t.Helper()
	return map[string]func(*clock) Store{
		"memory": func(c *clock) Store {
			m := NewMemory()
			m.SetClock(c.Now)
			return m
		},
		"sqlite": func(c *clock) Store {
			s, err := OpenSQLite(filepath.Join(t.TempDir(), "prefs.db"))
			if err != nil {
				t.Fatalf("open sqlite: %v", err)
			}
			t.Cleanup(func() { s.Close() })
			s.SetClock(c.Now)
			return s
		},
	}
}

func TestStoreRoundTripAndExpiry(t *testing.T) {
	for name, build := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			c := &clock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
			store := build(c)

			if _, ok := store.Get(KeyLastPart); ok {
				t.Fatalf("expected empty store")
			}
			if err := store.Set(KeyLastPart, "3", DefaultTTL); err != nil {
				t.Fatalf("set: %v", err)
			}
			if got, ok := store.Get(KeyLastPart); !ok || got != "3" {
				t.Fatalf("expected 3, got %q (%v)", got, ok)
			}
			if err := store.Set(KeyLastPart, "4", DefaultTTL); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			if got, _ := store.Get(KeyLastPart); got != "4" {
				t.Fatalf("expected overwrite to 4, got %q", got)
			}

			c.now = c.now.Add(DefaultTTL - time.Second)
			if _, ok := store.Get(KeyLastPart); !ok {
				t.Fatalf("expected value before expiry")
			}
			c.now = c.now.Add(time.Second)
			if _, ok := store.Get(KeyLastPart); ok {
				t.Fatalf("expected value to expire after a year")
			}
		})
	}
}

func TestStoreClear(t *testing.T) {
	for name, build := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			store := build(&clock{now: time.Unix(0, 0)})
			if err := store.Set(KeyLastTopic, "toefl", 0); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := store.Clear(KeyLastTopic); err != nil {
				t.Fatalf("clear: %v", err)
			}
			if _, ok := store.Get(KeyLastTopic); ok {
				t.Fatalf("expected cleared key to be absent")
			}
			if err := store.Set("", "x", 0); err != ErrEmptyKey {
				t.Fatalf("expected ErrEmptyKey, got %v", err)
			}
		})
	}
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.db")
	first, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Set(KeyLayout, "list", DefaultTTL); err != nil {
		t.Fatalf("set: %v", err)
	}
	first.Close()

	second, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	if got, ok := second.Get(KeyLayout); !ok || got != "list" {
		t.Fatalf("expected persisted layout, got %q (%v)", got, ok)
	}
}

func TestMemoryCountsWrites(t *testing.T) {
	m := NewMemory()
	m.Set(KeyLastPart, "1", DefaultTTL)
	m.Set(KeyLastTopic, "pvqc-ict", DefaultTTL)
	m.Get(KeyLastPart)
	m.Clear(KeyLastPart)
	if got := m.Writes(); got != 3 {
		t.Fatalf("expected 3 writes, got %d", got)
	}
}
