package prefs

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ntustvocab/vocabterm/internal/logging"
	"github.com/ntustvocab/vocabterm/internal/logging/events"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// SQLite is a Store backed by a single-table database file.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (creating if needed) the database at path. ":memory:" is
// accepted for tests.
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("prefs: empty database path")
	}
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("prefs: create dir: %w", err)
			}
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("prefs: open %s: %w", path, err)
	}
	// a single connection keeps ":memory:" databases shared across calls
	db.SetMaxOpenConns(1)
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db, now: time.Now}, nil
}

func initSchema(db *sql.DB) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("prefs: init schema: %w", err)
		}
	}
	return nil
}

// SetClock replaces the time source used for expiry.
func (s *SQLite) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	s.now = now
}

func (s *SQLite) Get(key string) (string, bool) {
	var value string
	var expires int64
	err := s.db.QueryRow(`SELECT value, expires_at FROM preferences WHERE key = ?`, key).Scan(&value, &expires)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logging.Errorf("prefs: get %s: %v", key, err)
		}
		return "", false
	}
	if expires != 0 && s.now().UnixNano() >= expires {
		s.db.Exec(`DELETE FROM preferences WHERE key = ?`, key)
		return "", false
	}
	return value, true
}

func (s *SQLite) Set(key, value string, ttl time.Duration) error {
	if key == "" {
		return ErrEmptyKey
	}
	var expires int64
	if ttl > 0 {
		expires = s.now().Add(ttl).UnixNano()
	}
	_, err := s.db.Exec(`INSERT INTO preferences (key, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, value, expires)
	if err != nil {
		return fmt.Errorf("prefs: set %s: %w", key, err)
	}
	events.Prefs.Set(key, value)
	return nil
}

func (s *SQLite) Clear(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if _, err := s.db.Exec(`DELETE FROM preferences WHERE key = ?`, key); err != nil {
		return fmt.Errorf("prefs: clear %s: %w", key, err)
	}
	events.Prefs.Clear(key)
	return nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}
