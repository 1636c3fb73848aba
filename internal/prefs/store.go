// Package prefs persists the last-used selection, view layout and theme.
package prefs

import (
	"errors"
	"time"
)

// Keys written by the application.
const (
	KeyLastPart  = "lastPart"
	KeyLastTopic = "lastTopic"
	KeyLayout    = "layout"
	KeyTheme     = "theme"
)

// DefaultTTL matches the one-year lifetime of the browser cookies.
const DefaultTTL = 365 * 24 * time.Hour

// ErrEmptyKey is returned when a key is blank.
var ErrEmptyKey = errors.New("prefs: empty key")

// Store is a string key/value store with per-entry expiry. Expired entries
// read as absent.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string, ttl time.Duration) error
	Clear(key string) error
}
