package state

import "time"

// Health is the last known reachability of the word API.
type Health int

const (
	HealthUnknown Health = iota
	HealthUp
	HealthNotStarted
	HealthUnreachable
)

func (h Health) String() string {
	switch h {
	case HealthUp:
		return "up"
	case HealthNotStarted:
		return "not-started"
	case HealthUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

type HealthStore interface {
	Health() Health
	SetHealth(Health, error, time.Time)
	Err() error
	Checked() time.Time
}

type healthStore struct {
	health  Health
	err     error
	checked time.Time
}

func NewHealthStore() HealthStore {
	return &healthStore{}
}

func (s *healthStore) Health() Health {
	return s.health
}

func (s *healthStore) SetHealth(h Health, err error, at time.Time) {
	s.health = h
	s.err = err
	s.checked = at
}

func (s *healthStore) Err() error {
	return s.err
}

func (s *healthStore) Checked() time.Time {
	return s.checked
}
