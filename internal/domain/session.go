package domain

import "time"

// Session is one calculator instance. Sessions are independent of each
// other and live only in memory.
type Session struct {
	ID          string
	Ingredients Ingredients
	Ratios      Ratios
	PresetID    string // last applied preset, empty if edited by hand
	Status      SessionStatus
	StartedAt   time.Time
	UpdatedAt   time.Time
}

// SessionStatus tracks the lifecycle of a calculator session.
type SessionStatus int

const (
	SessionActive SessionStatus = iota
	SessionAbandoned
)

// String returns a human-readable session status.
func (s SessionStatus) String() string {
	switch s {
	case SessionActive:
		return "active"
	case SessionAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}
