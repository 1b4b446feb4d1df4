package engine

import "github.com/google/uuid"

// newSessionID creates a random ID for calculator sessions.
func newSessionID() string {
	return uuid.NewString()
}
