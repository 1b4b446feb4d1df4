package dough

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/hammamikhairi/ottodough/internal/domain"
)

// Defaults for a freshly added flour line.
const (
	DefaultAddName         = "Bread Flour"
	DefaultAddMass float64 = 100
)

// newID generates flour line IDs. Replaced in tests.
var newID = uuid.NewString

// NormalizeFlourName collapses whitespace and snaps a name onto a known
// flour type when it matches one case-insensitively. Any other name is kept
// as typed. An empty name becomes "Custom".
func NormalizeFlourName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return "Custom"
	}
	// A Caser is stateful and cannot be shared between goroutines.
	fold := cases.Fold()
	key := fold.String(name)
	for _, t := range domain.FlourTypes {
		if fold.String(t) == key {
			return t
		}
	}
	return name
}

// IndexOf returns the position of the line with the given ID, or -1.
func IndexOf(flours []domain.FlourLine, id string) int {
	for i, f := range flours {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// AddLine appends a new line with a fresh ID. Existing lines are not touched.
func AddLine(flours []domain.FlourLine, name string, mass float64) []domain.FlourLine {
	out := make([]domain.FlourLine, len(flours), len(flours)+1)
	copy(out, flours)
	return append(out, domain.FlourLine{
		ID:   newID(),
		Name: NormalizeFlourName(name),
		Mass: mass,
	})
}

// RemoveLine removes the line with the given ID. Removing the only line, or
// an unknown ID, is a no-op and reports false.
func RemoveLine(flours []domain.FlourLine, id string) ([]domain.FlourLine, bool) {
	idx := IndexOf(flours, id)
	if idx < 0 || len(flours) <= 1 {
		return flours, false
	}
	out := make([]domain.FlourLine, 0, len(flours)-1)
	out = append(out, flours[:idx]...)
	out = append(out, flours[idx+1:]...)
	return out, true
}

// RenameLine changes a line's name only.
func RenameLine(flours []domain.FlourLine, id, name string) ([]domain.FlourLine, bool) {
	return updateLine(flours, id, func(f *domain.FlourLine) { f.Name = NormalizeFlourName(name) })
}

// ReweighLine sets a line's mass.
func ReweighLine(flours []domain.FlourLine, id string, mass float64) ([]domain.FlourLine, bool) {
	return updateLine(flours, id, func(f *domain.FlourLine) { f.Mass = mass })
}

func updateLine(flours []domain.FlourLine, id string, fn func(*domain.FlourLine)) ([]domain.FlourLine, bool) {
	idx := IndexOf(flours, id)
	if idx < 0 {
		return flours, false
	}
	out := make([]domain.FlourLine, len(flours))
	copy(out, flours)
	fn(&out[idx])
	return out, true
}
