package dough

import "github.com/hammamikhairi/ottodough/internal/domain"

// Defaults used when a calculator is first created.
var (
	DefaultRatios = domain.Ratios{Hydration: 70, StarterRatio: 20, SaltRatio: 2}
)

const (
	DefaultFlourName         = "All-Purpose Flour"
	DefaultFlourMass float64 = 500
)

// State is an immutable snapshot of one calculator: the ingredient set and
// the ratio set. Every method returns a new State and leaves the receiver
// unchanged.
type State struct {
	Ingredients domain.Ingredients
	Ratios      domain.Ratios
}

// NewState builds a state with a single flour line and masses derived from r.
func NewState(flourName string, flourMass float64, r domain.Ratios) State {
	s := State{Ratios: r}
	return s.withFlours(AddLine(nil, flourName, flourMass))
}

// DefaultState is 500 g all-purpose flour at 70% hydration, 20% starter, 2% salt.
func DefaultState() State {
	return NewState(DefaultFlourName, DefaultFlourMass, DefaultRatios)
}

// TotalFlour is the base quantity all ratios refer to.
func (s State) TotalFlour() float64 {
	return TotalFlour(s.Ingredients.Flours)
}

// withFlours commits a changed flour collection and rescales the masses.
func (s State) withFlours(flours []domain.FlourLine) State {
	_, m := RecomputeFromFlourChange(flours, s.Ratios)
	s.Ingredients = domain.Ingredients{Flours: flours, Masses: m}
	return s
}

// AddFlour appends a flour line and rescales.
func (s State) AddFlour(name string, mass float64) State {
	return s.withFlours(AddLine(s.Ingredients.Flours, name, mass))
}

// RemoveFlour removes a flour line and rescales. The last line is never
// removed; ok is false when nothing changed.
func (s State) RemoveFlour(id string) (State, bool) {
	flours, ok := RemoveLine(s.Ingredients.Flours, id)
	if !ok {
		return s, false
	}
	return s.withFlours(flours), true
}

// RenameFlour renames a flour line. Masses are not recomputed.
func (s State) RenameFlour(id, name string) (State, bool) {
	flours, ok := RenameLine(s.Ingredients.Flours, id, name)
	if !ok {
		return s, false
	}
	s.Ingredients.Flours = flours
	return s, true
}

// ReweighFlour sets a flour line's mass and rescales.
func (s State) ReweighFlour(id string, mass float64) (State, bool) {
	flours, ok := ReweighLine(s.Ingredients.Flours, id, mass)
	if !ok {
		return s, false
	}
	return s.withFlours(flours), true
}

// SetMass makes the mass for field the driving value.
func (s State) SetMass(field domain.Field, grams float64) State {
	r, m := SetMassDriven(field, grams, s.TotalFlour(), s.Ratios)
	s.Ratios = r
	s.Ingredients.Masses = m
	return s
}

// SetRatio makes the ratio for field the driving value.
func (s State) SetRatio(field domain.Field, percent float64) State {
	r, m := SetRatioDriven(field, percent, s.TotalFlour(), s.Ratios)
	s.Ratios = r
	s.Ingredients.Masses = m
	return s
}

// ApplyRatios replaces the whole ratio set, as a preset does, and derives
// every mass from it.
func (s State) ApplyRatios(r domain.Ratios) State {
	s.Ratios = r
	s.Ingredients.Masses = DeriveFromTotal(s.TotalFlour(), r)
	return s
}

// Summary returns the display view of the state.
func (s State) Summary() domain.Summary {
	total := s.TotalFlour()
	flours := make([]domain.FlourLine, len(s.Ingredients.Flours))
	copy(flours, s.Ingredients.Flours)
	return domain.Summary{
		Flours:      flours,
		TotalFlour:  total,
		Masses:      s.Ingredients.Masses,
		Ratios:      s.Ratios,
		TotalWeight: TotalWeight(total, s.Ingredients.Masses),
	}
}
