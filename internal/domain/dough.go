// Package domain defines the core types and interfaces for the dough calculator.
// All other packages depend on domain; domain depends on nothing.
package domain

// FlourLine is one flour entry in a dough. Order in a slice is display
// order only.
type FlourLine struct {
	ID   string
	Name string
	Mass float64 // grams
}

// Masses holds the ingredient masses derived from total flour.
type Masses struct {
	Water   float64
	Starter float64
	Salt    float64
}

// Ratios are baker's percentages relative to total flour mass.
type Ratios struct {
	Hydration    float64
	StarterRatio float64
	SaltRatio    float64
}

// Ingredients is the full ingredient set of one calculator.
type Ingredients struct {
	Flours []FlourLine
	Masses
}

// Field names one linked mass/ratio pair.
type Field int

const (
	FieldWater Field = iota
	FieldStarter
	FieldSalt
)

// String returns a human-readable field name.
func (f Field) String() string {
	switch f {
	case FieldWater:
		return "water"
	case FieldStarter:
		return "starter"
	case FieldSalt:
		return "salt"
	default:
		return "unknown"
	}
}

// Mass returns the mass paired with f.
func (m Masses) Mass(f Field) float64 {
	switch f {
	case FieldWater:
		return m.Water
	case FieldStarter:
		return m.Starter
	case FieldSalt:
		return m.Salt
	}
	return 0
}

// WithMass returns a copy of m with the mass for f replaced.
func (m Masses) WithMass(f Field, v float64) Masses {
	switch f {
	case FieldWater:
		m.Water = v
	case FieldStarter:
		m.Starter = v
	case FieldSalt:
		m.Salt = v
	}
	return m
}

// Ratio returns the percentage paired with f.
func (r Ratios) Ratio(f Field) float64 {
	switch f {
	case FieldWater:
		return r.Hydration
	case FieldStarter:
		return r.StarterRatio
	case FieldSalt:
		return r.SaltRatio
	}
	return 0
}

// WithRatio returns a copy of r with the percentage for f replaced.
func (r Ratios) WithRatio(f Field, v float64) Ratios {
	switch f {
	case FieldWater:
		r.Hydration = v
	case FieldStarter:
		r.StarterRatio = v
	case FieldSalt:
		r.SaltRatio = v
	}
	return r
}

// Summary is the rendered view of a calculator state.
type Summary struct {
	Flours      []FlourLine
	TotalFlour  float64
	Masses      Masses
	Ratios      Ratios
	TotalWeight float64
}

// Preset is a named ratio set.
type Preset struct {
	ID          string
	Name        string
	Description string
	Ratios      Ratios
}

// FlourTypes lists the suggested flour names. Free text is also accepted.
var FlourTypes = []string{
	"All-Purpose Flour",
	"Bread Flour",
	"Whole Wheat",
	"Rye",
	"Spelt",
	"Einkorn",
	"Semolina",
	"Buckwheat",
	"Rice Flour",
	"Custom",
}
