// Package dough implements the sourdough ratio engine: pure functions that
// keep ingredient masses and baker's percentages consistent after a single
// edit, plus the flour collection those percentages are measured against.
//
// Every operation is a closed-form pass over its inputs. Nothing here
// mutates its arguments; callers commit the returned values.
package dough

import (
	"math"

	"github.com/hammamikhairi/ottodough/internal/domain"
)

// Rounding is half away from zero (math.Round). Inputs are non-negative,
// so this matches rounding half up.
func roundGrams(x float64) float64 { return math.Round(x) }

func roundTenth(x float64) float64 { return math.Round(x*10) / 10 }

// TotalFlour sums the mass of every flour line.
func TotalFlour(flours []domain.FlourLine) float64 {
	var sum float64
	for _, f := range flours {
		sum += f.Mass
	}
	return sum
}

// TotalWeight is the full dough weight: flour plus every derived mass.
func TotalWeight(totalFlour float64, m domain.Masses) float64 {
	return totalFlour + m.Water + m.Starter + m.Salt
}

// DeriveFromTotal computes water, starter and salt from total flour.
// Water and starter round to whole grams, salt to a tenth of a gram.
// A non-positive total yields all zeros.
func DeriveFromTotal(totalFlour float64, r domain.Ratios) domain.Masses {
	if totalFlour <= 0 {
		return domain.Masses{}
	}
	return domain.Masses{
		Water:   roundGrams(totalFlour * (r.Hydration / 100)),
		Starter: roundGrams(totalFlour * (r.StarterRatio / 100)),
		Salt:    roundTenth(totalFlour * (r.SaltRatio / 100)),
	}
}

// SetMassDriven makes the mass for field authoritative. The paired ratio
// becomes 100*value/totalFlour; the other ratios are untouched. The edited
// mass is returned exactly as given and the other two masses are derived
// from their own ratios.
//
// With no flour the ratio is undefined, so the previous ratio is kept.
func SetMassDriven(field domain.Field, value, totalFlour float64, r domain.Ratios) (domain.Ratios, domain.Masses) {
	if ratio, ok := ratioOf(value, totalFlour); ok {
		r = r.WithRatio(field, ratio)
	}
	m := DeriveFromTotal(totalFlour, r).WithMass(field, value)
	return r, m
}

// SetRatioDriven makes the ratio for field authoritative and derives every
// mass from the updated ratio set.
func SetRatioDriven(field domain.Field, value, totalFlour float64, r domain.Ratios) (domain.Ratios, domain.Masses) {
	r = r.WithRatio(field, value)
	return r, DeriveFromTotal(totalFlour, r)
}

// RecomputeFromFlourChange re-sums the flour and derives every mass with the
// existing ratios, so a change in flour scales the dough proportionally.
func RecomputeFromFlourChange(flours []domain.FlourLine, r domain.Ratios) (float64, domain.Masses) {
	total := TotalFlour(flours)
	return total, DeriveFromTotal(total, r)
}

// ratioOf returns 100*mass/total, or false when the result would not be finite.
func ratioOf(mass, total float64) (float64, bool) {
	if total <= 0 {
		return 0, false
	}
	v := mass / total * 100
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
