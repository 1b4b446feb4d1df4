package display

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hammamikhairi/ottodough/internal/domain"
)

// FormatGrams prints whole grams without a decimal and anything else
// with one decimal place.
func FormatGrams(g float64) string {
	if g == float64(int64(g)) {
		return strconv.FormatInt(int64(g), 10) + " g"
	}
	return strconv.FormatFloat(g, 'f', 1, 64) + " g"
}

// FormatPercent prints a baker's percentage with at most two decimals.
func FormatPercent(p float64) string {
	return strconv.FormatFloat(math.Round(p*100)/100, 'f', -1, 64) + "%"
}

// RenderSummary lays out a dough summary as an aligned table.
func RenderSummary(s domain.Summary) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("  Flours"))
	b.WriteByte('\n')
	for i, f := range s.Flours {
		b.WriteString(primaryStyle.Render(fmt.Sprintf("  %2d. %-20s %10s", i+1, f.Name, FormatGrams(f.Mass))))
		b.WriteByte('\n')
	}
	b.WriteString(secondaryStyle.Render(fmt.Sprintf("      %-20s %10s", "total", FormatGrams(s.TotalFlour))))
	b.WriteByte('\n')

	b.WriteString(headerStyle.Render("  Ingredients"))
	b.WriteByte('\n')
	rows := []struct {
		label string
		mass  float64
		ratio float64
	}{
		{"Water", s.Masses.Water, s.Ratios.Hydration},
		{"Starter", s.Masses.Starter, s.Ratios.StarterRatio},
		{"Salt", s.Masses.Salt, s.Ratios.SaltRatio},
	}
	for _, r := range rows {
		b.WriteString(primaryStyle.Render(fmt.Sprintf("      %-20s %10s", r.label, FormatGrams(r.mass))))
		b.WriteString(secondaryStyle.Render(fmt.Sprintf("  %s", FormatPercent(r.ratio))))
		b.WriteByte('\n')
	}

	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-24s %10s", "Total dough", FormatGrams(s.TotalWeight))))
	return b.String()
}
