package dough

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hammamikhairi/ottodough/internal/domain"
)

// ParseQuantity reads a user-typed mass or percentage. Trailing "g" or "%"
// units are accepted. Non-numeric and non-finite input is rejected;
// negative values are clamped to zero.
func ParseQuantity(s string) (float64, error) {
	t := strings.TrimSpace(s)
	t = strings.TrimSuffix(t, "%")
	t = strings.TrimSuffix(t, "g")
	t = strings.TrimSpace(t)
	if t == "" {
		return 0, fmt.Errorf("%w: empty", domain.ErrInvalidQuantity)
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidQuantity, s)
	}
	return ClampQuantity(v)
}

// ClampQuantity validates an already-numeric input.
func ClampQuantity(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: not finite", domain.ErrInvalidQuantity)
	}
	if v < 0 {
		return 0, nil
	}
	return v, nil
}
