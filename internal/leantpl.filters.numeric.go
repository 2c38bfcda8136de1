package internal

import (
	"math"
	"strconv"
	"strings"
)

// Numeric filter name constants
const (
	FilterNameAbs   = "abs"
	FilterNameRound = "round"
	FilterNameCeil  = "ceil"
	FilterNameFloor = "floor"
)

// registerNumericFilters registers numeric filters. Non-numeric values
// pass through unchanged.
func registerNumericFilters(r *FilterRegistry) {
	r.Register(FilterNameAbs, func(value any, args []string) (any, error) {
		switch v := value.(type) {
		case int:
			if v < 0 {
				return -v, nil
			}
			return v, nil
		case int64:
			if v < 0 {
				return -v, nil
			}
			return v, nil
		case float64:
			return math.Abs(v), nil
		}
		return value, nil
	})

	// round(ndigits) rounds to the given number of decimal places,
	// defaulting to 0.
	r.Register(FilterNameRound, func(value any, args []string) (any, error) {
		n, ok := numericValue(value)
		if !ok {
			return value, nil
		}
		digits := 0
		if len(args) > 0 {
			if d, err := strconv.Atoi(strings.TrimSpace(args[0])); err == nil {
				digits = d
			}
		}
		scale := math.Pow10(digits)
		rounded := math.Round(n*scale) / scale
		if digits <= 0 {
			return int(rounded), nil
		}
		return rounded, nil
	})

	r.Register(FilterNameCeil, func(value any, args []string) (any, error) {
		if n, ok := numericValue(value); ok {
			return int(math.Ceil(n)), nil
		}
		return value, nil
	})

	r.Register(FilterNameFloor, func(value any, args []string) (any, error) {
		if n, ok := numericValue(value); ok {
			return int(math.Floor(n)), nil
		}
		return value, nil
	})
}
