package token

import (
	"fmt"
	"math"
	"strconv"
)

// Literal texts for the keyword scalars.
const (
	Null  = "null"
	True  = "true"
	False = "false"
)

// FormatInt renders v as an integer literal.
func FormatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

// FormatFloat renders v as a numeric literal. The non-finite values render
// as NaN, Infinity and -Infinity unless strict is set, in which case they
// are rejected with ErrBadNumber.
func FormatFloat(v float64, strict bool) (string, error) {
	switch {
	case math.IsNaN(v):
		if strict {
			return "", fmt.Errorf("%w: NaN", ErrBadNumber)
		}
		return "NaN", nil
	case math.IsInf(v, 1):
		if strict {
			return "", fmt.Errorf("%w: Infinity", ErrBadNumber)
		}
		return "Infinity", nil
	case math.IsInf(v, -1):
		if strict {
			return "", fmt.Errorf("%w: -Infinity", ErrBadNumber)
		}
		return "-Infinity", nil
	}
	return strconv.FormatFloat(v, 'g', -1, 64), nil
}
