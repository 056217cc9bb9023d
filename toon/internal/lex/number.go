package lex

import (
	"math"
	"regexp"
	"strconv"
)

// numberRE implements the decoder's number grammar from spec.md §4.3:
// optional '-', then either "0" or a non-zero digit followed by more
// digits (no leading zeros), an optional fractional part, and an optional
// exponent. A leading zero followed by another digit (e.g. "05") does not
// match and is therefore a string, not a number.
var numberRE = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// IsNumber reports whether s matches the decoder's number grammar -- used
// both to parse numeric scalars and, via the string classifier, to decide
// that a numeric-looking string must be quoted so it round-trips as a
// string.
func IsNumber(s string) bool {
	return numberRE.MatchString(s)
}

// ParseNumber parses s, which must already satisfy [IsNumber], into either
// an int64 or a float64. It is parsed as an integer when it has no '.' and
// no exponent; otherwise, or when the integer form overflows int64, it is
// parsed as a float.
func ParseNumber(s string) (isInt bool, i int64, f float64, err error) {
	if !hasFractionOrExponent(s) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return true, n, 0, nil
		}
		// Overflow: fall back to float64, per SPEC_FULL.md §3.
	}

	fv, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false, 0, 0, err
	}

	return false, 0, fv, nil
}

func hasFractionOrExponent(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.', 'e', 'E':
			return true
		}
	}

	return false
}

// FormatInt returns the canonical decimal form of i: optional leading
// minus, no leading zeros, no exponent, no decimal point.
func FormatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

// FormatFloat returns the canonical decimal form of f: shortest
// round-trip decimal without exponent, no trailing fractional zeros, and
// -0.0 normalized to "0". f must not be NaN or infinite (callers reject
// those before formatting; see toon.ErrUnsupportedValue).
func FormatFloat(f float64) string {
	if f == 0 {
		return "0"
	}

	// strconv's shortest-round-trip algorithm in 'f' mode never emits an
	// exponent and never pads trailing fractional zeros, so this is
	// already canonical form; an integer-valued float like 30.0 comes
	// back as "30" with no decimal point at all.
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// IsIntegral reports whether f has no fractional part and is finite.
func IsIntegral(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f) && math.Trunc(f) == f
}
