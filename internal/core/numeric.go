// Package core provides the shopping-list domain model and the pure
// calculations built on it.
//
// This file contains the numeric normalizer applied to persisted values,
// which may arrive as numbers, numeric strings, null or garbage.
package core

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number coerces a raw persisted value into a finite number.
//
// Finite numbers are returned unchanged. Strings are trimmed and parsed,
// accepting a decimal comma ("12,5"). Anything else, including nil, empty
// strings, booleans, NaN and infinities, yields def.
//
// Examples:
//
//	Number(3.5, 0)   -> 3.5
//	Number("3", 1)   -> 3
//	Number(nil, 1)   -> 1
//	Number("abc", 0) -> 0
func Number(v any, def float64) float64 {
	var f float64
	switch n := v.(type) {
	case nil:
		return def
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case json.Number:
		return parseNumber(string(n), def)
	case string:
		return parseNumber(n, def)
	default:
		return def
	}
	if !finite(f) {
		return def
	}
	return f
}

func parseNumber(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	s, ok := decimalComma(s)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(f) {
		return def
	}
	return f
}

// decimalComma rewrites a decimal comma to a dot. A comma is only a decimal
// separator when it is the sole separator and is followed by one or two
// digits; anything else ("4,500", "1,234,567", "1.5,2") reads as a grouping
// separator and is rejected.
func decimalComma(s string) (string, bool) {
	i := strings.IndexByte(s, ',')
	if i < 0 {
		return s, true
	}
	frac := s[i+1:]
	if strings.ContainsAny(s[:i], ".") || len(frac) == 0 || len(frac) > 2 {
		return "", false
	}
	for _, r := range frac {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return s[:i] + "." + frac, true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Quantity normalizes an item quantity. Missing or malformed values default
// to 1; negative quantities are malformed as well.
func Quantity(v any) float64 {
	q := Number(v, 1)
	if q < 0 {
		return 1
	}
	return q
}

// Price normalizes an estimated unit price, defaulting to 0.
func Price(v any) float64 {
	return Number(v, 0)
}

// Budget normalizes a list budget. Absent and zero budgets are the same thing.
func Budget(v any) float64 {
	return Number(v, 0)
}

// Flag coerces a persisted boolean that may have been stored as a string or number.
func Flag(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		ok, err := strconv.ParseBool(strings.TrimSpace(b))
		return err == nil && ok
	default:
		return Number(v, 0) != 0
	}
}
