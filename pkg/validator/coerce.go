package validator

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var numericPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// IsNumeric reports whether v looks like a number.
// Numbers must be finite; strings are trimmed and matched against a decimal
// literal pattern (exponents allowed). The bare strings "", ".", "-" and "+"
// are never numeric.
func IsNumeric(v any) bool {
	switch n := v.(type) {
	case float64:
		return !math.IsNaN(n) && !math.IsInf(n, 0)
	case float32:
		return IsNumeric(float64(n))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case string:
		s := strings.TrimSpace(n)
		switch s {
		case "", ".", "-", "+":
			return false
		}
		return numericPattern.MatchString(s)
	case Value:
		if f, ok := n.Number(); ok {
			return IsNumeric(f)
		}
		if n.IsString() {
			return IsNumeric(n.String())
		}
		return false
	default:
		return false
	}
}

// toFloat converts a numeric-looking value. Callers check IsNumeric first.
func toFloat(v Value) (float64, bool) {
	if f, ok := v.Number(); ok {
		return f, IsNumeric(f)
	}
	return parseFloat(v.String())
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !IsNumeric(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ToList returns the elements of a list-like value: multi values as is, and
// comma-containing strings split into trimmed, non-empty parts.
func ToList(v Value) ([]string, bool) {
	if v.Shape() == ShapeMulti {
		return v.List(), true
	}
	if !v.IsString() {
		return nil, false
	}
	s := v.String()
	if !strings.Contains(s, ",") {
		return nil, false
	}
	return splitList(s), true
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsEmpty reports whether v counts as "no input": absent, a blank string,
// an empty multi value or an empty file set.
func IsEmpty(v Value) bool {
	switch v.Shape() {
	case ShapeAbsent:
		return true
	case ShapeMulti:
		return len(v.List()) == 0
	case ShapeFiles:
		return len(v.FileList()) == 0
	default:
		if v.IsString() {
			return strings.TrimSpace(v.String()) == ""
		}
		return false
	}
}

// textValues returns the comparable string forms of a value: the elements of
// a multi value, or the single stringified scalar.
func textValues(v Value) []string {
	if v.Shape() == ShapeMulti {
		return v.List()
	}
	return []string{v.String()}
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func hasExponent(s string) bool {
	return strings.ContainsAny(s, "eE")
}
