package validator

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	defaultFileSizeMB     = 4
	defaultCurrencyMaxLen = 16
)

var (
	digitsRegex   = regexp.MustCompile(`^\d+$`)
	currencyRegex = regexp.MustCompile(`^[\d,]*(\.\d*)?$`)
	clockRegex    = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)
)

func registerSizeRules(r *Registry) {
	r.RegisterFunc("min", minRule)
	r.RegisterFunc("max", maxRule)
	r.RegisterFunc("between", between)
	r.RegisterFunc("size", fileSize)
	r.RegisterFunc("digits", digits)
	r.RegisterFunc("digits_between", digitsBetween)
	r.RegisterFunc("decimal", decimal)
	r.RegisterFunc("currency", currency)
	r.RegisterFunc("min_length", minLength)
	r.RegisterFunc("max_length", maxLength)
}

// measure returns the quantity min, max and between compare against:
// file count for file fields, the number for numeric-looking values,
// element count for lists, rune length otherwise.
func measure(c *Context) float64 {
	if c.IsFile() {
		return float64(len(c.Value.FileList()))
	}
	if c.Value.Shape() == ShapeMulti {
		return float64(len(c.Value.List()))
	}
	if f, ok := toFloat(c.Value); ok {
		return f
	}
	if list, ok := ToList(c.Value); ok {
		return float64(len(list))
	}
	return float64(runeLen(c.Value.String()))
}

func intParam(params []string, i int) (int, bool) {
	if i >= len(params) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(params[i]))
	if err != nil {
		return 0, false
	}
	return n, true
}

func floatParam(params []string, i int) (float64, bool) {
	if i >= len(params) {
		return 0, false
	}
	return parseFloat(params[i])
}

func minRule(c *Context, params []string) Outcome {
	limit, ok := floatParam(params, 0)
	if !ok || measure(c) >= limit {
		return Pass()
	}
	return Fail("")
}

func maxRule(c *Context, params []string) Outcome {
	limit, ok := floatParam(params, 0)
	if !ok || measure(c) <= limit {
		return Pass()
	}
	return Fail("")
}

// clockMinutes converts HH:MM into minutes since midnight.
func clockMinutes(s string) (int, bool) {
	m := clockRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	return h*60 + mins, true
}

func between(c *Context, params []string) Outcome {
	if len(params) < 2 {
		return Pass()
	}

	if c.Kind == KindTime {
		lo, okLo := clockMinutes(params[0])
		hi, okHi := clockMinutes(params[1])
		if !okLo || !okHi {
			return Pass()
		}
		v, ok := clockMinutes(c.Value.String())
		if !ok || v < lo || v > hi {
			return Fail("")
		}
		return Pass()
	}

	lo, okLo := floatParam(params, 0)
	hi, okHi := floatParam(params, 1)
	if !okLo || !okHi {
		return Pass()
	}
	if v := measure(c); v < lo || v > hi {
		return Fail("")
	}
	return Pass()
}

// fileSize implements size:mb, a per-file cap in megabytes.
func fileSize(c *Context, params []string) Outcome {
	mb, ok := floatParam(params, 0)
	if !ok || mb <= 0 {
		mb = defaultFileSizeMB
	}
	limit := int64(mb * 1024 * 1024)
	for _, f := range c.Value.FileList() {
		if f.Size > limit {
			return Fail("").With(map[string]string{"size": formatNumber(mb)})
		}
	}
	return Pass()
}

func digitString(v Value) (string, bool) {
	s := strings.TrimSpace(v.String())
	if v.Shape() != ShapeScalar || !digitsRegex.MatchString(s) {
		return "", false
	}
	return s, true
}

func digits(c *Context, params []string) Outcome {
	n, ok := intParam(params, 0)
	if !ok {
		return Pass()
	}
	s, ok := digitString(c.Value)
	if !ok || len(s) != n {
		return Fail("")
	}
	return Pass()
}

func digitsBetween(c *Context, params []string) Outcome {
	lo, okLo := intParam(params, 0)
	hi, okHi := intParam(params, 1)
	if !okLo || !okHi {
		return Pass()
	}
	s, ok := digitString(c.Value)
	if !ok || len(s) < lo || len(s) > hi {
		return Fail("")
	}
	return Pass()
}

// decimal checks the number of digits after the decimal point:
// decimal:n requires exactly n, decimal:min,max a range.
func decimal(c *Context, params []string) Outcome {
	lo, ok := intParam(params, 0)
	if !ok {
		return Pass()
	}
	hi := lo
	if len(params) > 1 {
		if hi, ok = intParam(params, 1); !ok {
			return Pass()
		}
	}

	s := strings.TrimSpace(c.Value.String())
	if c.Value.Shape() != ShapeScalar || hasExponent(s) || !IsNumeric(s) {
		return Fail("")
	}

	places := 0
	if i := strings.IndexByte(s, '.'); i >= 0 {
		places = len(s) - i - 1
	}
	if places >= lo && places <= hi {
		return Pass()
	}
	if len(params) > 1 {
		return Fail("decimal_between")
	}
	return Fail("")
}

func currency(c *Context, params []string) Outcome {
	maxLen, ok := intParam(params, 0)
	if !ok || maxLen <= 0 {
		maxLen = defaultCurrencyMaxLen
	}
	s := strings.TrimSpace(c.Value.String())
	if c.Value.Shape() != ShapeScalar ||
		!currencyRegex.MatchString(s) ||
		!strings.ContainsAny(s, "0123456789") ||
		len(s) > maxLen {
		return Fail("").With(map[string]string{"max": strconv.Itoa(maxLen)})
	}
	return Pass()
}

func minLength(c *Context, params []string) Outcome {
	n, ok := intParam(params, 0)
	if !ok || runeLen(c.Value.String()) >= n {
		return Pass()
	}
	return Fail("")
}

func maxLength(c *Context, params []string) Outcome {
	n, ok := intParam(params, 0)
	if !ok || runeLen(c.Value.String()) <= n {
		return Pass()
	}
	return Fail("")
}
