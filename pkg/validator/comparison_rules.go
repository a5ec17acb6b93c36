package validator

func registerComparisonRules(r *Registry) {
	r.RegisterFunc("same", same)
	r.RegisterFunc("different", different)
	r.RegisterFunc("confirmed", confirmed)
	r.RegisterFunc("gt", compareRule(func(a, b float64) bool { return a > b }))
	r.RegisterFunc("gte", compareRule(func(a, b float64) bool { return a >= b }))
	r.RegisterFunc("lt", compareRule(func(a, b float64) bool { return a < b }))
	r.RegisterFunc("lte", compareRule(func(a, b float64) bool { return a <= b }))
}

func same(c *Context, params []string) Outcome {
	if len(params) == 0 {
		return Pass()
	}
	other, ok := c.LookupValue(params[0])
	if !ok {
		return Fail(KeySameMissing)
	}
	if c.Value.String() != other.String() {
		return Fail("")
	}
	return Pass()
}

func different(c *Context, params []string) Outcome {
	if len(params) == 0 {
		return Pass()
	}
	other, ok := c.LookupValue(params[0])
	if !ok || c.Value.String() != other.String() {
		return Pass()
	}
	return Fail("")
}

// ConfirmationSuffix names the companion field checked by the confirmed rule.
const ConfirmationSuffix = "_confirmation"

func confirmed(c *Context, _ []string) Outcome {
	v, ok := c.LookupValue(c.Name + ConfirmationSuffix)
	if !ok {
		return Fail(KeyConfirmedMissing)
	}
	if c.Value.String() != v.String() {
		return Fail("")
	}
	return Pass()
}

// operand resolves a comparison parameter: a field of the same source when
// one exists under that name, the literal otherwise.
func operand(c *Context, param string) (v Value, isField bool) {
	if v, ok := c.LookupValue(param); ok {
		return v, true
	}
	return String(param), false
}

// compareRule compares numerically when both sides look numeric and by
// string length otherwise. Length comparison is kept for compatibility with
// existing rule sets, so "abc" gt "zz" holds.
func compareRule(cmp func(a, b float64) bool) func(*Context, []string) Outcome {
	return func(c *Context, params []string) Outcome {
		if len(params) == 0 {
			return Pass()
		}

		other, isField := operand(c, params[0])
		if isField && IsEmpty(other) {
			return Pass()
		}

		var a, b float64
		fa, okA := toFloat(c.Value)
		fb, okB := toFloat(other)
		if okA && okB {
			a, b = fa, fb
		} else {
			a, b = float64(runeLen(c.Value.String())), float64(runeLen(other.String()))
		}

		if cmp(a, b) {
			return Pass()
		}
		if isField {
			return Fail("")
		}
		return Fail("").With(map[string]string{"other": params[0]})
	}
}
