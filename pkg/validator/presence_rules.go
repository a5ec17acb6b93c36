package validator

import "strings"

func registerPresenceRules(r *Registry) {
	r.RegisterImplicit("required", ValidatorFunc(required))
	r.RegisterImplicit("required_if", ValidatorFunc(requiredIf))
	r.RegisterImplicit("required_with", ValidatorFunc(requiredWith))
	r.RegisterImplicit("required_unless", ValidatorFunc(requiredUnless))
	r.RegisterImplicit("accepted", ValidatorFunc(accepted))

	// Markers only.
	r.RegisterImplicit("nullable", ValidatorFunc(alwaysPass))
	r.RegisterImplicit("sometimes", ValidatorFunc(alwaysPass))
}

func alwaysPass(*Context, []string) Outcome { return Pass() }

func required(c *Context, _ []string) Outcome {
	if c.IsFile() {
		if len(c.Value.FileList()) > 0 {
			return Pass()
		}
		if c.Value.IsString() && strings.TrimSpace(c.Value.String()) != "" {
			return Pass()
		}
		return Fail("")
	}
	if IsEmpty(c.Value) {
		return Fail("")
	}
	return Pass()
}

func isComparisonOperator(s string) bool {
	return s == "=" || s == "==" || s == "!="
}

// matchesAny reports whether any comparable form of v equals one of values.
func matchesAny(v Value, values []string) bool {
	for _, item := range textValues(v) {
		for _, want := range values {
			if item == want {
				return true
			}
		}
	}
	return false
}

// requiredIf handles required_if:field,op,val... and the short form
// required_if:field,val... which compares with ==.
func requiredIf(c *Context, params []string) Outcome {
	if len(params) == 0 {
		return Pass()
	}

	other := params[0]
	op := "=="
	values := params[1:]
	if len(values) > 0 && isComparisonOperator(values[0]) {
		op, values = values[0], values[1:]
	}

	target, _ := c.LookupValue(other)

	var key string
	var applies bool
	switch {
	case len(values) == 0:
		key = "required_if_filled"
		applies = !IsEmpty(target)
	case op == "!=":
		key = "required_if_not"
		applies = !matchesAny(target, values)
	default:
		key = "required_if"
		applies = matchesAny(target, values)
	}

	if applies && IsEmpty(c.Value) {
		return Fail(key).With(map[string]string{
			"values": strings.Join(values, ", "),
		})
	}
	return Pass()
}

func requiredWith(c *Context, params []string) Outcome {
	if !IsEmpty(c.Value) {
		return Pass()
	}
	for _, other := range params {
		if v, ok := c.LookupValue(other); ok && !IsEmpty(v) {
			return Fail("")
		}
	}
	return Pass()
}

func requiredUnless(c *Context, params []string) Outcome {
	if len(params) == 0 || !IsEmpty(c.Value) {
		return Pass()
	}
	target, _ := c.LookupValue(params[0])
	if matchesAny(target, params[1:]) {
		return Pass()
	}
	return Fail("").With(map[string]string{
		"values": strings.Join(params[1:], ", "),
	})
}

var acceptedValues = map[string]bool{
	"true": true,
	"1":    true,
	"yes":  true,
	"on":   true,
}

func accepted(c *Context, _ []string) Outcome {
	if c.Value.Shape() != ShapeScalar {
		return Fail("")
	}
	if acceptedValues[c.Value.String()] {
		return Pass()
	}
	return Fail("")
}
