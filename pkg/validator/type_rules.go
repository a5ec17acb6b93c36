package validator

import (
	"math"

	"github.com/valyala/fastjson"
)

func registerTypeRules(r *Registry) {
	r.RegisterFunc("string", isString)
	r.RegisterFunc("numeric", numeric)
	r.RegisterFunc("float", numeric)
	r.RegisterFunc("double", numeric)
	r.RegisterFunc("integer", integer)
	r.RegisterFunc("boolean", boolean)
	r.RegisterFunc("array", array)
	r.RegisterFunc("json", isJSON)
	r.RegisterFunc("file", isFile)
}

func isString(c *Context, _ []string) Outcome {
	if c.Value.IsString() {
		return Pass()
	}
	return Fail("")
}

// numberOf returns the numeric payload for number scalars and numeric strings.
// Strings in scientific notation are rejected even though IsNumeric accepts them.
func numberOf(v Value) (float64, bool) {
	if f, ok := v.Number(); ok {
		return f, IsNumeric(f)
	}
	if !v.IsString() {
		return 0, false
	}
	s := v.String()
	if hasExponent(s) {
		return 0, false
	}
	return parseFloat(s)
}

func numeric(c *Context, _ []string) Outcome {
	if _, ok := numberOf(c.Value); ok {
		return Pass()
	}
	return Fail("")
}

func integer(c *Context, _ []string) Outcome {
	f, ok := numberOf(c.Value)
	if !ok || math.Trunc(f) != f {
		return Fail("")
	}
	return Pass()
}

var booleanValues = map[string]bool{
	"true":  true,
	"false": true,
	"1":     true,
	"0":     true,
	"yes":   true,
	"no":    true,
	"on":    true,
	"off":   true,
}

func boolean(c *Context, _ []string) Outcome {
	if c.Value.Shape() == ShapeScalar && booleanValues[c.Value.String()] {
		return Pass()
	}
	return Fail("")
}

func array(c *Context, _ []string) Outcome {
	if _, ok := ToList(c.Value); ok {
		return Pass()
	}
	return Fail("")
}

func isJSON(c *Context, _ []string) Outcome {
	if c.Value.Shape() != ShapeScalar {
		return Fail("")
	}
	if err := fastjson.Validate(c.Value.String()); err != nil {
		return Fail("")
	}
	return Pass()
}

func isFile(c *Context, _ []string) Outcome {
	if c.Value.Shape() == ShapeFiles {
		return Pass()
	}
	return Fail("")
}
