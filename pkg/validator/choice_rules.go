package validator

import (
	"slices"
	"strings"
)

func registerChoiceRules(r *Registry) {
	r.RegisterFunc("in", in)
	r.RegisterFunc("not_in", notIn)
	r.RegisterFunc("contains", contains)
	r.RegisterFunc("doesnt_contain", doesntContain)
}

// in requires every selected element to be one of params.
func in(c *Context, params []string) Outcome {
	for _, v := range textValues(c.Value) {
		if !slices.Contains(params, v) {
			return Fail("")
		}
	}
	return Pass()
}

func notIn(c *Context, params []string) Outcome {
	for _, v := range textValues(c.Value) {
		if slices.Contains(params, v) {
			return Fail("")
		}
	}
	return Pass()
}

func contains(c *Context, params []string) Outcome {
	s := c.Value.String()
	for _, p := range params {
		if !strings.Contains(s, p) {
			return Fail("")
		}
	}
	return Pass()
}

func doesntContain(c *Context, params []string) Outcome {
	s := c.Value.String()
	for _, p := range params {
		if strings.Contains(s, p) {
			return Fail("")
		}
	}
	return Pass()
}
