package validator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ruleval/pkg/source"
	"github.com/dmitrymomot/ruleval/pkg/validator"
)

// validateField runs spec against a single field named "field".
func validateField(t *testing.T, spec string, v validator.Value, opts ...validator.Option) *validator.Result {
	t.Helper()
	return validateKind(t, spec, v, validator.KindText, opts...)
}

func validateKind(t *testing.T, spec string, v validator.Value, kind validator.Kind, opts ...validator.Option) *validator.Result {
	t.Helper()
	src := source.NewMap().Set("field", v, kind)
	res := validator.Validate(context.Background(), src, validator.Rules{}.Add("field", spec), opts...)
	require.False(t, res.Pending(), "unexpected pending rule in %q", spec)
	return res
}

func passes(t *testing.T, spec string, v validator.Value) bool {
	t.Helper()
	return validateField(t, spec, v).Valid()
}

func passesText(t *testing.T, spec, s string) bool {
	t.Helper()
	return passes(t, spec, validator.String(s))
}

// failure returns the single error recorded for "field".
func failure(t *testing.T, res *validator.Result) validator.FieldError {
	t.Helper()
	errs := res.Errors().GetErrors("field")
	require.Len(t, errs, 1)
	return errs[0]
}
