package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ruleval/pkg/validator"
)

func TestParseRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec string
		want validator.RuleChain
	}{
		{
			name: "names and params",
			spec: "required|min:5|between:18,65",
			want: validator.RuleChain{
				{Name: "required"},
				{Name: "min", Params: []string{"5"}},
				{Name: "between", Params: []string{"18", "65"}},
			},
		},
		{
			name: "empty tokens and segments dropped",
			spec: " |required|| in:a,,b, ",
			want: validator.RuleChain{
				{Name: "required"},
				{Name: "in", Params: []string{"a", "b"}},
			},
		},
		{
			name: "colons after the first stay in params",
			spec: "between:09:00,17:00",
			want: validator.RuleChain{{Name: "between", Params: []string{"09:00", "17:00"}}},
		},
		{
			name: "regex keeps commas",
			spec: "regex:/^\\d{2,4}$/",
			want: validator.RuleChain{{Name: "regex", Params: []string{"/^\\d{2,4}$/"}}},
		},
		{
			name: "date_format keeps commas",
			spec: "date_format:F j, Y",
			want: validator.RuleChain{{Name: "date_format", Params: []string{"F j, Y"}}},
		},
		{
			name: "nameless token dropped",
			spec: ":5|email",
			want: validator.RuleChain{{Name: "email"}},
		},
		{
			name: "empty spec",
			spec: "",
			want: validator.RuleChain{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validator.ParseRules(tt.spec))
		})
	}
}

func TestRuleChain(t *testing.T) {
	t.Parallel()

	chain := validator.ParseRules("required|between:1,5|email")
	assert.Equal(t, []string{"required", "between", "email"}, chain.Names())
	assert.True(t, chain.Has("email"))
	assert.False(t, chain.Has("min"))
	assert.Equal(t, "between:1,5", chain[1].String())
	assert.Equal(t, "required", chain[0].String())
}

func TestRules(t *testing.T) {
	t.Parallel()

	rules := validator.RulesFromMap(map[string]string{
		"name":     "required",
		"age":      "integer",
		"skills[]": "min:2",
	})
	assert.Equal(t, []string{"age", "name", "skills[]"}, rules.Fields())

	rules = rules.Add("email", "email")
	require.Len(t, rules, 4)
	assert.Equal(t, validator.FieldRule{Field: "email", Spec: "email"}, rules[3])
}

func TestRegistryParseCaches(t *testing.T) {
	t.Parallel()

	reg := validator.NewRegistry()
	first := reg.Parse("required|min:2")
	second := reg.Parse("required|min:2")
	assert.Equal(t, first, second)

	uncached := validator.NewRegistry(validator.WithChainCacheSize(0))
	assert.Equal(t, first, uncached.Parse("required|min:2"))
}
