package ruleset_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ruleval/pkg/ruleset"
	"github.com/dmitrymomot/ruleval/pkg/source"
	"github.com/dmitrymomot/ruleval/pkg/validator"
)

const yamlRules = `
language: uk
order: [email]
rules:
  email: required|email
  age: required|integer|between:18,65
  "skills[]": required|min:2
messages:
  age:
    label: Your age
    rules:
      between: Must be between :min_value and :max_value.
`

const jsonRules = `{
  "rules": {"email": "required|email", "age": "required|integer"},
  "messages": {"email": {"label": "E-mail"}}
}`

const tomlRules = `
order = ["age"]

[rules]
email = "required|email"
age = "required|integer"
"skills[]" = "required"

[messages.email]
label = "E-mail"

[messages.email.rules]
required = "Tell us your e-mail."
`

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("yaml", func(t *testing.T) {
		set, err := ruleset.Parse([]byte(yamlRules), ruleset.FormatYAML)
		require.NoError(t, err)
		assert.Equal(t, "uk", set.Language)
		assert.Equal(t, "required|integer|between:18,65", set.Rules["age"])
		assert.Equal(t, "Your age", set.Messages["age"].Label)
		assert.Equal(t, "Must be between :min_value and :max_value.", set.Messages["age"].Rules["between"])
		assert.Equal(t, []string{"email", "age", "skills[]"}, set.ValidatorRules().Fields())
	})

	t.Run("json", func(t *testing.T) {
		set, err := ruleset.Parse([]byte(jsonRules), ruleset.FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, "E-mail", set.Messages["email"].Label)
		assert.Equal(t, []string{"age", "email"}, set.ValidatorRules().Fields())
	})

	t.Run("toml", func(t *testing.T) {
		set, err := ruleset.Parse([]byte(tomlRules), ruleset.FormatTOML)
		require.NoError(t, err)
		assert.Equal(t, "required", set.Rules["skills[]"])
		assert.Equal(t, "Tell us your e-mail.", set.Messages["email"].Rules["required"])
		assert.Equal(t, []string{"age", "email", "skills[]"}, set.ValidatorRules().Fields())
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := ruleset.Parse([]byte("x"), ruleset.Format("ini"))
		assert.ErrorIs(t, err, ruleset.ErrUnsupportedFormat)
	})

	t.Run("malformed content", func(t *testing.T) {
		_, err := ruleset.Parse([]byte(`{"rules":`), ruleset.FormatJSON)
		assert.ErrorIs(t, err, ruleset.ErrParse)
	})

	t.Run("order must reference declared fields", func(t *testing.T) {
		_, err := ruleset.Parse([]byte(`{"order":["ghost"],"rules":{"a":"required"}}`), ruleset.FormatJSON)
		assert.ErrorIs(t, err, ruleset.ErrUnknownOrder)
	})

	t.Run("empty field name", func(t *testing.T) {
		_, err := ruleset.Parse([]byte(`{"rules":{" ":"required"}}`), ruleset.FormatJSON)
		assert.ErrorIs(t, err, ruleset.ErrEmptyField)
	})
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path   string
		format ruleset.Format
		ok     bool
	}{
		{"rules.yaml", ruleset.FormatYAML, true},
		{"rules.YML", ruleset.FormatYAML, true},
		{"conf/rules.json", ruleset.FormatJSON, true},
		{"rules.toml", ruleset.FormatTOML, true},
		{"rules.ini", "", false},
		{"rules", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			format, ok := ruleset.FormatFromPath(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.format, format)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "signup.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlRules), 0o600))

	t.Run("reads file", func(t *testing.T) {
		set, err := ruleset.Load(context.Background(), path)
		require.NoError(t, err)
		assert.Len(t, set.Rules, 3)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ruleset.Load(context.Background(), filepath.Join(dir, "nope.json"))
		assert.ErrorIs(t, err, ruleset.ErrReadFile)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unknown extension", func(t *testing.T) {
		_, err := ruleset.Load(context.Background(), filepath.Join(dir, "rules.txt"))
		assert.ErrorIs(t, err, ruleset.ErrUnsupportedFormat)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := ruleset.Load(ctx, path)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSetDrivesValidation(t *testing.T) {
	t.Parallel()

	set, err := ruleset.Parse([]byte(yamlRules), ruleset.FormatYAML)
	require.NoError(t, err)

	src := source.NewMap().
		SetText("email", "jane@example.com").
		Set("age", validator.Number(70), validator.KindNumber).
		SetElements("skills", validator.KindText, validator.String("go"), validator.String("x"))

	res := validator.Validate(context.Background(), src, set.ValidatorRules(), set.Options()...)
	require.False(t, res.Valid())

	errs := res.Flatten()
	assert.Equal(t, "Must be between 18 and 65.", errs["age"])
	assert.Contains(t, errs, "skills_1")
	assert.NotContains(t, errs, "skills_0")
	assert.NotContains(t, errs, "email")
}

func TestUnknownRules(t *testing.T) {
	t.Parallel()

	set, err := ruleset.Parse([]byte(`{"rules":{"a":"required|emial","b":"requird|emial"}}`), ruleset.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []string{"emial", "requird"}, set.UnknownRules(validator.DefaultRegistry))
}
