package i18n_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ruleval/pkg/i18n"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileAdapter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("loads yaml", func(t *testing.T) {
		path := writeFile(t, dir, "fr.yaml", "fr:\n  validation:\n    required: \"Le champ :label est obligatoire.\"\n")
		tr, err := i18n.NewFileAdapter(path).Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Le champ :label est obligatoire.", tr["fr"]["validation"].(map[string]any)["required"])
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := i18n.NewFileAdapter(filepath.Join(dir, "fr.ini")).Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrUnsupportedFile)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := i18n.NewFileAdapter(filepath.Join(dir, "nope.json")).Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrReadFile)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed content", func(t *testing.T) {
		path := writeFile(t, dir, "bad.json", `{"fr":`)
		_, err := i18n.NewFileAdapter(path).Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrParseJSON)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := i18n.NewFileAdapter(filepath.Join(dir, "fr.yaml")).Load(ctx)
		assert.ErrorIs(t, err, i18n.ErrLoadCancelled)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDirectoryAdapter(t *testing.T) {
	t.Parallel()

	t.Run("merges every supported file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.json", `{"es":{"validation":{"required":"Obligatorio","email":"Correo"}}}`)
		writeFile(t, dir, "b.toml", "[es.validation]\nemail = \"Correo inválido\"\n\n[it.validation]\nrequired = \"Obbligatorio\"\n")
		writeFile(t, dir, "c.yml", "it:\n  validation:\n    email: Email non valida\n")
		writeFile(t, dir, "README.md", "not a translation file")
		require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o700))

		tr, err := i18n.NewDirectoryAdapter(dir).Load(context.Background())
		require.NoError(t, err)

		es := tr["es"]["validation"].(map[string]any)
		assert.Equal(t, "Obligatorio", es["required"])
		assert.Equal(t, "Correo inválido", es["email"])

		it := tr["it"]["validation"].(map[string]any)
		assert.Equal(t, "Obbligatorio", it["required"])
		assert.Equal(t, "Email non valida", it["email"])
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := i18n.NewDirectoryAdapter(t.TempDir()).Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrNoTranslations)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := i18n.NewDirectoryAdapter(filepath.Join(t.TempDir(), "nope")).Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrReadDirectory)
	})

	t.Run("a broken file fails the load", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.yaml", "es: [unclosed\n")
		_, err := i18n.NewDirectoryAdapter(dir).Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrParseYAML)
	})
}

func TestFSAdapter(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"locales/nl.yaml": {Data: []byte("nl:\n  validation:\n    required: Verplicht\n")},
		"locales/nl.toml": {Data: []byte("[nl.validation]\nemail = \"Ongeldig\"\n")},
		"other/x.yaml":    {Data: []byte("x:\n  k: v\n")},
	}

	tr, err := i18n.NewFSAdapter(fsys, "locales").Load(context.Background())
	require.NoError(t, err)
	require.Contains(t, tr, "nl")
	assert.NotContains(t, tr, "x")

	nl := tr["nl"]["validation"].(map[string]any)
	assert.Equal(t, "Verplicht", nl["required"])
	assert.Equal(t, "Ongeldig", nl["email"])
}

func TestCombine(t *testing.T) {
	t.Parallel()

	base := i18n.NewMapAdapter(i18n.Translations{
		"de": {"validation": map[string]any{"required": "Pflichtfeld", "email": "Ungültig"}},
	})
	override := i18n.NewMapAdapter(i18n.Translations{
		"de": {"validation": map[string]any{"required": "Bitte ausfüllen"}},
	})

	tr, err := i18n.NewTranslator(context.Background(), i18n.Combine(base, nil, override))
	require.NoError(t, err)

	msg, _ := tr.Message("de", "required")
	assert.Equal(t, "Bitte ausfüllen", msg)
	msg, _ = tr.Message("de", "email")
	assert.Equal(t, "Ungültig", msg)
}

func TestMapAdapterCopies(t *testing.T) {
	t.Parallel()

	src := i18n.Translations{"de": {"validation": map[string]any{"required": "Pflichtfeld"}}}
	tr, err := i18n.NewMapAdapter(src).Load(context.Background())
	require.NoError(t, err)

	tr["de"]["validation"].(map[string]any)["required"] = "changed"
	assert.Equal(t, "Pflichtfeld", src["de"]["validation"].(map[string]any)["required"])
}
