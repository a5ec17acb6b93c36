package source_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ruleval/pkg/source"
	"github.com/dmitrymomot/ruleval/pkg/validator"
)

func TestMap(t *testing.T) {
	t.Parallel()

	t.Run("looks up stored fields", func(t *testing.T) {
		m := source.NewMap().
			SetText("email", "jane@example.com").
			Set("age", validator.Number(30), validator.KindNumber)

		f, ok := m.Lookup("email", validator.ByName)
		require.True(t, ok)
		assert.Equal(t, "jane@example.com", f.Value.String())
		assert.Equal(t, validator.KindText, f.Kind)

		f, ok = m.Lookup("age", validator.ByName)
		require.True(t, ok)
		n, isNum := f.Value.Number()
		assert.True(t, isNum)
		assert.Equal(t, 30.0, n)

		_, ok = m.Lookup("missing", validator.ByName)
		assert.False(t, ok)
	})

	t.Run("absent value is still found", func(t *testing.T) {
		m := source.NewMap().Set("note", validator.Absent(), validator.KindText)
		f, ok := m.Lookup("note", validator.ByName)
		require.True(t, ok)
		assert.True(t, f.Value.IsAbsent())
	})

	t.Run("resolves ids through aliases", func(t *testing.T) {
		m := source.NewMap().SetText("user_email", "a@b.co").Alias("email-input", "user_email")

		f, ok := m.Lookup("email-input", validator.ByID)
		require.True(t, ok)
		assert.Equal(t, "a@b.co", f.Value.String())

		_, ok = m.Lookup("email-input", validator.ByName)
		assert.False(t, ok)
	})

	t.Run("returns stored elements", func(t *testing.T) {
		m := source.NewMap().SetElements("skills[]", validator.KindCheckbox,
			validator.String("go"), validator.String(""), validator.String("sql"))

		els := m.Elements("skills", validator.ByName)
		require.Len(t, els, 3)
		assert.Equal(t, "", els[1].Value.String())
		assert.Equal(t, validator.KindCheckbox, els[0].Kind)

		f, ok := m.Lookup("skills", validator.ByName)
		require.True(t, ok)
		assert.Equal(t, []string{"go", "", "sql"}, f.Value.List())
	})

	t.Run("splits multi values into elements", func(t *testing.T) {
		m := source.NewMap().Set("tags", validator.Multi("a", "b"), validator.KindSelectMultiple)
		els := m.Elements("tags", validator.ByName)
		require.Len(t, els, 2)
		assert.Equal(t, "b", els[1].Value.String())
	})

	t.Run("no elements for unknown field", func(t *testing.T) {
		assert.Nil(t, source.NewMap().Elements("nope", validator.ByName))
	})
}

func TestFromMap(t *testing.T) {
	t.Parallel()

	m := source.FromMap(map[string]any{
		"name":     "Jane",
		"age":      42,
		"terms":    true,
		"roles":    []string{"admin", "dev"},
		"tags[]":   []string{"x", "y", "z"},
		"nickname": nil,
	})

	f, _ := m.Lookup("age", validator.ByName)
	assert.Equal(t, validator.KindNumber, f.Kind)
	assert.Equal(t, "42", f.Value.String())

	f, _ = m.Lookup("terms", validator.ByName)
	b, ok := f.Value.Bool()
	assert.True(t, ok)
	assert.True(t, b)

	f, _ = m.Lookup("roles", validator.ByName)
	assert.Equal(t, validator.ShapeMulti, f.Value.Shape())

	assert.Len(t, m.Elements("tags", validator.ByName), 3)

	f, ok = m.Lookup("nickname", validator.ByName)
	assert.True(t, ok)
	assert.True(t, f.Value.IsAbsent())

	assert.Equal(t, []string{"age", "name", "nickname", "roles", "tags", "terms"}, m.Names())
}

func TestFromValues(t *testing.T) {
	t.Parallel()

	m := source.FromValues(url.Values{
		"email":    {"a@b.co"},
		"skills[]": {"go", "rust"},
		"colors":   {"red", "blue"},
		"start":    {"09:30"},
	}, source.WithKind("start", validator.KindTime))

	f, ok := m.Lookup("email", validator.ByName)
	require.True(t, ok)
	assert.True(t, f.Value.IsString())

	assert.Len(t, m.Elements("skills", validator.ByName), 2)

	f, _ = m.Lookup("colors", validator.ByName)
	assert.Equal(t, []string{"red", "blue"}, f.Value.List())

	f, _ = m.Lookup("start", validator.ByName)
	assert.Equal(t, validator.KindTime, f.Kind)
}

func TestFromRequest(t *testing.T) {
	t.Parallel()

	t.Run("parses urlencoded body", func(t *testing.T) {
		body := url.Values{"email": {"a@b.co"}, "age": {"30"}}.Encode()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		m, err := source.FromRequest(req)
		require.NoError(t, err)
		f, ok := m.Lookup("age", validator.ByName)
		require.True(t, ok)
		assert.Equal(t, "30", f.Value.String())
	})

	t.Run("parses query for GET", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?q=hello", nil)
		m, err := source.FromRequest(req)
		require.NoError(t, err)
		f, ok := m.Lookup("q", validator.ByName)
		require.True(t, ok)
		assert.Equal(t, "hello", f.Value.String())
	})

	t.Run("parses multipart files", func(t *testing.T) {
		buf := &bytes.Buffer{}
		w := multipart.NewWriter(buf)
		require.NoError(t, w.WriteField("title", "Holiday"))
		part, err := w.CreateFormFile("photo", "beach.png")
		require.NoError(t, err)
		png := []byte("\x89PNG\r\n\x1a\n" + strings.Repeat("\x00", 32))
		_, err = part.Write(png)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/", buf)
		req.Header.Set("Content-Type", w.FormDataContentType())

		m, err := source.FromRequest(req)
		require.NoError(t, err)

		f, ok := m.Lookup("photo", validator.ByName)
		require.True(t, ok)
		assert.Equal(t, validator.KindFile, f.Kind)
		files := f.Value.FileList()
		require.Len(t, files, 1)
		assert.Equal(t, "beach.png", files[0].Name)
		assert.Equal(t, int64(len(png)), files[0].Size)
		assert.Equal(t, "image/png", files[0].MIMEType)

		rc, err := files[0].Open()
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, png, data)
	})

	t.Run("rejects missing content type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a=b"))
		_, err := source.FromRequest(req)
		assert.ErrorIs(t, err, source.ErrMissingContentType)
	})

	t.Run("rejects unsupported media type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		_, err := source.FromRequest(req)
		assert.ErrorIs(t, err, source.ErrUnsupportedMediaType)
	})
}

func TestFromJSON(t *testing.T) {
	t.Parallel()

	t.Run("maps JSON types to values", func(t *testing.T) {
		m, err := source.FromJSON([]byte(`{
			"email": "a@b.co",
			"age": 70,
			"terms": true,
			"nickname": null,
			"skills": ["go", "", "sql"],
			"address": {"city": "Kyiv"}
		}`))
		require.NoError(t, err)

		f, _ := m.Lookup("age", validator.ByName)
		n, ok := f.Value.Number()
		require.True(t, ok)
		assert.Equal(t, 70.0, n)
		assert.Equal(t, validator.KindNumber, f.Kind)

		f, _ = m.Lookup("terms", validator.ByName)
		assert.Equal(t, "true", f.Value.String())

		f, ok = m.Lookup("nickname", validator.ByName)
		require.True(t, ok)
		assert.True(t, f.Value.IsAbsent())

		assert.Len(t, m.Elements("skills", validator.ByName), 3)

		f, ok = m.Lookup("address.city", validator.ByName)
		require.True(t, ok)
		assert.Equal(t, "Kyiv", f.Value.String())

		f, _ = m.Lookup("address", validator.ByName)
		assert.JSONEq(t, `{"city":"Kyiv"}`, f.Value.String())
	})

	t.Run("rejects invalid documents", func(t *testing.T) {
		_, err := source.FromJSON([]byte(`{"a":`))
		assert.ErrorIs(t, err, source.ErrInvalidJSON)

		_, err = source.FromJSON([]byte(`[1,2]`))
		assert.ErrorIs(t, err, source.ErrNotAnObject)
	})
}
