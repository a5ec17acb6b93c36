package source

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/ruleval/pkg/validator"
)

// DefaultMaxMemory is the default maximum memory used for parsing multipart forms (10MB).
const DefaultMaxMemory = 10 << 20

// sniffLen is how many bytes http.DetectContentType looks at.
const sniffLen = 512

type formConfig struct {
	maxMemory int64
	kinds     map[string]validator.Kind
}

// FormOption configures FromValues and FromRequest.
type FormOption func(*formConfig)

// WithMaxMemory sets the in-memory limit for multipart parsing.
func WithMaxMemory(n int64) FormOption {
	return func(c *formConfig) {
		if n > 0 {
			c.maxMemory = n
		}
	}
}

// WithKind declares the input kind of a field, e.g. KindTime for the
// between rule's clock comparison. Fields default to text (or file).
func WithKind(name string, kind validator.Kind) FormOption {
	return func(c *formConfig) {
		c.kinds[strings.TrimSuffix(name, validator.ArraySuffix)] = kind
	}
}

func newFormConfig(opts []FormOption) *formConfig {
	cfg := &formConfig{maxMemory: DefaultMaxMemory, kinds: map[string]validator.Kind{}}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *formConfig) kind(name string, fallback validator.Kind) validator.Kind {
	if k, ok := c.kinds[name]; ok {
		return k
	}
	return fallback
}

// FromValues builds a source from decoded form values. Keys ending in "[]"
// and keys with several values become repeated fields.
func FromValues(values url.Values, opts ...FormOption) *Map {
	cfg := newFormConfig(opts)
	m := NewMap()
	addValues(m, cfg, values)
	return m
}

func addValues(m *Map, cfg *formConfig, values map[string][]string) {
	for key, vals := range values {
		base, isArray := strings.CutSuffix(key, validator.ArraySuffix)
		if !isArray && len(vals) == 1 {
			m.Set(key, validator.String(vals[0]), cfg.kind(key, validator.KindText))
			continue
		}
		els := make([]validator.Value, len(vals))
		for i, v := range vals {
			els[i] = validator.String(v)
		}
		m.SetElements(base, cfg.kind(base, validator.KindSelectMultiple), els...)
	}
}

func addFiles(m *Map, cfg *formConfig, files map[string][]*multipart.FileHeader) {
	for key, headers := range files {
		base, isArray := strings.CutSuffix(key, validator.ArraySuffix)
		kind := cfg.kind(base, validator.KindFile)

		list := make([]validator.File, 0, len(headers))
		for _, fh := range headers {
			list = append(list, fileFromHeader(fh))
		}

		if !isArray {
			m.Set(key, validator.Files(list...), kind)
			continue
		}
		els := make([]validator.Value, len(list))
		for i, f := range list {
			els[i] = validator.Files(f)
		}
		m.SetElements(base, kind, els...)
	}
}

// fileFromHeader converts an uploaded file. The MIME type comes from the part
// header and is sniffed from content when the client sent a generic one.
func fileFromHeader(fh *multipart.FileHeader) validator.File {
	open := func() (io.ReadCloser, error) { return fh.Open() }

	mt := fh.Header.Get("Content-Type")
	if mt == "" || mt == "application/octet-stream" {
		if sniffed, err := sniff(open); err == nil {
			mt = sniffed
		}
	}

	return validator.File{
		Name:     fh.Filename,
		Size:     fh.Size,
		MIMEType: mt,
		Open:     open,
	}
}

func sniff(open func() (io.ReadCloser, error)) (string, error) {
	rc, err := open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(rc, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}

// FromRequest parses r into a source. GET and HEAD requests use the query
// string; other methods require an urlencoded or multipart body.
func FromRequest(r *http.Request, opts ...FormOption) (*Map, error) {
	cfg := newFormConfig(opts)
	m := NewMap()

	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		addValues(m, cfg, r.URL.Query())
		return m, nil
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return nil, fmt.Errorf("%w: expected application/x-www-form-urlencoded or multipart/form-data", ErrMissingContentType)
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed content type: %w", ErrInvalidForm, err)
	}

	switch {
	case mediaType == "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidForm, err)
		}
		addValues(m, cfg, r.PostForm)

	case mediaType == "multipart/form-data":
		if params["boundary"] == "" {
			return nil, fmt.Errorf("%w: missing boundary in content type", ErrInvalidForm)
		}
		if err := r.ParseMultipartForm(cfg.maxMemory); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidForm, err)
		}
		if r.MultipartForm != nil {
			addValues(m, cfg, r.MultipartForm.Value)
			addFiles(m, cfg, r.MultipartForm.File)
		}

	default:
		return nil, fmt.Errorf("%w: got %s, expected application/x-www-form-urlencoded or multipart/form-data", ErrUnsupportedMediaType, mediaType)
	}

	return m, nil
}
