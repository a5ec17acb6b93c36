package validator

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"mime"
	"path/filepath"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/dmitrymomot/ruleval/pkg/logger"
)

var imageMIMETypes = map[string]bool{
	"image/jpeg":    true,
	"image/jpg":     true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
	"image/bmp":     true,
	"image/tiff":    true,
	"image/heic":    true,
	"image/heif":    true,
	"image/avif":    true,
	"image/jxl":     true,
}

func registerFileRules(r *Registry) {
	r.RegisterFunc("mimes", mimes)
	r.RegisterFunc("image", isImage)
	r.RegisterFunc("dimensions", dimensions)
}

func extension(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}

// fileNames returns the names of the selected files, or the value itself
// when a plain string carries a file name.
func fileNames(v Value) []string {
	if v.Shape() == ShapeFiles {
		files := v.FileList()
		names := make([]string, len(files))
		for i, f := range files {
			names[i] = f.Name
		}
		return names
	}
	if v.IsString() {
		return []string{v.String()}
	}
	return nil
}

func mimes(c *Context, params []string) Outcome {
	allowed := make(map[string]bool, len(params))
	for _, p := range params {
		allowed[strings.TrimPrefix(strings.ToLower(strings.TrimSpace(p)), ".")] = true
	}

	names := fileNames(c.Value)
	if len(names) == 0 {
		return Fail("")
	}
	for _, name := range names {
		if !allowed[extension(name)] {
			return Fail("")
		}
	}
	return Pass()
}

func mediaType(f File) string {
	mt := strings.ToLower(strings.TrimSpace(f.MIMEType))
	if mt == "" {
		mt = mime.TypeByExtension(filepath.Ext(f.Name))
	}
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	return strings.ToLower(mt)
}

func isImage(c *Context, _ []string) Outcome {
	var files []File
	switch {
	case c.Value.Shape() == ShapeFiles:
		files = c.Value.FileList()
	case c.Value.IsString():
		files = []File{{Name: c.Value.String()}}
	default:
		return Fail("")
	}
	for _, f := range files {
		if !imageMIMETypes[mediaType(f)] {
			return Fail("")
		}
	}
	return Pass()
}

type dimensionLimits struct {
	raw   map[string]string
	ints  map[string]int
	ratio float64
}

func parseDimensionLimits(params []string) dimensionLimits {
	l := dimensionLimits{raw: map[string]string{}, ints: map[string]int{}}
	for _, p := range params {
		key, val, ok := strings.Cut(p, "=")
		if !ok {
			continue
		}
		key, val = strings.TrimSpace(key), strings.TrimSpace(val)
		switch key {
		case "min_width", "max_width", "min_height", "max_height", "width", "height":
			n, err := strconv.Atoi(val)
			if err != nil {
				continue
			}
			l.ints[key] = n
			l.raw[key] = val
		case "ratio":
			if r, ok := parseRatio(val); ok {
				l.ratio = r
				l.raw[key] = val
			}
		}
	}
	return l
}

func parseRatio(s string) (float64, bool) {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, errN := strconv.ParseFloat(strings.TrimSpace(num), 64)
		d, errD := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if errN != nil || errD != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}
	r, err := strconv.ParseFloat(s, 64)
	return r, err == nil && r > 0
}

// check returns the phrase describing the first violated limit.
func (l dimensionLimits) check(w, h int) (string, bool) {
	limits := []struct {
		key    string
		actual int
		fails  func(actual, limit int) bool
		phrase string
	}{
		{"width", w, func(a, b int) bool { return a != b }, "exactly %s pixels wide"},
		{"height", h, func(a, b int) bool { return a != b }, "exactly %s pixels tall"},
		{"min_width", w, func(a, b int) bool { return a < b }, "at least %s pixels wide"},
		{"max_width", w, func(a, b int) bool { return a > b }, "at most %s pixels wide"},
		{"min_height", h, func(a, b int) bool { return a < b }, "at least %s pixels tall"},
		{"max_height", h, func(a, b int) bool { return a > b }, "at most %s pixels tall"},
	}
	for _, lim := range limits {
		want, ok := l.ints[lim.key]
		if ok && lim.fails(lim.actual, want) {
			return fmt.Sprintf(lim.phrase, l.raw[lim.key]), false
		}
	}
	if l.ratio > 0 && h > 0 && math.Abs(float64(w)/float64(h)-l.ratio) > 0.01 {
		return "in a " + l.raw["ratio"] + " ratio", false
	}
	return "", true
}

// dimensions decodes the first selected file in the background and checks
// its pixel size against the given limits.
func dimensions(c *Context, params []string) Outcome {
	files := c.Value.FileList()
	if len(files) == 0 {
		return Pass()
	}
	first := files[0]
	if first.Open == nil {
		return Fail(KeyDimensionsUnreadable)
	}

	limits := parseDimensionLimits(params)
	tokens := make(map[string]string, len(limits.raw)+1)
	for k, v := range limits.raw {
		tokens[k] = v
	}

	ec := *c
	return Pending(Async(c.Context(), c.dimensionTimeout(), func(context.Context) Outcome {
		rc, err := first.Open()
		if err != nil {
			ec.trace("open image", logger.Error(err))
			return Fail(KeyDimensionsUnreadable)
		}
		defer rc.Close()

		cfg, _, err := image.DecodeConfig(rc)
		if err != nil {
			ec.trace("decode image", logger.Error(err))
			return Fail(KeyDimensionsUnreadable)
		}
		if phrase, ok := limits.check(cfg.Width, cfg.Height); !ok {
			tokens["constraint"] = phrase
			return Fail("").With(tokens)
		}
		return Pass()
	}))
}
