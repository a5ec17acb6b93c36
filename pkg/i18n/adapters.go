package i18n

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path"
	"slices"
)

// Adapter loads translations from some storage.
type Adapter interface {
	Load(ctx context.Context) (Translations, error)
}

// AdapterFunc adapts a function to the Adapter interface.
type AdapterFunc func(ctx context.Context) (Translations, error)

func (f AdapterFunc) Load(ctx context.Context) (Translations, error) { return f(ctx) }

// MapAdapter serves translations held in memory.
type MapAdapter struct {
	translations Translations
}

func NewMapAdapter(translations Translations) *MapAdapter {
	return &MapAdapter{translations: translations}
}

func (a *MapAdapter) Load(ctx context.Context) (Translations, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadCancelled, err)
	}
	out := make(Translations, len(a.translations))
	merge(out, a.translations)
	return out, nil
}

// FileAdapter loads a single translation file.
type FileAdapter struct {
	path string
}

func NewFileAdapter(path string) *FileAdapter {
	return &FileAdapter{path: path}
}

func (a *FileAdapter) Load(ctx context.Context) (Translations, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadCancelled, err)
	}
	parser := NewParserForFile(a.path)
	if parser == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, a.path)
	}
	content, err := os.ReadFile(a.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadFile, a.path, err)
	}
	tr, err := parser.Parse(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.path, err)
	}
	return tr, nil
}

// FSAdapter loads every supported file directly under dir of fsys.
// Files are read in name order, so later files win on conflicting keys.
type FSAdapter struct {
	fsys fs.FS
	dir  string
}

func NewFSAdapter(fsys fs.FS, dir string) *FSAdapter {
	if dir == "" {
		dir = "."
	}
	return &FSAdapter{fsys: fsys, dir: dir}
}

// NewDirectoryAdapter loads every supported file in a directory on disk.
func NewDirectoryAdapter(dir string) *FSAdapter {
	return NewFSAdapter(os.DirFS(dir), ".")
}

func (a *FSAdapter) Load(ctx context.Context) (Translations, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadCancelled, err)
	}

	entries, err := fs.ReadDir(a.fsys, a.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadDirectory, a.dir, err)
	}

	out := make(Translations)
	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		parser := NewParserForFile(entry.Name())
		if parser == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadCancelled, err)
		}

		name := path.Join(a.dir, entry.Name())
		content, err := fs.ReadFile(a.fsys, name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrReadFile, name, err)
		}
		tr, err := parser.Parse(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		merge(out, tr)
		loaded++
	}

	if loaded == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoTranslations, a.dir)
	}
	return out, nil
}

//go:embed locales/*.yaml
var builtinLocales embed.FS

// Builtin returns the adapter for the shipped validation message translations.
func Builtin() Adapter {
	return NewFSAdapter(builtinLocales, "locales")
}

// merge deep-merges src into dst; src wins on leaf conflicts.
func merge(dst, src Translations) {
	for _, lang := range slices.Sorted(maps.Keys(src)) {
		tree, ok := dst[lang]
		if !ok {
			tree = make(map[string]any)
			dst[lang] = tree
		}
		mergeTree(tree, src[lang])
	}
}

func mergeTree(dst, src map[string]any) {
	for k, v := range src {
		srcMap, srcIsMap := v.(map[string]any)
		dstMap, dstIsMap := dst[k].(map[string]any)
		switch {
		case srcIsMap && dstIsMap:
			mergeTree(dstMap, srcMap)
		case srcIsMap:
			cp := make(map[string]any, len(srcMap))
			mergeTree(cp, srcMap)
			dst[k] = cp
		default:
			dst[k] = v
		}
	}
}

// Combine loads adapters in order and merges their results; later adapters
// override earlier ones.
func Combine(adapters ...Adapter) Adapter {
	return AdapterFunc(func(ctx context.Context) (Translations, error) {
		out := make(Translations)
		for _, a := range adapters {
			if a == nil {
				continue
			}
			tr, err := a.Load(ctx)
			if err != nil {
				return nil, err
			}
			merge(out, tr)
		}
		return out, nil
	})
}
