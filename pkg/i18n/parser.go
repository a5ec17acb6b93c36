package i18n

import (
	"context"
	"path/filepath"
	"strings"
)

// Translations maps a language code to its nested key tree.
type Translations map[string]map[string]any

// Parser decodes translation file content.
//
// Content is keyed by language at the top level:
//
//	de:
//	  validation:
//	    required: "Das Feld :label ist erforderlich."
type Parser interface {
	Parse(ctx context.Context, content []byte) (Translations, error)
	SupportsFileExtension(ext string) bool
}

var parsers = []Parser{NewYAMLParser(), NewJSONParser(), NewTOMLParser()}

// NewParserForFile picks a parser by file extension, or nil.
func NewParserForFile(filename string) Parser {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, p := range parsers {
		if p.SupportsFileExtension(ext) {
			return p
		}
	}
	return nil
}

// toTranslations drops top-level entries that are not key trees.
func toTranslations(raw map[string]any) Translations {
	out := make(Translations, len(raw))
	for lang, v := range raw {
		switch tree := v.(type) {
		case map[string]any:
			out[strings.ToLower(lang)] = tree
		case map[any]any:
			out[strings.ToLower(lang)] = stringKeys(tree)
		}
	}
	return out
}

func stringKeys(m map[any]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		key, ok := k.(string)
		if !ok {
			continue
		}
		if nested, ok := v.(map[any]any); ok {
			out[key] = stringKeys(nested)
			continue
		}
		out[key] = v
	}
	return out
}
