package i18n

import (
	"context"
	"errors"

	"gopkg.in/yaml.v3"
)

type yamlParser struct{}

// NewYAMLParser returns a parser for .yaml and .yml translation files.
func NewYAMLParser() Parser { return yamlParser{} }

func (yamlParser) Parse(ctx context.Context, content []byte) (Translations, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadCancelled, err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, errors.Join(ErrParseYAML, err)
	}
	return toTranslations(raw), nil
}

func (yamlParser) SupportsFileExtension(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}
