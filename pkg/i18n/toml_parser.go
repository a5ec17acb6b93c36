package i18n

import (
	"context"
	"errors"

	"github.com/pelletier/go-toml/v2"
)

type tomlParser struct{}

// NewTOMLParser returns a parser for .toml translation files.
func NewTOMLParser() Parser { return tomlParser{} }

func (tomlParser) Parse(ctx context.Context, content []byte) (Translations, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadCancelled, err)
	}
	var raw map[string]any
	if err := toml.Unmarshal(content, &raw); err != nil {
		return nil, errors.Join(ErrParseTOML, err)
	}
	return toTranslations(raw), nil
}

func (tomlParser) SupportsFileExtension(ext string) bool { return ext == ".toml" }
