package i18n

import (
	"context"
	"encoding/json"
	"errors"
)

type jsonParser struct{}

// NewJSONParser returns a parser for .json translation files.
func NewJSONParser() Parser { return jsonParser{} }

func (jsonParser) Parse(ctx context.Context, content []byte) (Translations, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadCancelled, err)
	}
	var raw map[string]any
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, errors.Join(ErrParseJSON, err)
	}
	return toTranslations(raw), nil
}

func (jsonParser) SupportsFileExtension(ext string) bool { return ext == ".json" }
