package i18n

import "errors"

var (
	ErrParseJSON = errors.New("i18n: failed to parse JSON content")
	ErrParseYAML = errors.New("i18n: failed to parse YAML content")
	ErrParseTOML = errors.New("i18n: failed to parse TOML content")

	ErrUnsupportedFile = errors.New("i18n: unsupported translation file")
	ErrReadFile        = errors.New("i18n: failed to read translation file")
	ErrReadDirectory   = errors.New("i18n: failed to read translation directory")
	ErrNoTranslations  = errors.New("i18n: no translation files found")
	ErrLoadCancelled   = errors.New("i18n: loading translations cancelled")
	ErrNilAdapter      = errors.New("i18n: adapter is nil")
)
