package ruleset

import "errors"

var (
	ErrUnsupportedFormat = errors.New("ruleset: unsupported file format (supported: yaml, json, toml)")
	ErrReadFile          = errors.New("ruleset: failed to read rule file")
	ErrParse             = errors.New("ruleset: failed to parse rule file")
	ErrEmptyField        = errors.New("ruleset: rule declared with an empty field name")
	ErrUnknownOrder      = errors.New("ruleset: order lists a field without rules")
)
