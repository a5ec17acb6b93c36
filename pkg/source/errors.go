package source

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("source: unsupported media type")
	ErrMissingContentType   = errors.New("source: missing content type")
	ErrInvalidForm          = errors.New("source: failed to parse form data")
	ErrInvalidJSON          = errors.New("source: failed to parse JSON document")
	ErrNotAnObject          = errors.New("source: JSON document must be an object")
)
