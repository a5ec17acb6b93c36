package validator

import (
	"log/slog"
	"time"
)

type options struct {
	registry         *Registry
	messages         Messages
	selector         Selector
	logger           *slog.Logger
	debug            bool
	language         string
	catalog          Catalog
	dimensionTimeout time.Duration
	now              func() time.Time
}

// Option configures a validation run.
type Option func(*options)

// WithMessages sets per-field labels and message overrides.
func WithMessages(m Messages) Option {
	return func(o *options) { o.messages = m }
}

// WithSelector sets how field identifiers are matched by the source.
func WithSelector(sel Selector) Option {
	return func(o *options) { o.selector = sel }
}

// WithRegistry replaces DefaultRegistry for the run. Nil is ignored.
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithLogger sets the logger that receives warnings and debug traces.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDebug enables tracing for this run regardless of SetDebug.
func WithDebug(enabled bool) Option {
	return func(o *options) { o.debug = enabled }
}

// WithLanguage selects the catalog language used for default messages.
func WithLanguage(lang string) Option {
	return func(o *options) {
		if lang != "" {
			o.language = lang
		}
	}
}

// WithCatalog sets the source of localized default messages.
func WithCatalog(c Catalog) Option {
	return func(o *options) { o.catalog = c }
}

// WithDimensionTimeout bounds how long one image may take to decode.
// Zero means no limit besides the run context.
func WithDimensionTimeout(d time.Duration) Option {
	return func(o *options) { o.dimensionTimeout = d }
}

// WithNow sets the clock used by relative date tokens such as "today".
func WithNow(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// DefaultLanguage is the message language used when none is configured.
const DefaultLanguage = "en"

func defaultOptions() *options {
	return &options{
		registry: DefaultRegistry,
		selector: ByName,
		language: DefaultLanguage,
		now:      time.Now,
	}
}
