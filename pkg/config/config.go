package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/ruleval/pkg/logger"
	"github.com/dmitrymomot/ruleval/pkg/validator"
)

// Config holds engine and CLI defaults read from RULEVAL_* variables.
type Config struct {
	Debug            bool          `env:"DEBUG"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string        `env:"LOG_FORMAT" envDefault:"text"`
	Language         string        `env:"LANGUAGE" envDefault:"en"`
	Selector         string        `env:"SELECTOR" envDefault:"name"`
	DimensionTimeout time.Duration `env:"DIMENSION_TIMEOUT" envDefault:"5s"`
	ChainCacheSize   int           `env:"CHAIN_CACHE_SIZE" envDefault:"512"`
	PatternCacheSize int           `env:"PATTERN_CACHE_SIZE" envDefault:"128"`

	// HTTPAddr is the listen address of the serve command.
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	// Rules is the default rule set file.
	Rules string `env:"RULES"`
	// Translations is a directory of extra message catalogs.
	Translations string `env:"TRANSLATIONS"`
}

// Validate checks values env cannot check by type alone.
func (c Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := logger.ParseFormat(c.LogFormat); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := parseSelector(c.Selector); err != nil {
		return err
	}
	if c.DimensionTimeout < 0 {
		return fmt.Errorf("%w: dimension timeout must not be negative", ErrInvalidConfig)
	}
	if c.ChainCacheSize < 0 || c.PatternCacheSize < 0 {
		return fmt.Errorf("%w: cache sizes must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Logger builds the slog logger described by the config. Debug switches to
// the development preset: text output at debug level tagged with service and env.
// Extra options are applied last.
func (c Config) Logger(w io.Writer, extra ...logger.Option) *slog.Logger {
	opts := []logger.Option{logger.WithAttr(logger.Component("ruleval"))}
	if c.Debug {
		opts = append(opts, logger.WithDevelopment("ruleval"))
	} else {
		level, _ := logger.ParseLevel(c.LogLevel)
		format, _ := logger.ParseFormat(c.LogFormat)
		opts = append(opts, logger.WithLevel(level), logger.WithFormat(format))
	}
	opts = append(opts, logger.WithOutput(w))
	return logger.New(append(opts, extra...)...)
}

// Registry builds a registry with the configured cache sizes.
func (c Config) Registry() *validator.Registry {
	return validator.NewRegistry(
		validator.WithChainCacheSize(c.ChainCacheSize),
		validator.WithPatternCacheSize(c.PatternCacheSize),
	)
}

// Options converts the config into validator options. A nil logger leaves
// the validator's discard logger in place.
func (c Config) Options(l *slog.Logger) []validator.Option {
	sel, _ := parseSelector(c.Selector)
	return []validator.Option{
		validator.WithLanguage(c.Language),
		validator.WithSelector(sel),
		validator.WithDimensionTimeout(c.DimensionTimeout),
		validator.WithDebug(c.Debug),
		validator.WithLogger(l),
	}
}

func parseSelector(s string) (validator.Selector, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "name":
		return validator.ByName, nil
	case "id":
		return validator.ByID, nil
	default:
		return validator.ByName, fmt.Errorf("%w: selector %q must be \"name\" or \"id\"", ErrInvalidConfig, s)
	}
}
