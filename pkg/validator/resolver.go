package validator

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrymomot/ruleval/pkg/logger"
)

// Selector tells the source how field identifiers are matched.
type Selector uint8

const (
	// ByName matches the name attribute of a form field.
	ByName Selector = iota
	// ByID matches the id attribute of a form field.
	ByID
)

func (s Selector) String() string {
	if s == ByID {
		return "id"
	}
	return "name"
}

// Source provides the current field values of a form or document.
type Source interface {
	// Lookup returns the value and kind of a single field.
	Lookup(name string, sel Selector) (Field, bool)
	// Elements returns every element of a repeated field declared as name[].
	// The name is passed without the brackets.
	Elements(name string, sel Selector) []Field
}

// Context is handed to validators. It carries the field under evaluation
// and gives access to the other fields of the same source.
type Context struct {
	// Field is the key messages are recorded under, e.g. "skills_1".
	Field string
	// Name is the declared field name without the array marker.
	Name string
	// Index is the element index of an array field, or -1.
	Index int
	Value Value
	Kind  Kind
	// Rule is the name of the rule being evaluated.
	Rule string

	ctx context.Context
	src Source
	sel Selector
	run *run
}

// Context returns the run's context.
func (c *Context) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// Lookup resolves another field of the same source.
func (c *Context) Lookup(name string) (Field, bool) {
	if c.src == nil {
		return Field{}, false
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Field{}, false
	}
	return c.src.Lookup(name, c.sel)
}

// LookupValue resolves another field and returns its value.
func (c *Context) LookupValue(name string) (Value, bool) {
	f, ok := c.Lookup(name)
	return f.Value, ok
}

// Now returns the run's clock, used by relative date tokens.
func (c *Context) Now() time.Time {
	if c.run != nil && c.run.now != nil {
		return c.run.now()
	}
	return time.Now()
}

// IsFile reports whether the field is a file input or holds files.
func (c *Context) IsFile() bool {
	return c.Kind == KindFile || c.Value.Shape() == ShapeFiles
}

// standalonePatterns serves contexts that are not part of a run.
var standalonePatterns = newLRUCache[string, *regexp.Regexp](defaultPatternCacheSize)

// compile returns the compiled pattern from the run registry's cache.
func (c *Context) compile(pattern string) (*regexp.Regexp, error) {
	if c.run != nil && c.run.registry != nil {
		return c.run.registry.compile(pattern)
	}
	return compilePattern(standalonePatterns, pattern)
}

func (c *Context) dimensionTimeout() time.Duration {
	if c.run != nil {
		return c.run.dimensionTimeout
	}
	return 0
}

func (c *Context) logPanic(rule string, err error) {
	if c.run == nil {
		return
	}
	c.run.log.ErrorContext(c.Context(), "rule panicked",
		logger.Field(c.Field),
		logger.Rule(rule),
		logger.Error(err),
	)
}

func (c *Context) trace(msg string, attrs ...slog.Attr) {
	if c.run == nil {
		return
	}
	c.run.trace(c.Context(), msg, append([]slog.Attr{logger.Field(c.Field), logger.Rule(c.Rule)}, attrs...)...)
}
