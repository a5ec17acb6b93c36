package validator

import (
	"fmt"
	"regexp"
	"sort"
	"sync"
)

// Validator evaluates one rule against the field held by the context.
type Validator interface {
	Evaluate(c *Context, params []string) Outcome
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(c *Context, params []string) Outcome

func (f ValidatorFunc) Evaluate(c *Context, params []string) Outcome {
	return f(c, params)
}

// Outcome is the result of a single rule evaluation.
//
// Key selects the message template when a rule can fail for more than one
// reason (for example "same_missing" versus "same"). It defaults to the rule
// name. Message, when set, is used as the template before any catalog lookup.
// Params are extra placeholder values merged into the template context.
type Outcome struct {
	Valid   bool
	Key     string
	Message string
	Params  map[string]string

	pending *Future
}

// Pass is the successful outcome.
func Pass() Outcome { return Outcome{Valid: true} }

// Fail returns a failing outcome using the message template registered under key.
// An empty key means the rule's own name.
func Fail(key string) Outcome { return Outcome{Key: key} }

// FailWith returns a failing outcome carrying an explicit message template.
func FailWith(key, message string) Outcome {
	return Outcome{Key: key, Message: message}
}

// Pending returns an outcome whose verdict is delivered later by f.
func Pending(f *Future) Outcome { return Outcome{pending: f} }

// IsPending reports whether the verdict is deferred.
func (o Outcome) IsPending() bool { return o.pending != nil }

// With attaches placeholder values to the outcome.
func (o Outcome) With(params map[string]string) Outcome {
	if len(params) == 0 {
		return o
	}
	merged := make(map[string]string, len(o.Params)+len(params))
	for k, v := range o.Params {
		merged[k] = v
	}
	for k, v := range params {
		merged[k] = v
	}
	o.Params = merged
	return o
}

func (o Outcome) status() string {
	switch {
	case o.IsPending():
		return "pending"
	case o.Valid:
		return "pass"
	default:
		return "fail"
	}
}

const (
	defaultChainCacheSize   = 512
	defaultPatternCacheSize = 128
)

type registryEntry struct {
	validator Validator
	implicit  bool
}

// Registry maps rule names to validators. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	entries  map[string]registryEntry
	chains   *lruCache[string, RuleChain]
	patterns *lruCache[string, *regexp.Regexp]
}

type registryConfig struct {
	chainCacheSize   int
	patternCacheSize int
	empty            bool
}

// RegistryOption configures a Registry.
type RegistryOption func(*registryConfig)

// WithChainCacheSize sets how many parsed rule strings are kept. Zero disables the cache.
func WithChainCacheSize(n int) RegistryOption {
	return func(c *registryConfig) { c.chainCacheSize = n }
}

// WithPatternCacheSize sets how many compiled regex patterns are kept. Zero disables the cache.
func WithPatternCacheSize(n int) RegistryOption {
	return func(c *registryConfig) { c.patternCacheSize = n }
}

// WithoutBuiltins creates a registry with no rules registered.
func WithoutBuiltins() RegistryOption {
	return func(c *registryConfig) { c.empty = true }
}

// NewRegistry creates a registry holding the built-in rule catalogue.
func NewRegistry(opts ...RegistryOption) *Registry {
	cfg := registryConfig{
		chainCacheSize:   defaultChainCacheSize,
		patternCacheSize: defaultPatternCacheSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Registry{
		entries:  make(map[string]registryEntry),
		chains:   newLRUCache[string, RuleChain](cfg.chainCacheSize),
		patterns: newLRUCache[string, *regexp.Regexp](cfg.patternCacheSize),
	}
	if !cfg.empty {
		registerPresenceRules(r)
		registerTypeRules(r)
		registerFormatRules(r)
		registerSizeRules(r)
		registerComparisonRules(r)
		registerDateRules(r)
		registerChoiceRules(r)
		registerFileRules(r)
	}
	return r
}

// DefaultRegistry is used by Validate unless WithRegistry is given.
var DefaultRegistry = NewRegistry()

// Register adds or replaces a rule. The rule is skipped for empty values.
func (r *Registry) Register(name string, v Validator) {
	r.set(name, v, false)
}

// RegisterImplicit adds or replaces a rule that also runs on empty values.
func (r *Registry) RegisterImplicit(name string, v Validator) {
	r.set(name, v, true)
}

// RegisterFunc is shorthand for Register(name, ValidatorFunc(fn)).
func (r *Registry) RegisterFunc(name string, fn func(c *Context, params []string) Outcome) {
	r.set(name, ValidatorFunc(fn), false)
}

func (r *Registry) set(name string, v Validator, implicit bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = registryEntry{validator: v, implicit: implicit}
}

// Lookup returns the validator registered under name.
func (r *Registry) Lookup(name string) (Validator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e.validator, ok
}

// Has reports whether a rule is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names returns all registered rule names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse parses a rule string, reusing cached chains.
func (r *Registry) Parse(spec string) RuleChain {
	if chain, ok := r.chains.get(spec); ok {
		return chain
	}
	chain := ParseRules(spec)
	r.chains.put(spec, chain)
	return chain
}

// compile returns the compiled pattern, reusing cached ones.
func (r *Registry) compile(pattern string) (*regexp.Regexp, error) {
	return compilePattern(r.patterns, pattern)
}

func compilePattern(cache *lruCache[string, *regexp.Regexp], pattern string) (*regexp.Regexp, error) {
	if re, ok := cache.get(pattern); ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	cache.put(pattern, re)
	return re, nil
}

// evaluate dispatches one rule. Unknown rules pass, non-implicit rules pass
// on empty values and a panicking validator becomes a failing outcome.
func (r *Registry) evaluate(c *Context, spec RuleSpec) (out Outcome) {
	r.mu.RLock()
	e, ok := r.entries[spec.Name]
	r.mu.RUnlock()

	if !ok {
		return Pass()
	}
	if !e.implicit && IsEmpty(c.Value) {
		return Pass()
	}

	defer func() {
		if rec := recover(); rec != nil {
			c.logPanic(spec.Name, fmt.Errorf("%w: %v", ErrRulePanicked, rec))
			out = Fail(KeyRuleError)
		}
	}()

	return e.validator.Evaluate(c, spec.Params)
}
