package i18n

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"strings"
	"sync"
)

// DefaultKeyPrefix is the key tree validation messages live under.
const DefaultKeyPrefix = "validation"

var paramRegex = regexp.MustCompile(`%\{([a-zA-Z0-9_]+)\}`)

// Translator resolves translation keys per language. It implements
// validator.Catalog through Message.
type Translator struct {
	mu             sync.RWMutex
	translations   Translations
	adapter        Adapter
	defaultLang    string
	keyPrefix      string
	fallbackToKey  bool
	missingLogMode bool
	logger         *slog.Logger
}

// NewTranslator loads translations from adapter and applies options.
func NewTranslator(ctx context.Context, adapter Adapter, opts ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		adapter:       adapter,
		defaultLang:   DefaultLanguage,
		keyPrefix:     DefaultKeyPrefix,
		fallbackToKey: true,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}

	if err := t.Reload(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload fetches translations from the adapter again. The previous set stays
// in place when loading fails.
func (t *Translator) Reload(ctx context.Context) error {
	tr, err := t.adapter.Load(ctx)
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.translations = tr
	t.mu.Unlock()

	t.logger.DebugContext(ctx, "translations loaded",
		slog.Any("languages", t.SupportedLanguages()),
	)
	return nil
}

// SupportedLanguages returns the loaded language codes, sorted.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Sorted(maps.Keys(t.translations))
}

// DefaultLanguage returns the language used when a lookup misses.
func (t *Translator) DefaultLanguage() string { return t.defaultLang }

// Negotiate picks the best supported language for an Accept-Language header.
func (t *Translator) Negotiate(header string) string {
	return ParseAcceptLanguage(header, t.SupportedLanguages(), t.defaultLang)
}

// HasTranslation reports whether key exists for exactly lang.
func (t *Translator) HasTranslation(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := lookup(t.translations[strings.ToLower(lang)], key)
	return ok
}

// Message returns the validation template for a rule key, trying lang, its
// base language ("pt-br" -> "pt") and the default language in that order.
func (t *Translator) Message(lang, key string) (string, bool) {
	full := key
	if t.keyPrefix != "" {
		full = t.keyPrefix + "." + key
	}
	return t.resolve(lang, full)
}

// T translates key for lang. Args are name/value pairs substituted into
// %{name} placeholders. A missing key yields the key itself unless
// WithFallbackToKey(false) was given, in which case it yields "".
func (t *Translator) T(lang, key string, args ...string) string {
	tmpl, ok := t.resolve(lang, key)
	if !ok {
		if t.missingLogMode {
			t.logger.Warn("missing translation", slog.String("lang", lang), slog.String("key", key))
		}
		if !t.fallbackToKey {
			return ""
		}
		return key
	}
	return substitute(tmpl, args)
}

func (t *Translator) resolve(lang, key string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, candidate := range t.candidates(lang) {
		v, ok := lookup(t.translations[candidate], key)
		if !ok {
			continue
		}
		if s, ok := v.(string); ok {
			return s, true
		}
	}
	return "", false
}

func (t *Translator) candidates(lang string) []string {
	lang = strings.ToLower(lang)
	out := make([]string, 0, 3)
	if lang != "" {
		out = append(out, lang)
		if base, _, found := strings.Cut(lang, "-"); found && base != "" {
			out = append(out, base)
		}
	}
	if def := strings.ToLower(t.defaultLang); !slices.Contains(out, def) {
		out = append(out, def)
	}
	return out
}

// lookup walks a dot-separated key through nested maps.
func lookup(tree map[string]any, key string) (any, bool) {
	if tree == nil {
		return nil, false
	}
	var cur any = tree
	for part := range strings.SplitSeq(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}

func substitute(tmpl string, args []string) string {
	if len(args) < 2 {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if v, ok := params[match[2:len(match)-1]]; ok {
			return v
		}
		return match
	})
}
