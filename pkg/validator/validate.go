package validator

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/ruleval/pkg/logger"
)

// run is the state owned by one Validate call.
type run struct {
	id               string
	registry         *Registry
	messages         Messages
	selector         Selector
	log              *slog.Logger
	debug            bool
	language         string
	catalog          Catalog
	dimensionTimeout time.Duration
	now              func() time.Time

	life *lifecycle

	mu      sync.Mutex
	errors  ErrorStore
	pending []pendingField
}

type pendingField struct {
	c      *Context
	spec   RuleSpec
	rest   RuleChain
	future *Future
}

func newRun(opts []Option) *run {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	log := o.logger
	if log == nil {
		log = discardLogger
		if o.debug {
			log = debugLogger()
		}
	}

	return &run{
		id:               uuid.NewString(),
		registry:         o.registry,
		messages:         o.messages,
		selector:         o.selector,
		log:              log,
		debug:            o.debug,
		language:         o.language,
		catalog:          o.catalog,
		dimensionTimeout: o.dimensionTimeout,
		now:              o.now,
		life:             newLifecycle(),
	}
}

func (r *run) tracing() bool {
	return r.debug || debugEnabled.Load()
}

func (r *run) trace(ctx context.Context, msg string, attrs ...slog.Attr) {
	if !r.tracing() {
		return
	}
	log := r.log
	if log == discardLogger {
		log = debugLogger()
	}
	log.LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

func (r *run) record(c *Context, spec RuleSpec, out Outcome) {
	msg, key, params := r.message(c, spec, out)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors.Add(FieldError{
		Field:          c.Field,
		Rule:           spec.Name,
		Message:        msg,
		TranslationKey: key,
		Params:         params,
	})
}

func (r *run) fail(ctx context.Context, key string, err error) {
	tmpl, _ := r.catalogMessage(key)
	r.mu.Lock()
	r.errors.Add(FieldError{
		Field:          GlobalField,
		Message:        Render(tmpl, map[string]string{"rule": "validate"}),
		TranslationKey: key,
	})
	r.mu.Unlock()

	if fireErr := r.life.fire(eventFail); fireErr != nil {
		err = fmt.Errorf("%w: %w", err, fireErr)
	}
	r.log.ErrorContext(ctx, "validation run failed", logger.Error(err))
}

// Validate evaluates rules against the values of src.
//
// Each declared field runs its rule chain left to right and stops at the
// first failure. Fields missing from src are skipped. A field declared as
// "name[]" is validated once per element under the key "name_<index>".
//
// The returned Result is complete unless a rule deferred its verdict (see
// Result.Pending and Result.Wait). Validate never panics.
func Validate(ctx context.Context, src Source, rules Rules, opts ...Option) (res *Result) {
	if ctx == nil {
		ctx = context.Background()
	}
	r := newRun(opts)
	ctx = logger.WithRunID(ctx, r.id)
	res = &Result{run: r}

	if src == nil {
		r.fail(ctx, KeyNoSource, ErrNoSource)
		return res
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.fail(ctx, KeyRuleError, fmt.Errorf("%w: %v", ErrRulePanicked, rec))
		}
	}()

	if err := r.life.fire(eventStart); err != nil {
		r.fail(ctx, KeyRuleError, err)
		return res
	}
	r.trace(ctx, "validation started", logger.Count("fields", len(rules)))

	for _, fr := range rules {
		chain := r.registry.Parse(fr.Spec)
		if len(chain) == 0 {
			r.log.WarnContext(ctx, "field has no rules, skipping", logger.Field(fr.Field))
			continue
		}

		if base, ok := strings.CutSuffix(fr.Field, ArraySuffix); ok {
			for i, el := range src.Elements(base, r.selector) {
				r.validateField(ctx, &Context{
					Field: base + "_" + strconv.Itoa(i),
					Name:  base,
					Index: i,
					Value: el.Value,
					Kind:  el.Kind,
					ctx:   ctx,
					src:   src,
					sel:   r.selector,
					run:   r,
				}, chain)
			}
			continue
		}

		field, ok := src.Lookup(fr.Field, r.selector)
		if !ok {
			r.trace(ctx, "field not found, skipping", logger.Field(fr.Field))
			continue
		}
		r.validateField(ctx, &Context{
			Field: fr.Field,
			Name:  fr.Field,
			Index: -1,
			Value: field.Value,
			Kind:  field.Kind,
			ctx:   ctx,
			src:   src,
			sel:   r.selector,
			run:   r,
		}, chain)
	}

	if len(r.pending) == 0 {
		_ = r.life.fire(eventComplete)
		r.trace(ctx, "validation completed", logger.Count("errors", len(r.errors)))
	}
	return res
}

func (r *run) validateField(ctx context.Context, c *Context, chain RuleChain) {
	for i, spec := range chain {
		c.Rule = spec.Name
		out := r.registry.evaluate(c, spec)

		if r.tracing() {
			r.trace(ctx, "rule evaluated",
				logger.Field(c.Field),
				logger.Rule(spec.Name),
				logger.Value(c.Value.Raw()),
				logger.Outcome(out.status()),
			)
		}

		if out.IsPending() {
			r.pending = append(r.pending, pendingField{c: c, spec: spec, rest: chain[i+1:], future: out.pending})
			return
		}
		if !out.Valid {
			r.record(c, spec, out)
			return
		}
	}
}
