package validator

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrymomot/ruleval/pkg/logger"
)

// Result is the outcome of one validation run.
type Result struct {
	run    *run
	waitMu sync.Mutex
}

// Valid reports whether the run completed with no recorded failures.
// It is false while rules are still pending.
func (res *Result) Valid() bool {
	if res.run.life.state() != StateCompleted {
		return false
	}
	res.run.mu.Lock()
	defer res.run.mu.Unlock()
	return res.run.errors.IsEmpty()
}

// Errors returns a copy of the recorded failures.
func (res *Result) Errors() ErrorStore {
	res.run.mu.Lock()
	defer res.run.mu.Unlock()
	return slices.Clone(res.run.errors)
}

// Flatten returns the first message per field.
func (res *Result) Flatten() map[string]string {
	return GetErrors(res.Errors(), true)
}

// Err returns the error store as an error, or nil when the run is valid.
func (res *Result) Err() error {
	if res.Valid() {
		return nil
	}
	return res.Errors()
}

// Pending reports whether some rules have not delivered their verdict yet.
func (res *Result) Pending() bool {
	return !res.run.life.terminal()
}

// State returns the lifecycle state of the run.
func (res *Result) State() State {
	return res.run.life.state()
}

// RunID returns the identifier attached to the run's log records.
func (res *Result) RunID() string {
	return res.run.id
}

// Wait blocks until every pending rule has resolved and records their
// failures. A pending rule that passes resumes the rest of its field's chain.
// If ctx ends first, the unresolved fields are recorded as rule
// errors, the run moves to StateFailed and the context error is returned.
func (res *Result) Wait(ctx context.Context) error {
	res.waitMu.Lock()
	defer res.waitMu.Unlock()

	r := res.run
	if r.life.terminal() {
		return nil
	}
	ctx = logger.WithRunID(ctx, r.id)

	for i := 0; i < len(r.pending); i++ {
		p := r.pending[i]
		out, err := p.future.Await(ctx)
		if err != nil {
			for _, rest := range r.pending[i:] {
				r.record(rest.c, rest.spec, Fail(KeyRuleError))
			}
			r.pending = nil
			_ = r.life.fire(eventFail)
			r.log.WarnContext(ctx, "waiting for pending rules aborted", logger.Error(err))
			return err
		}

		r.trace(ctx, "pending rule resolved",
			logger.Field(p.c.Field),
			logger.Rule(p.spec.Name),
			logger.Outcome(out.status()),
		)
		if !out.Valid {
			r.record(p.c, p.spec, out)
			continue
		}
		if len(p.rest) > 0 {
			r.validateField(ctx, p.c, p.rest)
		}
	}

	r.pending = nil
	r.trace(ctx, "validation completed", logger.Count("errors", len(res.Errors())))
	return r.life.fire(eventComplete)
}
