package validator

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Future holds the outcome of a rule that completes asynchronously.
type Future struct {
	outcome Outcome
	once    sync.Once
	done    chan struct{}
}

// Async runs fn in a goroutine and returns a Future for its outcome.
// A pre-cancelled context or a timeout resolves the future as a rule error.
func Async(ctx context.Context, timeout time.Duration, fn func(context.Context) Outcome) *Future {
	f := &Future{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		// Early exit prevents goroutine work when context is pre-canceled
		select {
		case <-ctx.Done():
			f.resolve(Fail(KeyRuleError))
			return
		default:
		}

		result := make(chan Outcome, 1)
		go func() {
			defer func() {
				if rec := recover(); rec != nil {
					result <- Fail(KeyRuleError)
				}
			}()
			result <- fn(ctx)
		}()

		select {
		case out := <-result:
			if out.IsPending() {
				out = Fail(KeyRuleError)
			}
			f.resolve(out)
		case <-ctx.Done():
			f.resolve(Fail(KeyRuleError))
		}
	}()

	return f
}

// Resolved returns a completed future.
func Resolved(out Outcome) *Future {
	f := &Future{done: make(chan struct{})}
	f.resolve(out)
	close(f.done)
	return f
}

func (f *Future) resolve(out Outcome) {
	f.once.Do(func() { f.outcome = out })
}

// Await blocks until the outcome is available or ctx is done.
func (f *Future) Await(ctx context.Context) (Outcome, error) {
	select {
	case <-f.done:
		return f.outcome, nil
	case <-ctx.Done():
		return Outcome{}, fmt.Errorf("%w: %w", ErrAwaitCancelled, ctx.Err())
	}
}

// IsComplete reports whether the outcome is available without blocking.
func (f *Future) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Done is closed once the outcome is available.
func (f *Future) Done() <-chan struct{} { return f.done }
