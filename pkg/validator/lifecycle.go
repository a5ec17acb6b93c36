package validator

import (
	"errors"
	"fmt"
	"sync"
)

// State is the lifecycle state of a validation run.
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

type event string

const (
	eventStart    event = "start"
	eventComplete event = "complete"
	eventFail     event = "fail"
)

// ErrNoTransition is returned when a lifecycle event is fired from a state
// that does not accept it.
var ErrNoTransition = errors.New("validator: no lifecycle transition available")

// lifecycleTransitions is indexed by [from][event] for O(1) lookups.
var lifecycleTransitions = map[State]map[event]State{
	StateIdle: {
		eventStart: StateRunning,
		eventFail:  StateFailed,
	},
	StateRunning: {
		eventComplete: StateCompleted,
		eventFail:     StateFailed,
	},
}

// lifecycle is the thread-safe state holder of one run. Pending rules are
// resolved from the caller's goroutine while State may be read elsewhere.
type lifecycle struct {
	mu      sync.RWMutex
	current State
}

func newLifecycle() *lifecycle {
	return &lifecycle{current: StateIdle}
}

func (l *lifecycle) state() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

func (l *lifecycle) fire(e event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next, ok := lifecycleTransitions[l.current][e]
	if !ok {
		return fmt.Errorf("%w: from %q on %q", ErrNoTransition, l.current, e)
	}
	l.current = next
	return nil
}

// terminal reports whether the run reached Completed or Failed.
func (l *lifecycle) terminal() bool {
	s := l.state()
	return s == StateCompleted || s == StateFailed
}
