package validator

import (
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/ruleval/pkg/logger"
)

var debugEnabled atomic.Bool

// SetDebug toggles verbose tracing of every field, rule, value and outcome
// for all runs. It never changes validation results.
func SetDebug(enabled bool) {
	debugEnabled.Store(enabled)
}

// DebugEnabled reports the process-wide tracing flag.
func DebugEnabled() bool {
	return debugEnabled.Load()
}

// debugLogger receives traces of runs that were not given a logger.
var debugLogger = sync.OnceValue(func() *slog.Logger {
	return logger.New(
		logger.WithTextFormatter(),
		logger.WithLevel(slog.LevelDebug),
		logger.WithOutput(os.Stderr),
		logger.WithAttr(logger.Component("validator")),
	)
})

var discardLogger = logger.Discard()
