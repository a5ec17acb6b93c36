package validator

import "errors"

var (
	// ErrNoSource is recorded when Validate is called without a value source.
	ErrNoSource = errors.New("validator: no value source provided")

	// ErrRulePanicked wraps the recovered value of a validator that panicked.
	ErrRulePanicked = errors.New("validator: rule panicked")

	// ErrAwaitCancelled is returned when waiting for pending rules is cancelled.
	ErrAwaitCancelled = errors.New("validator: waiting for pending rules was cancelled")

	// ErrInvalidPattern is logged when a regex rule carries a pattern that does not compile.
	ErrInvalidPattern = errors.New("validator: invalid regex pattern")
)

// GlobalField is the error key used for failures that concern the whole run.
const GlobalField = "_global"

// Message keys that differ from a rule name.
const (
	KeyRuleError            = "rule_error"
	KeySameMissing          = "same_missing"
	KeyConfirmedMissing     = "confirmed_missing"
	KeyDimensionsUnreadable = "dimensions_unreadable"
	KeyNoSource             = "no_source"
)
