package validator

import (
	"fmt"
	"strings"
)

// FieldError is a single recorded failure with translation support.
type FieldError struct {
	Field          string            `json:"field"`
	Rule           string            `json:"rule"`
	Message        string            `json:"message"`
	TranslationKey string            `json:"translation_key"`
	Params         map[string]string `json:"params,omitempty"`
}

// ErrorStore is the ordered collection of failures recorded by one run.
type ErrorStore []FieldError

func (es ErrorStore) Error() string {
	if len(es) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, err := range es {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (es *ErrorStore) Add(err FieldError) {
	*es = append(*es, err)
}

func (es ErrorStore) Has(field string) bool {
	for _, err := range es {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Get returns every message recorded for field, in order.
func (es ErrorStore) Get(field string) []string {
	var messages []string
	for _, err := range es {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

// First returns the first message recorded for field.
func (es ErrorStore) First(field string) (string, bool) {
	for _, err := range es {
		if err.Field == field {
			return err.Message, true
		}
	}
	return "", false
}

func (es ErrorStore) GetErrors(field string) []FieldError {
	var errors []FieldError
	for _, err := range es {
		if err.Field == field {
			errors = append(errors, err)
		}
	}
	return errors
}

// Fields returns the failed fields in the order they were first recorded.
func (es ErrorStore) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range es {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

func (es ErrorStore) IsEmpty() bool {
	return len(es) == 0
}

// Flatten returns the first message per field.
func (es ErrorStore) Flatten() map[string]string {
	out := make(map[string]string, len(es))
	for _, err := range es {
		if _, ok := out[err.Field]; !ok {
			out[err.Field] = err.Message
		}
	}
	return out
}

// All returns every message per field.
func (es ErrorStore) All() map[string][]string {
	out := make(map[string][]string, len(es))
	for _, err := range es {
		out[err.Field] = append(out[err.Field], err.Message)
	}
	return out
}

// GetErrors flattens a store into field to message. With flatten set only the
// first message per field is kept; otherwise messages are joined with "; ".
func GetErrors(store ErrorStore, flatten bool) map[string]string {
	if flatten {
		return store.Flatten()
	}
	out := make(map[string]string, len(store))
	for field, messages := range store.All() {
		out[field] = strings.Join(messages, "; ")
	}
	return out
}
