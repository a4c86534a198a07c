package ledger

import (
	"fmt"
	"sort"
	"strings"
)

const DefaultValidationMessage = "Validation failed"

// ValidationError reports malformed or out-of-range input. Nothing was persisted.
type ValidationError struct {
	Message    string
	Violations map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for field, msg := range e.Violations {
		fields = append(fields, field+": "+msg)
	}
	sort.Strings(fields)
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(fields, "; "))
}

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{
		Message:    DefaultValidationMessage,
		Violations: map[string]string{field: msg},
	}
}

// ReferentialError reports an account or category that does not exist or is not owned by the caller.
type ReferentialError struct {
	Entity string
	Field  string
	ID     int64
}

func (e *ReferentialError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("referenced %s does not exist", e.Entity)
	}
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// DuplicateError reports a uniqueness collision.
type DuplicateError struct {
	Entity string
	Field  string
	Value  string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Entity, e.Field, e.Value)
}

// PersistenceError reports that the unit of work could not complete. It was rolled back and
// the whole operation may be retried.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("ledger: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
