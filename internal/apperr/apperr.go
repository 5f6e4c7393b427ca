// Package apperr defines the error kinds the HTTP layer maps to status codes.
package apperr

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a referenced record as absent.
var ErrNotFound = errors.New("not found")

// ValidationError signals a missing or malformed required field (-> 400).
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	return "missing required field: " + e.Field
}

// Missing builds a ValidationError for an absent required field.
func Missing(field string) error { return &ValidationError{Field: field} }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// PersistenceError wraps a datastore read/write failure (-> 500).
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return "persistence: " + e.Op + ": " + e.Err.Error() }
func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence wraps err with the failing operation name.
func Persistence(op string, err error) error { return &PersistenceError{Op: op, Err: err} }

// IsPersistence reports whether err wraps a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
