// Package apperror holds the error taxonomy shared by services and handlers.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrStorage      = errors.New("storage failure")
)

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }
func (e *validationError) Unwrap() error { return ErrValidation }

// Validation reports bad client input. The message is safe to show to clients.
func Validation(format string, args ...any) error {
	return &validationError{msg: fmt.Sprintf(format, args...)}
}

type notFoundError struct {
	entity string
}

func (e *notFoundError) Error() string { return e.entity + " not found" }
func (e *notFoundError) Unwrap() error { return ErrNotFound }

// NotFound reports a missing record, or one owned by another user.
func NotFound(entity string) error {
	return &notFoundError{entity: entity}
}

// StorageError wraps a persistence failure with the operation that caused it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() []error { return []error{ErrStorage, e.Err} }

// Storage wraps err with operation context. Taxonomy errors pass through
// untouched so a NotFound raised inside a transaction keeps its meaning.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) || errors.Is(err, ErrStorage) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// RecomputeError marks a mutation that was written successfully but whose
// derived streak values could not be refreshed.
type RecomputeError struct {
	Err error
}

func (e *RecomputeError) Error() string { return "recompute streaks: " + e.Err.Error() }
func (e *RecomputeError) Unwrap() error { return e.Err }
