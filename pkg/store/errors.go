package store

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks missing or malformed input.
	ErrValidation = errors.New("validation failed")
	// ErrConflict is returned when a username is already taken.
	ErrConflict = errors.New("username already exists")
	// ErrUnauthorized covers both unknown users and password mismatches.
	ErrUnauthorized = errors.New("invalid username or password")
)

// StoreError wraps a persistence failure. The wrapped cause is meant for
// logs only and must not be sent to clients.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("store: %s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
