package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that an update or delete matched no rows.
var ErrNotFound = errors.New("not found")

// errDuplicateUser is internal: Register turns it into a false result.
var errDuplicateUser = errors.New("username already exists")

// ValidationError reports input rejected before any storage access.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

// StorageError wraps any failure coming from the database itself.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStorage reports whether err is a *StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// passthrough errors are returned to the caller as-is instead of being wrapped
// as storage faults.
func passthrough(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, errDuplicateUser) || IsValidation(err)
}
