package store

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials is returned by Authenticate for a bad username or
// password; callers must not learn which of the two was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError reports malformed or out-of-range input. It is always
// raised before any storage is touched, so a failed call never wrote anything.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// Validationf builds a ValidationError for a single field
func Validationf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError reports that a referenced id does not exist
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// NotFound builds a NotFoundError
func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError reports an identity clash, e.g. a GSTIN registered with a
// different immutable identity than the caller expects.
type ConflictError struct {
	Entity string
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Reason)
}

// StorageError wraps a backend I/O failure (file write, connection loss).
// The store never retries; retry policy belongs to the caller.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure in %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Storagef wraps err as a StorageError unless it already carries a domain kind
func Storagef(op string, err error) error {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	var nf *NotFoundError
	var ce *ConflictError
	if errors.As(err, &ve) || errors.As(err, &nf) || errors.As(err, &ce) || errors.Is(err, ErrInvalidCredentials) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict reports whether err is (or wraps) a ConflictError
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
