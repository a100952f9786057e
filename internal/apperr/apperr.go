// Package apperr defines the error kinds shared across services so the HTTP
// layer can map them to status codes with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the caller is not the owner of the entity.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidOperation means the request is structurally valid but not
	// allowed, e.g. following yourself.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrUnavailable is a transient store failure on an idempotent
	// operation; callers may retry blindly.
	ErrUnavailable = errors.New("store unavailable")
	// ErrWriteFailed is a failed non-idempotent write. Surfaced to the
	// caller rather than retried, since re-submission may duplicate data.
	ErrWriteFailed = errors.New("write failed")
)

// Unavailable wraps a transient store error for an idempotent operation.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}

// WriteFailed wraps a failed non-idempotent write.
func WriteFailed(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrWriteFailed, op, err)
}
