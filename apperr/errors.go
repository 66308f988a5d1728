// Package apperr holds the domain error taxonomy shared by the scheduler,
// the quiz engine, the store and the HTTP handlers.
//
// Check with errors.Is: errors.Is(err, apperr.ErrNotFound)
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

// NotFound reports that the named resource is missing or not owned by the caller.
func NotFound(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func Conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

func Unauthorized(msg string) error {
	return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
}

// Message strips the sentinel prefix so handlers can show the caller what
// went wrong without leaking the wrapping chain.
func Message(err error) string {
	for _, s := range []error{ErrValidation, ErrConflict, ErrUnauthorized} {
		prefix := s.Error() + ": "
		if msg := err.Error(); errors.Is(err, s) && len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
			return msg[len(prefix):]
		}
	}
	return err.Error()
}
