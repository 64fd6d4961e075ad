// Package apperr provides the error type shared by tempo packages
package apperr

import (
	"errors"
	"fmt"
)

// Error is an application error. Message may contain fmt verbs which are
// filled in by Fmt. Errors derived through Fmt or Wrap still match their
// template with errors.Is.
type Error struct {
	Err      error
	Message  string
	template string
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}

	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the same kind of error as e.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return e.origin() == t.origin()
}

func (e *Error) origin() string {
	if e.template != "" {
		return e.template
	}

	return e.Message
}

// Fmt returns a copy of the error with its message formatted using args.
func (e *Error) Fmt(args ...any) *Error {
	return &Error{
		Message:  fmt.Sprintf(e.Message, args...),
		Err:      e.Err,
		template: e.origin(),
	}
}

// Wrap returns a copy of the error that wraps err.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		Message:  e.Message,
		Err:      err,
		template: e.origin(),
	}
}
