package repository

import "github.com/ayoisaiah/tempo/internal/apperr"

var (
	// ErrSync is returned when a change could not be written to the sheet
	// store. The mirror is left untouched and may be retried.
	ErrSync = &apperr.Error{
		Message: "sync failed: could not %s %s",
	}

	ErrTaskNotFound = &apperr.Error{
		Message: "task %q not found",
	}

	ErrSessionNotFound = &apperr.Error{
		Message: "session %q not found",
	}

	ErrAmbiguousID = &apperr.Error{
		Message: "%q matches %d tasks, use a longer id",
	}

	ErrEmptyName = &apperr.Error{
		Message: "task name cannot be empty",
	}
)
