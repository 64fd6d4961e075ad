package timer

import "github.com/ayoisaiah/tempo/internal/apperr"

var (
	// ErrAlreadyRunning is returned when starting a task whose timer is
	// already running.
	ErrAlreadyRunning = &apperr.Error{
		Message: "the timer for %q is already running",
	}

	// ErrNoActiveSession is returned when stopping a task that has no
	// running timer.
	ErrNoActiveSession = &apperr.Error{
		Message: "%q has no running timer",
	}

	ErrTaskArchived = &apperr.Error{
		Message: "%q is archived and cannot be timed",
	}

	errStartInFuture = &apperr.Error{
		Message: "a timer cannot start in the future (%s)",
	}

	errSessionCmd = &apperr.Error{
		Message: "unable to parse stop_cmd option",
	}
)
