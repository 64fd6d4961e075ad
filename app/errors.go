package app

import "github.com/ayoisaiah/tempo/internal/apperr"

var (
	errMissingArg = &apperr.Error{
		Message: "missing %s, usage: tempo %s",
	}

	errInvalidPeriod = &apperr.Error{
		Message: "invalid period %q, must be one of: %s",
	}

	errInvalidDateRange = &apperr.Error{
		Message: "the end date must not be earlier than the start date",
	}

	errNothingRunning = &apperr.Error{
		Message: "no timer is running",
	}

	errSeveralRunning = &apperr.Error{
		Message: "%d timers are running, specify which task to stop",
	}

	errCloseExport = &apperr.Error{
		Message: "unable to finish writing %s",
	}
)
