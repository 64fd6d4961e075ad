package config

import "github.com/ayoisaiah/tempo/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errUnknownBackend = &apperr.Error{
		Message: "unknown store backend %q (must be sheets or local)",
	}

	errMissingSetting = &apperr.Error{
		Message: "%s must be set when using the %s backend",
	}

	errEmptySheetName = &apperr.Error{
		Message: "%s sheet name cannot be empty",
	}

	errInvalidTimeout = &apperr.Error{
		Message: "store timeout must be between %v and %v",
	}

	errInvalidLogLevel = &apperr.Error{
		Message: "unknown log level %q",
	}
)
