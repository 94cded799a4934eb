package config

import "github.com/ayoisaiah/readtime/internal/apperr"

var (
	errConfigValidation = &apperr.Error{
		Message: "config validation error",
		Kind:    apperr.KindValidation,
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
		Kind:    apperr.KindPersistence,
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
		Kind:    apperr.KindPersistence,
	}

	errInvalidGoal = &apperr.Error{
		Message: "goal.default_minutes must be between 1 and %d, got %v",
		Kind:    apperr.KindValidation,
	}

	errInvalidDriver = &apperr.Error{
		Message: "storage.driver must be bolt or sqlite, got %q",
		Kind:    apperr.KindValidation,
	}

	errInvalidPort = &apperr.Error{
		Message: "server.port must be between 1 and 65535, got %d",
		Kind:    apperr.KindValidation,
	}

	errInvalidDate = &apperr.Error{
		Message: "invalid date %q",
		Kind:    apperr.KindValidation,
	}
)
