package app

import "github.com/ayoisaiah/readtime/internal/apperr"

var (
	errArgs = &apperr.Error{
		Message: "wrong number of arguments, usage: %s",
		Kind:    apperr.KindValidation,
	}

	errPageCount = &apperr.Error{
		Message: "pass either --pages or --pdf",
		Kind:    apperr.KindValidation,
	}

	errNotANumber = &apperr.Error{
		Message: "%q is not a number",
		Kind:    apperr.KindValidation,
	}

	errSignIn = &apperr.Error{
		Message: "pass either --token or --user-id",
		Kind:    apperr.KindValidation,
	}
)
