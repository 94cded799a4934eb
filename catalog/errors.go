package catalog

import "github.com/ayoisaiah/readtime/internal/apperr"

var (
	errEmptyTitle = &apperr.Error{
		Message: "a book needs a title",
		Kind:    apperr.KindValidation,
	}

	errEmptyAuthor = &apperr.Error{
		Message: "a book needs an author",
		Kind:    apperr.KindValidation,
	}

	errTotalPages = &apperr.Error{
		Message: "total pages must be greater than zero, got %d",
		Kind:    apperr.KindValidation,
	}

	errPageOutOfRange = &apperr.Error{
		Message: "page %d is out of range: must be between 0 and %d",
		Kind:    apperr.KindValidation,
	}

	errDuplicateID = &apperr.Error{
		Message: "a book with id %s already exists",
		Kind:    apperr.KindValidation,
	}

	errEmptyNote = &apperr.Error{
		Message: "a note cannot be empty",
		Kind:    apperr.KindValidation,
	}

	errBookNotFound = &apperr.Error{
		Message: "no book with id %s",
		Kind:    apperr.KindNotFound,
	}

	errAmbiguousBook = &apperr.Error{
		Message: "%q matches %d books, use a longer id",
		Kind:    apperr.KindValidation,
	}

	errPDF = &apperr.Error{
		Message: "unable to read page count from %s",
		Kind:    apperr.KindValidation,
	}
)

// ErrPageOutOfRange matches page validation failures.
var ErrPageOutOfRange = errPageOutOfRange

// ErrBookNotFound matches lookups of unknown ids.
var ErrBookNotFound = errBookNotFound
