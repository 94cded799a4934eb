// Package apperr defines the error templates shared across readtime
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error so that callers can decide how to present it.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindPersistence
	KindEmptyData
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindPersistence:
		return "persistence"
	case KindEmptyData:
		return "empty data"
	default:
		return "unknown"
	}
}

// Error is an application error. Package-level values act as templates:
// Fmt and Wrap return copies that still match the template with errors.Is.
type Error struct {
	Cause   error
	tmpl    *Error
	Message string
	Kind    Kind
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is e or the template e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e == t || e.root() == t
}

func (e *Error) root() *Error {
	if e.tmpl != nil {
		return e.tmpl
	}

	return e
}

// Fmt returns a copy of the error with its message formatted with args.
func (e *Error) Fmt(args ...any) *Error {
	return &Error{
		Message: fmt.Sprintf(e.Message, args...),
		Kind:    e.Kind,
		Cause:   e.Cause,
		tmpl:    e.root(),
	}
}

// Wrap returns a copy of the error that records err as its cause.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		Message: e.Message,
		Kind:    e.Kind,
		Cause:   err,
		tmpl:    e.root(),
	}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}

	return KindUnknown
}

func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

func IsPersistence(err error) bool {
	return KindOf(err) == KindPersistence
}
