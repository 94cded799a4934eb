package apperr_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/readtime/internal/apperr"
)

var (
	errPageOutOfRange = &apperr.Error{
		Message: "page %d is outside 0..%d",
		Kind:    apperr.KindValidation,
	}

	errOther = &apperr.Error{
		Message: "page %d is outside 0..%d",
		Kind:    apperr.KindValidation,
	}
)

func TestFmtMatchesTemplate(t *testing.T) {
	err := errPageOutOfRange.Fmt(12, 10)

	assert.Equal(t, "page 12 is outside 0..10", err.Error())
	assert.ErrorIs(t, err, errPageOutOfRange)
	assert.NotErrorIs(t, err, errOther)
	assert.True(t, apperr.IsValidation(err))
	assert.False(t, apperr.IsNotFound(err))
}

func TestWrapKeepsCause(t *testing.T) {
	err := errPageOutOfRange.Fmt(1, 0).Wrap(io.ErrUnexpectedEOF)

	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.ErrorIs(t, err, errPageOutOfRange)
	assert.Equal(t, "page 1 is outside 0..0: unexpected EOF", err.Error())
}

func TestKindSurvivesFmtErrorf(t *testing.T) {
	err := fmt.Errorf("saving: %w", errPageOutOfRange.Fmt(3, 2))

	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, apperr.KindUnknown, apperr.KindOf(errors.New("plain")))
}
