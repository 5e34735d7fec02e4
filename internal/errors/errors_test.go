package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type customError struct {
	Msg string
}

func (e customError) Error() string { return e.Msg }

func TestNew(t *testing.T) {
	err := New("test error")
	require.Error(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrap(t *testing.T) {
	baseErr := errors.New("base error")

	t.Run("WrapNonNil", func(t *testing.T) {
		wrapped := Wrap(baseErr, "wrapped")
		require.Error(t, wrapped)
		assert.Equal(t, "wrapped: base error", wrapped.Error())
		assert.ErrorIs(t, wrapped, baseErr)
	})

	t.Run("WrapNil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "wrapped"))
	})
}

func TestWrapf(t *testing.T) {
	baseErr := errors.New("base error")

	wrapped := Wrapf(baseErr, "document %s", "abc")
	require.Error(t, wrapped)
	assert.Equal(t, "document abc: base error", wrapped.Error())
	assert.ErrorIs(t, wrapped, baseErr)

	assert.NoError(t, Wrapf(nil, "document %s", "abc"))
}

func TestIsAndAs(t *testing.T) {
	wrapped := Wrap(ErrLocked, "document is being edited")
	assert.True(t, Is(wrapped, ErrLocked))
	assert.False(t, Is(wrapped, ErrConflict))

	var target customError
	err := Wrap(customError{Msg: "custom"}, "context")
	require.True(t, As(err, &target))
	assert.Equal(t, "custom", target.Msg)
}

func TestStandardErrors(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrNotFound, "not found"},
		{ErrConflict, "conflict"},
		{ErrInvalidInput, "invalid input"},
		{ErrUnauthorized, "unauthorized"},
		{ErrForbidden, "forbidden"},
		{ErrLocked, "locked"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}
