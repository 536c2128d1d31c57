package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIs(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{name: "same kind", err: NotFound("user %d", 1), target: ErrNotFound, want: true},
		{name: "other kind", err: NotFound("user %d", 1), target: ErrAccessDenied, want: false},
		{name: "wrapped", err: fmt.Errorf("ctx: %w", AccessDenied("not a member")), target: ErrAccessDenied, want: true},
		{name: "already exists is a conflict", err: AlreadyExists("org"), target: ErrConflict, want: true},
		{name: "already submitted is a conflict", err: AlreadySubmitted("join"), target: ErrConflict, want: true},
		{name: "conflict is not already exists", err: Conflict("race"), target: ErrAlreadyExists, want: false},
		{name: "plain error", err: errors.New("x"), target: ErrStore, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, errors.Is(tc.err, tc.target))
		})
	}
}

func TestStore(t *testing.T) {
	require.NoError(t, Store(nil, "x"))

	cause := errors.New("disk full")
	err := Store(cause, "delete events")
	require.ErrorIs(t, err, ErrStore)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, "STORE_ERROR: delete events: disk full", err.Error())

	denied := AccessDenied("no role")
	assert.Same(t, denied, Store(denied, "ignored"))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindInvalidInput, KindOf(fmt.Errorf("w: %w", InvalidInput("bad"))))
	assert.Equal(t, Kind(""), KindOf(errors.New("x")))
}

func TestFromValidation(t *testing.T) {
	type input struct {
		Name string `validate:"required"`
	}

	err := FromValidation(validator.New().Struct(input{}))
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "Name failed required")

	require.NoError(t, FromValidation(nil))
}
