package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campushub/internal/apperr"
	"github.com/campushub/campushub/internal/db/dbtest"
)

func TestLocalProvider(t *testing.T) {
	db := dbtest.New(t)
	p := NewLocalProvider(db)
	ctx := context.Background()

	testCases := []struct {
		name          string
		input         RegisterInput
		expectedError error
	}{
		{
			name:          "missing last name",
			input:         RegisterInput{FirstName: "Ada", Email: "ada@example.edu", Password: "correct horse"},
			expectedError: apperr.ErrInvalidInput,
		},
		{
			name:          "bad email",
			input:         RegisterInput{FirstName: "Ada", LastName: "Lovelace", Email: "ada", Password: "correct horse"},
			expectedError: apperr.ErrInvalidInput,
		},
		{
			name:          "short password",
			input:         RegisterInput{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.edu", Password: "short"},
			expectedError: apperr.ErrInvalidInput,
		},
		{
			name:  "registered",
			input: RegisterInput{FirstName: "Ada", LastName: "Lovelace", Email: "Ada@Example.edu", Password: "correct horse"},
		},
		{
			name:          "duplicate email",
			input:         RegisterInput{FirstName: "Ada", LastName: "L", Email: "ada@example.edu", Password: "correct horse"},
			expectedError: apperr.ErrAlreadyExists,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			u, err := p.Register(ctx, tc.input)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, u)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "ada@example.edu", u.Email)
			assert.NotEqual(t, tc.input.Password, u.Password)
		})
	}

	u, err := p.Authenticate(ctx, "ADA@example.edu", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "Lovelace", u.LastName)

	_, err = p.Authenticate(ctx, "ada@example.edu", "wrong horse")
	require.ErrorIs(t, err, apperr.ErrAccessDenied)
	require.ErrorIs(t, err, ErrInvalidPassword)

	_, err = p.Authenticate(ctx, "nobody@example.edu", "x")
	require.ErrorIs(t, err, apperr.ErrNotFound)

	got, err := p.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	_, err = p.GetUser(ctx, 999)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	users, err := p.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
