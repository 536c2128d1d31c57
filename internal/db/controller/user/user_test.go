package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campushub/internal/db/controller"
	"github.com/campushub/campushub/internal/db/dbtest"
	"github.com/campushub/campushub/internal/db/models"
)

func TestInsertAndGet(t *testing.T) {
	db := dbtest.New(t)

	u := &models.User{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.edu"}
	require.NoError(t, Insert(db, u))
	assert.NotZero(t, u.ID)

	dup := &models.User{FirstName: "G", LastName: "H", Email: "grace@example.edu"}
	require.ErrorIs(t, Insert(db, dup), ErrUserExists)

	withID := &models.User{ID: 42, FirstName: "Alan", LastName: "Turing", Email: "alan@example.edu"}
	require.NoError(t, Insert(db, withID))

	got, err := Get(db, 42)
	require.NoError(t, err)
	assert.Equal(t, "Alan Turing", got.FullName())

	got, err = GetByEmail(db, "grace@example.edu")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = Get(db, 7)
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = GetByEmail(db, "nobody@example.edu")
	require.ErrorIs(t, err, ErrUserNotFound)

	ok, err := Exists(db, 42)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Exists(db, 7)
	require.NoError(t, err)
	assert.False(t, ok)

	users, err := List(db)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Hopper", users[0].LastName)

	_, err = Get(nil, 1)
	require.ErrorIs(t, err, controller.ErrDBNil)
}
