package organization

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campushub/campushub/internal/apperr"
	"github.com/campushub/campushub/internal/auth"
	"github.com/campushub/campushub/internal/db/dbtest"
	"github.com/campushub/campushub/internal/db/models"
	"github.com/campushub/campushub/internal/officer"
)

func newService(t *testing.T) (*Service, *gorm.DB, []models.User) {
	t.Helper()

	db := dbtest.New(t)
	authService := auth.NewService(db)
	svc := NewService(db, authService, officer.NewService(db, authService))

	users := []models.User{}

	for _, name := range []string{"Ada", "Grace"} {
		u := models.User{FirstName: name, LastName: "Tester", Email: name + "@example.edu"}
		require.NoError(t, db.Create(&u).Error)
		users = append(users, u)
	}

	return svc, db, users
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)

	return n
}

func TestCreate(t *testing.T) {
	svc, db, users := newService(t)
	ctx := context.Background()

	org, roleID, err := svc.Create(ctx, users[0].ID, CreateInput{Name: "  Chess Society ", ContactEmail: "chess@example.edu"})
	require.NoError(t, err)
	assert.Equal(t, "Chess Society", org.Name)
	assert.NotZero(t, roleID)

	perms, err := svc.auth.EffectivePermissions(ctx, org.ID, users[0].ID)
	require.NoError(t, err)
	assert.Equal(t, auth.AllPermissions(), perms)

	var m models.Membership
	require.NoError(t, db.Where("user_id = ? AND org_id = ?", users[0].ID, org.ID).First(&m).Error)
	assert.Equal(t, models.MembershipApproved, m.Status)
	assert.NotNil(t, m.DateApproved)

	testCases := []struct {
		name          string
		creatorID     uint
		in            CreateInput
		expectedError error
	}{
		{name: "empty name", creatorID: users[0].ID, in: CreateInput{Name: "   "}, expectedError: apperr.ErrInvalidInput},
		{name: "bad email", creatorID: users[0].ID, in: CreateInput{Name: "Go Club", ContactEmail: "nope"}, expectedError: apperr.ErrInvalidInput},
		{name: "duplicate name", creatorID: users[1].ID, in: CreateInput{Name: "Chess Society"}, expectedError: apperr.ErrAlreadyExists},
		{name: "unknown creator", creatorID: 999, in: CreateInput{Name: "Ghost Club"}, expectedError: apperr.ErrNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Create(ctx, tc.creatorID, tc.in)
			require.ErrorIs(t, err, tc.expectedError)
		})
	}

	// the unknown creator must not leave an orphan organization behind
	assert.Equal(t, int64(1), count(t, db, &models.Organization{}))
}

func TestGetListUpdate(t *testing.T) {
	svc, _, users := newService(t)
	ctx := context.Background()

	chess, _, err := svc.Create(ctx, users[0].ID, CreateInput{Name: "chess"})
	require.NoError(t, err)
	_, _, err = svc.Create(ctx, users[1].ID, CreateInput{Name: "Astronomy"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, 999)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	orgs, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, orgs, 2)
	assert.Equal(t, "Astronomy", orgs[0].Name)

	orgs, err = svc.List(ctx, "CHE")
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	assert.Equal(t, chess.ID, orgs[0].ID)

	desc := "Weekly games"
	got, err := svc.Update(ctx, chess.ID, UpdateInput{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "chess", got.Name)
	assert.Equal(t, desc, got.Description)

	dup := "Astronomy"
	_, err = svc.Update(ctx, chess.ID, UpdateInput{Name: &dup})
	require.ErrorIs(t, err, apperr.ErrAlreadyExists)

	_, err = svc.Update(ctx, 999, UpdateInput{Description: &desc})
	require.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.UpdateAs(ctx, users[1].ID, chess.ID, UpdateInput{Description: &desc})
	require.ErrorIs(t, err, apperr.ErrAccessDenied)

	_, err = svc.UpdateAs(ctx, users[0].ID, chess.ID, UpdateInput{Description: &desc})
	require.NoError(t, err)
}

func TestDelete(t *testing.T) {
	svc, db, users := newService(t)
	ctx := context.Background()

	chess, roleID, err := svc.Create(ctx, users[0].ID, CreateInput{Name: "Chess Society"})
	require.NoError(t, err)
	other, otherRoleID, err := svc.Create(ctx, users[1].ID, CreateInput{Name: "Astronomy"})
	require.NoError(t, err)

	pending := models.Membership{UserID: users[1].ID, OrgID: chess.ID, Status: models.MembershipPending, DateApplied: time.Now()}
	require.NoError(t, db.Create(&pending).Error)

	require.NoError(t, db.Create(&models.Announcement{
		OrgID: chess.ID, CreatedBy: roleID, Title: "Hi", Content: "Welcome", DatePosted: time.Now(),
	}).Error)
	require.NoError(t, db.Create(&models.Event{
		OrgID: chess.ID, CreatedBy: roleID, EventName: "Blitz", EventDate: time.Now(),
	}).Error)
	require.NoError(t, db.Create(&models.Event{
		OrgID: other.ID, CreatedBy: otherRoleID, EventName: "Star party", EventDate: time.Now(),
	}).Error)

	_, err = svc.DeleteAs(ctx, users[1].ID, chess.ID)
	require.ErrorIs(t, err, apperr.ErrAccessDenied)

	_, err = svc.DeleteAs(ctx, users[0].ID, 999)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	summary, err := svc.DeleteAs(ctx, users[0].ID, chess.ID)
	require.NoError(t, err)
	assert.Equal(t, &DeleteSummary{
		Announcements: 1,
		Events:        1,
		OfficerRoles:  1,
		Memberships:   2,
		Organizations: 1,
	}, summary)

	_, err = svc.Get(ctx, chess.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	// the other organization is untouched
	assert.Equal(t, int64(1), count(t, db, &models.Organization{}))
	assert.Equal(t, int64(1), count(t, db, &models.Event{}))
	assert.Equal(t, int64(1), count(t, db, &models.OfficerRole{}))
	assert.Equal(t, int64(1), count(t, db, &models.Membership{}))

	_, err = svc.Delete(ctx, chess.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}
