package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campushub/campushub/internal/apperr"
	"github.com/campushub/campushub/internal/db/dbtest"
	"github.com/campushub/campushub/internal/db/models"
)

func createMembership(t *testing.T, db *gorm.DB, userID, orgID uint, status models.MembershipStatus) *models.Membership {
	t.Helper()

	m := &models.Membership{UserID: userID, OrgID: orgID, Status: status, DateApplied: time.Now()}
	require.NoError(t, db.Create(m).Error)

	return m
}

func createRole(t *testing.T, db *gorm.DB, membershipID uint, name string, perms Permissions) *models.OfficerRole {
	t.Helper()

	r := &models.OfficerRole{
		MembershipID:         membershipID,
		RoleName:             name,
		RoleStart:            time.Now(),
		CanPostAnnouncements: perms.CanPostAnnouncements,
		CanCreateEvents:      perms.CanCreateEvents,
		CanApproveMembers:    perms.CanApproveMembers,
		CanAssignRoles:       perms.CanAssignRoles,
	}
	require.NoError(t, db.Create(r).Error)

	return r
}

func TestEffectivePermissions(t *testing.T) {
	db := dbtest.New(t)
	s := NewService(db)
	ctx := context.Background()

	perms, err := s.EffectivePermissions(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, Permissions{}, perms, "no membership")

	m := createMembership(t, db, 1, 1, models.MembershipApproved)

	perms, err = s.EffectivePermissions(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, Permissions{}, perms, "membership without roles")

	createRole(t, db, m.ID, "Publicist", Permissions{CanPostAnnouncements: true})
	createRole(t, db, m.ID, "Planner", Permissions{CanCreateEvents: true})

	perms, err = s.EffectivePermissions(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, Permissions{CanPostAnnouncements: true, CanCreateEvents: true}, perms)

	createRole(t, db, m.ID, "Admin", Permissions{})

	perms, err = s.EffectivePermissions(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, AllPermissions(), perms)

	perms, err = s.EffectivePermissions(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, Permissions{}, perms, "roles do not leak into other organizations")
}

func TestRequire(t *testing.T) {
	db := dbtest.New(t)
	s := NewService(db)
	ctx := context.Background()

	m := createMembership(t, db, 1, 1, models.MembershipApproved)
	createRole(t, db, m.ID, "Secretary", Permissions{CanApproveMembers: true})

	require.NoError(t, s.Require(ctx, 1, 1, FlagApproveMembers))
	require.ErrorIs(t, s.Require(ctx, 1, 1, FlagAssignRoles), apperr.ErrAccessDenied)
	require.ErrorIs(t, s.Require(ctx, 1, 1, Flag("can_fly")), apperr.ErrInvalidInput)

	ok, err := s.HasPermission(ctx, 1, 2, FlagApproveMembers)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthorizeContentCreation(t *testing.T) {
	db := dbtest.New(t)
	s := NewService(db)
	ctx := context.Background()

	// user 1: pending in org 1, but officer with post rights in org 2
	createMembership(t, db, 1, 1, models.MembershipPending)
	other := createMembership(t, db, 1, 2, models.MembershipApproved)
	createRole(t, db, other.ID, "Publicist", Permissions{CanPostAnnouncements: true})

	// user 2: approved plain member of org 1
	createMembership(t, db, 2, 1, models.MembershipApproved)

	// user 3: officer in org 1 with an events role then a posting role
	officer := createMembership(t, db, 3, 1, models.MembershipApproved)
	planner := createRole(t, db, officer.ID, "Planner", Permissions{CanCreateEvents: true})
	publicist := createRole(t, db, officer.ID, "Publicist", Permissions{CanPostAnnouncements: true})

	// user 4: admin in org 1
	admin := createMembership(t, db, 4, 1, models.MembershipApproved)
	adminRole := createRole(t, db, admin.ID, "admin", Permissions{})

	testCases := []struct {
		name          string
		userID        uint
		flag          Flag
		expectedError error
		expectedRole  uint
	}{
		{name: "no membership", userID: 9, flag: FlagPostAnnouncements, expectedError: apperr.ErrAccessDenied},
		{name: "pending despite role elsewhere", userID: 1, flag: FlagPostAnnouncements, expectedError: apperr.ErrAccessDenied},
		{name: "member without role", userID: 2, flag: FlagPostAnnouncements, expectedError: apperr.ErrAccessDenied},
		{name: "member without role any flag", userID: 2, expectedError: apperr.ErrAccessDenied},
		{name: "officer lacking flag", userID: 3, flag: FlagApproveMembers, expectedError: apperr.ErrAccessDenied},
		{name: "officer any role returns oldest", userID: 3, expectedRole: planner.ID},
		{name: "officer returns granting role", userID: 3, flag: FlagPostAnnouncements, expectedRole: publicist.ID},
		{name: "officer events", userID: 3, flag: FlagCreateEvents, expectedRole: planner.ID},
		{name: "admin override", userID: 4, flag: FlagAssignRoles, expectedRole: adminRole.ID},
		{name: "unknown flag", userID: 4, flag: Flag("can_fly"), expectedError: apperr.ErrInvalidInput},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			roleID, err := s.AuthorizeContentCreation(ctx, tc.userID, 1, tc.flag)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Zero(t, roleID)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedRole, roleID)
		})
	}
}
