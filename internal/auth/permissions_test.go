package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campushub/internal/apperr"
	"github.com/campushub/campushub/internal/db/models"
)

func TestIsAdminRole(t *testing.T) {
	testCases := map[string]bool{
		"admin":         true,
		"Admin":         true,
		"ADMIN":         true,
		"aDmIn":         true,
		"administrator": false,
		"Admin ":        false,
		"President":     false,
		"":              false,
	}

	for name, want := range testCases {
		assert.Equal(t, want, IsAdminRole(name), name)
	}
}

func TestAggregate(t *testing.T) {
	testCases := []struct {
		name  string
		roles []models.OfficerRole
		want  Permissions
	}{
		{
			name: "no roles",
			want: Permissions{},
		},
		{
			name: "union not intersection",
			roles: []models.OfficerRole{
				{RoleName: "Publicist", CanPostAnnouncements: true},
				{RoleName: "Planner", CanCreateEvents: true},
			},
			want: Permissions{CanPostAnnouncements: true, CanCreateEvents: true},
		},
		{
			name: "admin overrides stored flags",
			roles: []models.OfficerRole{
				{RoleName: "Member"},
				{RoleName: "ADMIN"},
			},
			want: AllPermissions(),
		},
		{
			name: "admin with every stored flag false",
			roles: []models.OfficerRole{
				{RoleName: "admin"},
			},
			want: AllPermissions(),
		},
		{
			name: "duplicate roles tolerated",
			roles: []models.OfficerRole{
				{RoleName: "Member", CanApproveMembers: true},
				{RoleName: "Member", CanApproveMembers: true},
				{RoleName: "Secretary", CanAssignRoles: true},
			},
			want: Permissions{CanApproveMembers: true, CanAssignRoles: true},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Aggregate(tc.roles))

			reversed := make([]models.OfficerRole, len(tc.roles))
			for i, r := range tc.roles {
				reversed[len(tc.roles)-1-i] = r
			}

			assert.Equal(t, tc.want, Aggregate(reversed), "order independent")
		})
	}
}

func TestPermissionsHas(t *testing.T) {
	p := Permissions{CanCreateEvents: true}

	assert.True(t, p.Has(FlagCreateEvents))
	assert.False(t, p.Has(FlagPostAnnouncements))
	assert.False(t, AllPermissions().Has(Flag("can_fly")))

	for _, f := range Flags() {
		assert.True(t, AllPermissions().Has(f), f)
	}
}

func TestParseFlag(t *testing.T) {
	f, err := ParseFlag(" CAN_ASSIGN_ROLES ")
	require.NoError(t, err)
	assert.Equal(t, FlagAssignRoles, f)

	_, err = ParseFlag("can_fly")
	require.ErrorIs(t, err, apperr.ErrInvalidInput)
	require.ErrorIs(t, err, ErrUnknownFlag)
}

func TestParsePermissions(t *testing.T) {
	testCases := []struct {
		name          string
		in            string
		expected      Permissions
		expectedError error
	}{
		{name: "empty", in: "", expected: Permissions{}},
		{name: "single", in: "can_create_events", expected: Permissions{CanCreateEvents: true}},
		{name: "list with blanks", in: " can_post_announcements , ,can_approve_members", expected: Permissions{
			CanPostAnnouncements: true,
			CanApproveMembers:    true,
		}},
		{name: "all", in: "ALL", expected: AllPermissions()},
		{name: "unknown", in: "can_create_events,can_fly", expectedError: apperr.ErrInvalidInput},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := ParsePermissions(tc.in)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, p)
		})
	}
}

func TestGranted(t *testing.T) {
	assert.Empty(t, Permissions{}.Granted())
	assert.Equal(t, Flags(), AllPermissions().Granted())
	assert.Equal(t, []Flag{FlagApproveMembers}, Permissions{}.Grant(FlagApproveMembers).Granted())
	assert.Equal(t, Permissions{}, Permissions{}.Grant(Flag("can_fly")))
}
