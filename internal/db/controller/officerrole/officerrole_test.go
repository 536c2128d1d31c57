package officerrole

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campushub/campushub/internal/db/dbtest"
	"github.com/campushub/campushub/internal/db/models"
)

type fixture struct {
	user       models.User
	membership models.Membership
	role       models.OfficerRole
}

func seedChain(t *testing.T, db *gorm.DB, email string, orgID uint) fixture {
	t.Helper()

	f := fixture{user: models.User{FirstName: "Ada", LastName: "Lovelace", Email: email}}
	require.NoError(t, db.Create(&f.user).Error)

	f.membership = models.Membership{
		UserID:      f.user.ID,
		OrgID:       orgID,
		Status:      models.MembershipApproved,
		DateApplied: time.Now(),
	}
	require.NoError(t, db.Create(&f.membership).Error)

	f.role = models.OfficerRole{MembershipID: f.membership.ID, RoleName: "President", RoleStart: time.Now()}
	require.NoError(t, Insert(db, &f.role))

	return f
}

func TestListAndFindByMembership(t *testing.T) {
	db := dbtest.New(t)
	f := seedChain(t, db, "ada@example.edu", 1)

	second := models.OfficerRole{MembershipID: f.membership.ID, RoleName: "Treasurer", RoleStart: time.Now()}
	require.NoError(t, Insert(db, &second))

	roles, err := ListByMembership(db, f.membership.ID)
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, "President", roles[0].RoleName)

	first, err := FindByMembership(db, f.membership.ID)
	require.NoError(t, err)
	assert.Equal(t, f.role.ID, first.ID)

	_, err = FindByMembership(db, 999)
	require.ErrorIs(t, err, ErrOfficerRoleNotFound)

	_, err = Get(db, 999)
	require.ErrorIs(t, err, ErrOfficerRoleNotFound)
}

func TestResolveCreator(t *testing.T) {
	db := dbtest.New(t)
	f := seedChain(t, db, "ada@example.edu", 1)

	creator, err := ResolveCreator(db, f.role.ID)
	require.NoError(t, err)
	assert.Equal(t, f.role.ID, creator.OfficerRoleID)
	assert.Equal(t, f.membership.ID, creator.MembershipID)
	assert.Equal(t, f.user.ID, creator.UserID)
	assert.Equal(t, "Ada", creator.FirstName)
	assert.Equal(t, "Lovelace", creator.LastName)

	testCases := []struct {
		name  string
		breakChain func(t *testing.T, f fixture)
	}{
		{
			name: "user deleted",
			breakChain: func(t *testing.T, f fixture) {
				require.NoError(t, db.Delete(&models.User{}, f.user.ID).Error)
			},
		},
		{
			name: "membership deleted",
			breakChain: func(t *testing.T, f fixture) {
				require.NoError(t, db.Delete(&models.Membership{}, f.membership.ID).Error)
			},
		},
		{
			name:       "role missing",
			breakChain: func(_ *testing.T, _ fixture) {},
		},
	}

	for i, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			chain := seedChain(t, db, tc.name+"@example.edu", uint(10+i))
			roleID := chain.role.ID

			if tc.name == "role missing" {
				roleID = 9999
			}

			tc.breakChain(t, chain)

			creator, err := ResolveCreator(db, roleID)
			require.ErrorIs(t, err, ErrCreatorNotFound)
			assert.Nil(t, creator)
		})
	}
}

func TestDeleteByOrgAndMembership(t *testing.T) {
	db := dbtest.New(t)

	inOrg := seedChain(t, db, "a@example.edu", 1)
	other := seedChain(t, db, "b@example.edu", 2)

	require.NoError(t, Insert(db, &models.OfficerRole{MembershipID: inOrg.membership.ID, RoleName: "Admin", RoleStart: time.Now()}))

	n, err := DeleteByOrg(db, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	roles, err := ListByMembership(db, other.membership.ID)
	require.NoError(t, err)
	assert.Len(t, roles, 1)

	n, err = DeleteByMembership(db, other.membership.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
