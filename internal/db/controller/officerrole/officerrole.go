// Package officerrole provides store operations for officer roles,
// including the officer role -> membership -> user creator lookup.
package officerrole

import (
	"errors"

	"gorm.io/gorm"

	"github.com/campushub/campushub/internal/db/controller"
	"github.com/campushub/campushub/internal/db/models"
)

var (
	// ErrOfficerRoleNotFound is returned when no officer role matches.
	ErrOfficerRoleNotFound = errors.New("officer role not found")
	// ErrCreatorNotFound is returned when the officer role -> membership -> user chain is broken.
	ErrCreatorNotFound = errors.New("creator not found")
)

// Creator is the user behind an officer role.
type Creator struct {
	OfficerRoleID uint
	MembershipID  uint
	UserID        uint
	FirstName     string
	LastName      string
}

// Insert creates r and fills in its generated ID.
func Insert(db *gorm.DB, r *models.OfficerRole) error {
	if db == nil {
		return controller.ErrDBNil
	}

	return db.Create(r).Error
}

// Get retrieves an officer role by ID.
func Get(db *gorm.DB, id uint) (*models.OfficerRole, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var r models.OfficerRole

	if err := db.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfficerRoleNotFound
		}

		return nil, err
	}

	return &r, nil
}

// ListByMembership returns every role of membershipID, oldest first.
func ListByMembership(db *gorm.DB, membershipID uint) ([]models.OfficerRole, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	roles := []models.OfficerRole{}
	if err := db.Where("membership_id = ?", membershipID).Order("id").Find(&roles).Error; err != nil {
		return nil, err
	}

	return roles, nil
}

// FindByMembership returns the oldest role of membershipID.
func FindByMembership(db *gorm.DB, membershipID uint) (*models.OfficerRole, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var r models.OfficerRole

	if err := db.Where("membership_id = ?", membershipID).Order("id").First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfficerRoleNotFound
		}

		return nil, err
	}

	return &r, nil
}

// DeleteByMembership removes every role of membershipID.
func DeleteByMembership(db *gorm.DB, membershipID uint) (int64, error) {
	if db == nil {
		return 0, controller.ErrDBNil
	}

	result := db.Where("membership_id = ?", membershipID).Delete(&models.OfficerRole{})

	return result.RowsAffected, result.Error
}

// DeleteByOrg removes every role held through a membership of orgID.
func DeleteByOrg(db *gorm.DB, orgID uint) (int64, error) {
	if db == nil {
		return 0, controller.ErrDBNil
	}

	result := db.Where("membership_id IN (?)",
		db.Model(&models.Membership{}).Select("id").Where("org_id = ?", orgID),
	).Delete(&models.OfficerRole{})

	return result.RowsAffected, result.Error
}

// ResolveCreator joins officer_roles -> memberships -> users for officerRoleID.
func ResolveCreator(db *gorm.DB, officerRoleID uint) (*Creator, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var rows []Creator

	err := db.Table("officer_roles").
		Select("officer_roles.id AS officer_role_id, memberships.id AS membership_id, "+
			"users.id AS user_id, users.first_name AS first_name, users.last_name AS last_name").
		Joins("JOIN memberships ON memberships.id = officer_roles.membership_id").
		Joins("JOIN users ON users.id = memberships.user_id").
		Where("officer_roles.id = ?", officerRoleID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, ErrCreatorNotFound
	}

	return &rows[0], nil
}
