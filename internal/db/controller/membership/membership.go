// Package membership provides store operations for memberships.
package membership

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/campushub/campushub/internal/db/controller"
	"github.com/campushub/campushub/internal/db/models"
)

const whereUserOrg = "user_id = ? AND org_id = ?"

var (
	// ErrMembershipNotFound is returned when a membership is not found.
	ErrMembershipNotFound = errors.New("membership not found")
	// ErrMembershipExists is returned when the user already has a membership row for the organization.
	ErrMembershipExists = errors.New("membership already exists")
)

// Find returns the membership of userID in orgID, whatever its status.
func Find(db *gorm.DB, userID, orgID uint) (*models.Membership, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var m models.Membership

	if err := db.Where(whereUserOrg, userID, orgID).Order("id").First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMembershipNotFound
		}

		return nil, err
	}

	return &m, nil
}

// FindApproved returns the membership of userID in orgID only if it is Approved.
func FindApproved(db *gorm.DB, userID, orgID uint) (*models.Membership, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var m models.Membership

	err := db.Where(whereUserOrg+" AND status = ?", userID, orgID, models.MembershipApproved).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMembershipNotFound
		}

		return nil, err
	}

	return &m, nil
}

// Get retrieves a membership by ID.
func Get(db *gorm.DB, id uint) (*models.Membership, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var m models.Membership

	if err := db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMembershipNotFound
		}

		return nil, err
	}

	return &m, nil
}

// Insert creates m and fills in its generated ID.
func Insert(db *gorm.DB, m *models.Membership) error {
	if db == nil {
		return controller.ErrDBNil
	}

	if err := db.Create(m).Error; err != nil {
		if controller.IsDuplicateKey(err) {
			return ErrMembershipExists
		}

		return err
	}

	return nil
}

// UpdateStatus sets status and date_approved of membership id.
func UpdateStatus(db *gorm.DB, id uint, status models.MembershipStatus, approvedAt *time.Time) error {
	if db == nil {
		return controller.ErrDBNil
	}

	result := db.Model(&models.Membership{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        status,
			"date_approved": approvedAt,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrMembershipNotFound
	}

	return nil
}

// Delete removes membership id.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return controller.ErrDBNil
	}

	result := db.Where("id = ?", id).Delete(&models.Membership{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrMembershipNotFound
	}

	return nil
}

// List returns the memberships of orgID, or of every organization if orgID is nil.
func List(db *gorm.DB, orgID *uint) ([]models.Membership, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	query := db.Model(&models.Membership{})
	if orgID != nil {
		query = query.Where("org_id = ?", *orgID)
	}

	memberships := []models.Membership{}
	if err := query.Order("id").Find(&memberships).Error; err != nil {
		return nil, err
	}

	return memberships, nil
}

// ListByStatus returns the memberships of orgID with the given status.
func ListByStatus(db *gorm.DB, orgID uint, status models.MembershipStatus) ([]models.Membership, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	memberships := []models.Membership{}

	err := db.Where("org_id = ? AND status = ?", orgID, status).
		Order("date_applied, id").
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}

	return memberships, nil
}

// DeleteByOrg removes every membership of orgID and returns how many were removed.
func DeleteByOrg(db *gorm.DB, orgID uint) (int64, error) {
	if db == nil {
		return 0, controller.ErrDBNil
	}

	result := db.Where("org_id = ?", orgID).Delete(&models.Membership{})

	return result.RowsAffected, result.Error
}
