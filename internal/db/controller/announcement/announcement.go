// Package announcement provides store operations for announcements.
package announcement

import (
	"gorm.io/gorm"

	"github.com/campushub/campushub/internal/db/controller"
	"github.com/campushub/campushub/internal/db/models"
)

// Insert creates a and fills in its generated ID.
func Insert(db *gorm.DB, a *models.Announcement) error {
	if db == nil {
		return controller.ErrDBNil
	}

	return db.Create(a).Error
}

// ListByOrg returns the announcements of orgID, newest first.
func ListByOrg(db *gorm.DB, orgID uint) ([]models.Announcement, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	announcements := []models.Announcement{}

	err := db.Where("org_id = ?", orgID).
		Order("date_posted DESC, id DESC").
		Find(&announcements).Error
	if err != nil {
		return nil, err
	}

	return announcements, nil
}

// DeleteByOrg removes every announcement of orgID.
func DeleteByOrg(db *gorm.DB, orgID uint) (int64, error) {
	if db == nil {
		return 0, controller.ErrDBNil
	}

	result := db.Where("org_id = ?", orgID).Delete(&models.Announcement{})

	return result.RowsAffected, result.Error
}
