// Package event provides store operations for events.
package event

import (
	"gorm.io/gorm"

	"github.com/campushub/campushub/internal/db/controller"
	"github.com/campushub/campushub/internal/db/models"
)

// Insert creates e and fills in its generated ID.
func Insert(db *gorm.DB, e *models.Event) error {
	if db == nil {
		return controller.ErrDBNil
	}

	return db.Create(e).Error
}

// ListByOrg returns the events of orgID in date order.
func ListByOrg(db *gorm.DB, orgID uint) ([]models.Event, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	events := []models.Event{}
	if err := db.Where("org_id = ?", orgID).Order("event_date, id").Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}

// DeleteByOrg removes every event of orgID.
func DeleteByOrg(db *gorm.DB, orgID uint) (int64, error) {
	if db == nil {
		return 0, controller.ErrDBNil
	}

	result := db.Where("org_id = ?", orgID).Delete(&models.Event{})

	return result.RowsAffected, result.Error
}
