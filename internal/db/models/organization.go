package models

import "time"

// Organization is a campus club or society.
// It owns its memberships, announcements and events: deleting it removes them.
type Organization struct {
	// ID is the unique identifier for the organization.
	ID uint `gorm:"primaryKey"`
	// Name is the unique display name.
	Name string `gorm:"uniqueIndex;size:120;not null"`
	// Description is a free text description.
	Description string `gorm:"type:text"`
	// ContactEmail is an optional public contact address.
	ContactEmail string `gorm:"size:120"`
	// CreatedAt is the timestamp when the organization was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the organization was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Organization model.
func (Organization) TableName() string {
	return "organizations"
}
