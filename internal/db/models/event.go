package models

import "time"

// Event is a scheduled activity of an organization.
type Event struct {
	ID          uint      `gorm:"primaryKey"`
	OrgID       uint      `gorm:"not null;index"`
	CreatedBy   uint      `gorm:"not null;index"` // OfficerRole ID
	EventName   string    `gorm:"size:200;not null"`
	Description string    `gorm:"type:text"`
	EventDate   time.Time `gorm:"not null"`
	Location    string    `gorm:"size:200"`
}

// TableName specifies the database table name for the Event model.
func (Event) TableName() string {
	return "events"
}
