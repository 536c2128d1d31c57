package models

import "time"

// Announcement is a message posted to an organization by one of its officers.
type Announcement struct {
	// ID is the unique identifier for the announcement.
	ID uint `gorm:"primaryKey"`
	// OrgID references the organization.
	OrgID uint `gorm:"not null;index"`
	// CreatedBy references the OfficerRole the author acted under, not the user.
	CreatedBy uint `gorm:"not null;index"`
	// Title is the headline.
	Title string `gorm:"size:200;not null"`
	// Content is the body text.
	Content string `gorm:"type:text;not null"`
	// DatePosted is when the announcement was published.
	DatePosted time.Time `gorm:"not null"`
}

// TableName specifies the database table name for the Announcement model.
func (Announcement) TableName() string {
	return "announcements"
}
