package models

import "time"

// OfficerRole is a named, permission-bearing role held through a Membership.
// A membership may hold several roles. Rows are never edited in place,
// reassignment inserts a new row.
type OfficerRole struct {
	// ID is the unique identifier for the role. Announcements and events reference it as CreatedBy.
	ID uint `gorm:"primaryKey"`
	// MembershipID references the membership holding the role.
	MembershipID uint `gorm:"not null;index"`
	// RoleName is the display name, e.g. "President". "admin" in any case grants every permission.
	RoleName string `gorm:"size:50;not null"`
	// RoleStart is when the role was assigned.
	RoleStart time.Time `gorm:"not null"`
	// RoleEnd is when the role ended, nil while ongoing.
	RoleEnd *time.Time
	// CanPostAnnouncements allows posting announcements.
	CanPostAnnouncements bool `gorm:"not null"`
	// CanCreateEvents allows creating events.
	CanCreateEvents bool `gorm:"not null"`
	// CanApproveMembers allows approving and rejecting join requests.
	CanApproveMembers bool `gorm:"not null"`
	// CanAssignRoles allows assigning officer roles and deleting the organization.
	CanAssignRoles bool `gorm:"not null"`
}

// TableName specifies the database table name for the OfficerRole model.
func (OfficerRole) TableName() string {
	return "officer_roles"
}
