package models

import "time"

// MembershipStatus is the approval state of a Membership.
type MembershipStatus string

const (
	// MembershipPending is a join request waiting for review.
	MembershipPending MembershipStatus = "Pending"
	// MembershipApproved is an accepted member.
	MembershipApproved MembershipStatus = "Approved"
	// MembershipRejected is a refused join request. Rejected rows are removed
	// by the lifecycle manager, the value only shows up in imported data and
	// in the result of a rejection.
	MembershipRejected MembershipStatus = "Rejected"
)

// Valid reports whether s is one of the known statuses.
func (s MembershipStatus) Valid() bool {
	switch s {
	case MembershipPending, MembershipApproved, MembershipRejected:
		return true
	default:
		return false
	}
}

// Membership binds one User to one Organization.
// The (user_id, org_id) pair is unique so a racing duplicate join fails at the store.
type Membership struct {
	// ID is the unique identifier for the membership.
	ID uint `gorm:"primaryKey"`
	// UserID references the member.
	UserID uint `gorm:"not null;uniqueIndex:idx_memberships_user_org"`
	// OrgID references the organization.
	OrgID uint `gorm:"not null;uniqueIndex:idx_memberships_user_org;index"`
	// Status is Pending, Approved or Rejected.
	Status MembershipStatus `gorm:"type:varchar(20);not null"`
	// DateApplied is set when the membership is created.
	DateApplied time.Time `gorm:"not null"`
	// DateApproved is set on approval and nil otherwise.
	DateApproved *time.Time
	// CreatedAt is the timestamp when the row was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the row was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Membership model.
func (Membership) TableName() string {
	return "memberships"
}
