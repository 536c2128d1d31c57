package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// User represents a person who can join organizations.
// Users are never attached to an organization directly, only through a Membership.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`
	// FirstName is the user's first or given name.
	FirstName string `gorm:"size:80;not null"`
	// LastName is the user's last or family name.
	LastName string `gorm:"size:80;not null"`
	// Email is the unique login address of the user.
	Email string `gorm:"uniqueIndex;size:120;not null"`
	// Password is the Argon2id hash of the user's password.
	Password string `gorm:"size:255" json:"-" toml:"-"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "users"
}

// FullName returns first and last name separated by a space.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// HashPassword hashes a plaintext password using Argon2id with the default parameters.
func HashPassword(password string) (string, error) {
	return argon2id.CreateHash(password, argon2id.DefaultParams) //nolint:wrapcheck
}

// VerifyPassword compares a plaintext password against the stored hash.
func (u *User) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, u.Password)
	if err != nil {
		log.Error().Err(err).Uint("user_id", u.ID).Msg("failed to verify password")
		return false
	}

	return match
}
