// Package user provides store operations for users.
package user

import (
	"errors"

	"gorm.io/gorm"

	"github.com/campushub/campushub/internal/db/controller"
	"github.com/campushub/campushub/internal/db/models"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when the email is already registered.
	ErrUserExists = errors.New("user with email already exists")
)

// Get retrieves a user by ID.
func Get(db *gorm.DB, id uint) (*models.User, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var u models.User

	if err := db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return &u, nil
}

// GetByEmail retrieves a user by email address.
func GetByEmail(db *gorm.DB, email string) (*models.User, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var u models.User

	if err := db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return &u, nil
}

// Exists reports whether a user with id exists.
func Exists(db *gorm.DB, id uint) (bool, error) {
	if db == nil {
		return false, controller.ErrDBNil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// Insert creates u. A set ID is kept, which the csv import relies on.
func Insert(db *gorm.DB, u *models.User) error {
	if db == nil {
		return controller.ErrDBNil
	}

	if err := db.Create(u).Error; err != nil {
		if controller.IsDuplicateKey(err) {
			return ErrUserExists
		}

		return err
	}

	return nil
}

// List returns all users ordered by last and first name.
func List(db *gorm.DB) ([]models.User, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	users := []models.User{}
	if err := db.Order("last_name, first_name, id").Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}
