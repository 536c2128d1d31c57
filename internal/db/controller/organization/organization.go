// Package organization provides store operations for organizations.
package organization

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/campushub/campushub/internal/db/controller"
	"github.com/campushub/campushub/internal/db/models"
)

var (
	// ErrOrganizationNotFound is returned when an organization is not found.
	ErrOrganizationNotFound = errors.New("organization not found")
	// ErrOrganizationExists is returned when the name is already taken.
	ErrOrganizationExists = errors.New("organization with name already exists")
)

// Get retrieves an organization by ID.
func Get(db *gorm.DB, id uint) (*models.Organization, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var org models.Organization

	if err := db.First(&org, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}

		return nil, err
	}

	return &org, nil
}

// GetByName retrieves an organization by its exact name.
func GetByName(db *gorm.DB, name string) (*models.Organization, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var org models.Organization

	if err := db.Where("name = ?", name).First(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}

		return nil, err
	}

	return &org, nil
}

// Exists reports whether an organization with id exists.
func Exists(db *gorm.DB, id uint) (bool, error) {
	if db == nil {
		return false, controller.ErrDBNil
	}

	var count int64
	if err := db.Model(&models.Organization{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// Insert creates org. A set ID is kept.
func Insert(db *gorm.DB, org *models.Organization) error {
	if db == nil {
		return controller.ErrDBNil
	}

	if err := db.Create(org).Error; err != nil {
		if controller.IsDuplicateKey(err) {
			return ErrOrganizationExists
		}

		return err
	}

	return nil
}

// Save writes all fields of an existing organization.
func Save(db *gorm.DB, org *models.Organization) error {
	if db == nil {
		return controller.ErrDBNil
	}

	if err := db.Save(org).Error; err != nil {
		if controller.IsDuplicateKey(err) {
			return ErrOrganizationExists
		}

		return err
	}

	return nil
}

// likeEscaper escapes LIKE wildcards with '!', which no engine treats specially.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_") //nolint:gochecknoglobals

// List returns the organizations whose name or description contains query,
// ignoring case, sorted by name. An empty query returns every organization.
func List(db *gorm.DB, query string) ([]models.Organization, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	tx := db.Order("LOWER(name), id")

	if query = strings.TrimSpace(query); query != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
		tx = tx.Where("LOWER(name) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!'", pattern, pattern)
	}

	orgs := []models.Organization{}
	if err := tx.Find(&orgs).Error; err != nil {
		return nil, err
	}

	return orgs, nil
}

// Delete removes the organization row only. Dependent rows must be gone already.
func Delete(db *gorm.DB, id uint) (int64, error) {
	if db == nil {
		return 0, controller.ErrDBNil
	}

	result := db.Where("id = ?", id).Delete(&models.Organization{})

	return result.RowsAffected, result.Error
}
