// Package setting provides CRUD operations for named settings.
package setting

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/campushub/campushub/internal/db/controller"
	"github.com/campushub/campushub/internal/db/models"
)

const (
	nameQueryPattern = "name = ?"
)

var (
	// ErrSettingNotFound is returned when a setting is not found.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrSettingNameEmpty is returned when attempting to create/update a setting with an empty name.
	ErrSettingNameEmpty = errors.New("setting name cannot be empty")
	// ErrSettingAlreadyExists is returned when attempting to create a setting that already exists.
	ErrSettingAlreadyExists = errors.New("setting already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = controller.ErrDBNil
)

// Get retrieves a setting by its name.
func Get(db *gorm.DB, name string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if name == "" {
		return nil, ErrSettingNameEmpty
	}

	var setting models.Setting

	if err := db.Where(nameQueryPattern, name).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}

		return nil, err
	}

	return &setting, nil
}

// Create inserts a new setting. The unique name index rejects duplicates.
func Create(db *gorm.DB, name string, value []byte) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if name == "" {
		return nil, ErrSettingNameEmpty
	}

	setting := &models.Setting{
		Name:  name,
		Value: value,
	}

	if err := db.Create(setting).Error; err != nil {
		if controller.IsDuplicateKey(err) {
			return nil, ErrSettingAlreadyExists
		}

		return nil, err
	}

	return setting, nil
}

// Set creates or updates a setting by name (upsert operation).
func Set(db *gorm.DB, name string, value []byte) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	setting, err := Get(db, name)
	if errors.Is(err, ErrSettingNotFound) {
		return Create(db, name, value)
	}

	if err != nil {
		return nil, err
	}

	setting.Value = value
	if err := db.Save(setting).Error; err != nil {
		return nil, err
	}

	return setting, nil
}

// SetJSON stores v encoded as JSON under name.
func SetJSON(db *gorm.DB, name string, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode setting %s: %w", name, err)
	}

	_, err = Set(db, name, value)

	return err
}

// GetJSON decodes the setting stored under name into v.
func GetJSON(db *gorm.DB, name string, v any) error {
	setting, err := Get(db, name)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(setting.Value, v); err != nil {
		return fmt.Errorf("failed to decode setting %s: %w", name, err)
	}

	return nil
}
