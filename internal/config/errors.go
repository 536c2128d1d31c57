package config

import (
	"errors"
)

var (
	// ErrEmptyGormEngine error if config db.gormEngine is empty.
	ErrEmptyGormEngine = errors.New("toml config db.gormEngine can not be empty")

	// ErrUnsupportedGormEngine error if config db.gormEngine is not one of sqlite, mysql or postgres.
	ErrUnsupportedGormEngine = errors.New("toml config db.gormEngine must be sqlite, mysql or postgres")

	// ErrEmptyDBName error if config db.name is empty.
	ErrEmptyDBName = errors.New("toml config db.name can not be empty")
)
