// Package engine opens and migrates the gorm database selected by the config.
package engine

import (
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/campushub/campushub/internal/config"
	"github.com/campushub/campushub/internal/db/dsn"
	"github.com/campushub/campushub/internal/db/models"
	gormadapter "github.com/campushub/campushub/internal/logger/adapter/gorm"
)

// Dialector returns the gorm dialector for cfg.DB.GormEngine.
func Dialector(cfg *config.DB) (gorm.Dialector, error) {
	switch cfg.GormEngine {
	case config.EngineSQLite:
		return sqlite.Open(dsn.SQLite(cfg)), nil
	case config.EngineMySQL:
		return mysql.Open(dsn.MySQL(cfg)), nil
	case config.EnginePostgres:
		return postgres.Open(dsn.Postgres(cfg)), nil
	default:
		return nil, errors.Wrap(config.ErrUnsupportedGormEngine, cfg.GormEngine)
	}
}

// GormConfig returns the gorm settings shared by every engine: zerolog
// backed logging and driver error translation, so unique violations
// surface as gorm.ErrDuplicatedKey.
func GormConfig(cfg *config.Config) *gorm.Config {
	return &gorm.Config{
		Logger: gormadapter.New(gormadapter.Config{
			Config:                    cfg.Log,
			Level:                     cfg.DB.LogLevel,
			SlowThreshold:             time.Duration(cfg.DB.SlowThreshold) * time.Millisecond,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	}
}

// Open connects to the configured database.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(&cfg.DB)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, GormConfig(cfg))
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if cfg.DB.MaxOpenConns > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Wrap(err, "failed to access database pool")
		}

		sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}

	return db, nil
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	return nil
}
