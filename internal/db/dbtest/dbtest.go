// Package dbtest provides a migrated in-memory database for tests.
package dbtest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campushub/campushub/internal/config"
	"github.com/campushub/campushub/internal/db/engine"
)

// New opens an in-memory sqlite database and migrates every model.
// The pool is limited to one connection since every sqlite :memory:
// connection is a database of its own.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		DB: config.DB{
			GormEngine:   config.EngineSQLite,
			Name:         ":memory:",
			MaxOpenConns: 1,
			LogLevel:     "silent",
		},
	}

	db, err := engine.Open(cfg)
	require.NoError(t, err, "failed to create test database")

	require.NoError(t, engine.Migrate(db), "failed to migrate test database")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}
