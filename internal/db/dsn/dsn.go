// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/campushub/campushub/internal/config"
)

// Create builds the Data Source Name for the configured gorm engine.
func Create(dbCfg *config.DB) string {
	switch dbCfg.GormEngine {
	case config.EngineMySQL:
		return MySQL(dbCfg)
	case config.EnginePostgres:
		return Postgres(dbCfg)
	default:
		return SQLite(dbCfg)
	}
}

// MySQL builds a go-sql-driver/mysql DSN. Extras is appended as query string.
func MySQL(dbCfg *config.DB) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.Name,
		dbCfg.Extras,
	)
}

// Postgres builds a key/value pgx DSN. Extras is appended verbatim, e.g. "sslmode=disable".
func Postgres(dbCfg *config.DB) string {
	out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Name,
	)

	if dbCfg.Extras != "" {
		out += " " + dbCfg.Extras
	}

	return out
}

// SQLite returns the database file. Extras is appended as query string.
func SQLite(dbCfg *config.DB) string {
	if dbCfg.Extras == "" {
		return dbCfg.Name
	}

	sep := "?"
	if strings.Contains(dbCfg.Name, "?") {
		sep = "&"
	}

	return dbCfg.Name + sep + dbCfg.Extras
}
