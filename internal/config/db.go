package config

// Supported values of DB.GormEngine.
const (
	EngineSQLite   = "sqlite"
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
)

// DB holds the database configuration settings.
// For sqlite, Name is the database file path (or ":memory:").
type DB struct {
	Extras        string
	Host          string
	Port          int
	User          string
	Password      string
	Name          string
	GormEngine    string
	MaxOpenConns  int    // 0 keeps the driver default
	LogLevel      string // gorm log level: silent, error, warn, info
	SlowThreshold int    // milliseconds before a query is logged as slow
}
