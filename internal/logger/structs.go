package logger

// Console implements a console based logger.
type Console struct {
	Enabled          bool `toml:"enabled" mapstructure:"enabled"`
	UseConsoleWriter bool
}

// LogFile implements a file based logger.
type LogFile struct {
	Enabled bool   `toml:"enabled" mapstructure:"enabled"`
	Path    string `toml:"path" mapstructure:"path"`

	ErrorLog        string `toml:"error" mapstructure:"error"`
	ErrorMaxSize    int    `toml:"errorMaxSize" mapstructure:"errorMaxSize"`
	ErrorMaxBackups int    `toml:"errorMaxBackups" mapstructure:"errorMaxBackups"`
	ErrorMaxAge     int    `toml:"errorMaxAge" mapstructure:"errorMaxAge"`

	InfoLog        string `toml:"info" mapstructure:"info"`
	InfoMaxSize    int    `toml:"infoMaxSize" mapstructure:"infoMaxSize"`
	InfoMaxBackups int    `toml:"infoMaxBackups" mapstructure:"infoMaxBackups"`
	InfoMaxAge     int    `toml:"infoMaxAge" mapstructure:"infoMaxAge"`

	TraceLog        string `toml:"trace" mapstructure:"trace"`
	TraceMaxSize    int    `toml:"traceMaxSize" mapstructure:"traceMaxSize"`
	TraceMaxBackups int    `toml:"traceMaxBackups" mapstructure:"traceMaxBackups"`
	TraceMaxAge     int    `toml:"traceMaxAge" mapstructure:"traceMaxAge"`

	WarnLog        string `toml:"warn" mapstructure:"warn"`
	WarnMaxSize    int    `toml:"warnMaxSize" mapstructure:"warnMaxSize"`
	WarnMaxBackups int    `toml:"warnMaxBackups" mapstructure:"warnMaxBackups"`
	WarnMaxAge     int    `toml:"warnMaxAge" mapstructure:"warnMaxAge"`

	// SQL statements traced by the gorm adapter.
	SQLLog        string `toml:"sql" mapstructure:"sql"`
	SQLMaxSize    int    `toml:"sqlMaxSize" mapstructure:"sqlMaxSize"`
	SQLMaxBackups int    `toml:"sqlMaxBackups" mapstructure:"sqlMaxBackups"`
	SQLMaxAge     int    `toml:"sqlMaxAge" mapstructure:"sqlMaxAge"`
}

// Log implements the logger config.
type Log struct {
	LogLevel string // trace, debug, info, warn, error.
	LogEnv   string

	// EnableSQLLogToConsole if true the gorm adapter also writes its sql trace to the console.
	// Does not overrule flag Console.Enabled!
	EnableSQLLogToConsole bool
	ReportCaller          bool

	AppName     string
	ServiceName string

	// Console used mainly for docker and dev.
	Console Console

	// File based logging with rotation.
	File LogFile `toml:"file" mapstructure:"file"`
}
