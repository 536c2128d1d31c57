// Package gorm routes gorm's sql logging through zerolog.
package gorm

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gormlogger "gorm.io/gorm/logger"

	"github.com/campushub/campushub/internal/logger"
)

// Config of the gorm adapter.
type Config struct {
	// Config of the logger, decides where the sql log goes.
	Config logger.Log

	// Level is one of silent, error, warn, info. Defaults to warn.
	Level string

	// SlowThreshold marks queries taking longer as slow. Zero disables the check.
	SlowThreshold time.Duration

	// IgnoreRecordNotFoundError drops gorm.ErrRecordNotFound from the error log.
	IgnoreRecordNotFoundError bool
}

// Logger implements gorm's logger.Interface on top of zerolog.
type Logger struct {
	zl     zerolog.Logger
	level  gormlogger.LogLevel
	slow   time.Duration
	ignore bool
}

// ParseLevel maps a config string to a gorm log level.
func ParseLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// New creates the adapter. Without a dedicated sql file or console sink the
// global logger is used.
func New(cfg Config) *Logger {
	var writers []io.Writer

	if cfg.Config.File.Enabled && cfg.Config.File.SQLLog != "" {
		if w := logger.NewRollingFile(
			cfg.Config.File.Path,
			cfg.Config.File.SQLLog,
			cfg.Config.File.SQLMaxSize,
			cfg.Config.File.SQLMaxAge,
			cfg.Config.File.SQLMaxBackups,
		); w != nil {
			writers = append(writers, w)
		}
	}

	if cfg.Config.Console.Enabled && cfg.Config.EnableSQLLogToConsole {
		if cfg.Config.Console.UseConsoleWriter {
			writers = append(writers, zerolog.ConsoleWriter{
				Out:        os.Stdout,
				NoColor:    false,
				TimeFormat: zerolog.TimeFieldFormat,
			})
		} else {
			writers = append(writers, os.Stdout)
		}
	}

	zl := log.Logger
	if len(writers) > 0 {
		zl = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	}

	return &Logger{
		zl:     zl.With().Str("component", "gorm").Logger(),
		level:  ParseLevel(cfg.Level),
		slow:   cfg.SlowThreshold,
		ignore: cfg.IgnoreRecordNotFoundError,
	}
}

// LogMode implements logger.Interface.
func (l *Logger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	n := *l
	n.level = level

	return &n
}

// Info implements logger.Interface.
func (l *Logger) Info(_ context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Info {
		l.zl.Info().Msgf(msg, data...)
	}
}

// Warn implements logger.Interface.
func (l *Logger) Warn(_ context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.zl.Warn().Msgf(msg, data...)
	}
}

// Error implements logger.Interface.
func (l *Logger) Error(_ context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Error {
		l.zl.Error().Msgf(msg, data...)
	}
}

// Trace implements logger.Interface.
func (l *Logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && l.level >= gormlogger.Error &&
		(!l.ignore || !errors.Is(err, gormlogger.ErrRecordNotFound)):
		sql, rows := fc()
		l.zl.Error().Err(err).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query failed")
	case l.slow != 0 && elapsed > l.slow && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.zl.Warn().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("slow query")
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.zl.Info().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query")
	}
}
