package gorm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

type entry struct {
	Level   string `json:"level"`
	Message string `json:"message"`
	SQL     string `json:"sql"`
	Rows    int64  `json:"rows"`
	Error   string `json:"error"`
}

func newBufferLogger(level gormlogger.LogLevel, slow time.Duration, ignore bool) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer

	return &Logger{
		zl:     zerolog.New(&buf),
		level:  level,
		slow:   slow,
		ignore: ignore,
	}, &buf
}

func decode(t *testing.T, buf *bytes.Buffer) *entry {
	t.Helper()

	if buf.Len() == 0 {
		return nil
	}

	var e entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &e))

	return &e
}

func TestParseLevel(t *testing.T) {
	testCases := map[string]gormlogger.LogLevel{
		"silent": gormlogger.Silent,
		"ERROR":  gormlogger.Error,
		"warn":   gormlogger.Warn,
		"info":   gormlogger.Info,
		"":       gormlogger.Warn,
		"bogus":  gormlogger.Warn,
	}

	for in, want := range testCases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestTrace(t *testing.T) {
	sqlFunc := func() (string, int64) { return "SELECT * FROM memberships", 2 }

	testCases := []struct {
		name      string
		level     gormlogger.LogLevel
		slow      time.Duration
		ignore    bool
		begin     time.Time
		err       error
		wantLevel string
		wantMsg   string
	}{
		{
			name:  "silent drops everything",
			level: gormlogger.Silent,
			begin: time.Now(),
			err:   errors.New("boom"),
		},
		{
			name:      "error is logged",
			level:     gormlogger.Error,
			begin:     time.Now(),
			err:       errors.New("boom"),
			wantLevel: "error",
			wantMsg:   "query failed",
		},
		{
			name:   "record not found ignored",
			level:  gormlogger.Error,
			ignore: true,
			begin:  time.Now(),
			err:    gormlogger.ErrRecordNotFound,
		},
		{
			name:      "slow query warns",
			level:     gormlogger.Warn,
			slow:      time.Millisecond,
			begin:     time.Now().Add(-time.Second),
			wantLevel: "warn",
			wantMsg:   "slow query",
		},
		{
			name:  "fast query at warn is quiet",
			level: gormlogger.Warn,
			slow:  time.Minute,
			begin: time.Now(),
		},
		{
			name:      "info traces every query",
			level:     gormlogger.Info,
			begin:     time.Now(),
			wantLevel: "info",
			wantMsg:   "query",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l, buf := newBufferLogger(tc.level, tc.slow, tc.ignore)

			l.Trace(context.Background(), tc.begin, sqlFunc, tc.err)

			e := decode(t, buf)
			if tc.wantLevel == "" {
				assert.Nil(t, e)
				return
			}

			require.NotNil(t, e)
			assert.Equal(t, tc.wantLevel, e.Level)
			assert.Equal(t, tc.wantMsg, e.Message)
			assert.Equal(t, "SELECT * FROM memberships", e.SQL)
			assert.Equal(t, int64(2), e.Rows)
		})
	}
}

func TestLogMode(t *testing.T) {
	l, buf := newBufferLogger(gormlogger.Silent, 0, false)

	loud := l.LogMode(gormlogger.Info)
	loud.Info(context.Background(), "migrated %d tables", 6)

	e := decode(t, buf)
	require.NotNil(t, e)
	assert.Equal(t, "migrated 6 tables", e.Message)

	// the receiver keeps its level
	buf.Reset()
	l.Info(context.Background(), "quiet")
	assert.Zero(t, buf.Len())
}
