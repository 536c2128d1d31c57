package config

import (
	"github.com/campushub/campushub/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode    bool // enable dev mode for development
	DB         DB
	Log        logger.Log
	Title      string
	Membership Membership
	Seed       Seed
}

// Membership holds the join request policy.
type Membership struct {
	// StrictJoin rejects a second join request for a pending or approved
	// membership instead of returning the existing one.
	StrictJoin bool
}

// Seed holds the csv import settings.
type Seed struct {
	DataPath        string // directory holding the csv files
	DefaultPassword string // password given to imported users, random if empty
	OnStart         bool   // import on start when the database holds no users
}
