// Package daemon wires the database and the campushub services together.
package daemon

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/campushub/campushub/internal/auth"
	"github.com/campushub/campushub/internal/config"
	"github.com/campushub/campushub/internal/content"
	"github.com/campushub/campushub/internal/db/engine"
	"github.com/campushub/campushub/internal/membership"
	"github.com/campushub/campushub/internal/officer"
	"github.com/campushub/campushub/internal/organization"
	"github.com/campushub/campushub/internal/seed"
)

// ErrConfigNil is returned by New when no config is given.
var ErrConfigNil = errors.New("config is nil")

// Daemon holds the open database and every service built on it.
type Daemon struct {
	cfg *config.Config
	db  *gorm.DB

	Auth          *auth.Service
	Users         *auth.LocalProvider
	Memberships   *membership.Manager
	Officers      *officer.Service
	Organizations *organization.Service
	Content       *content.Service
	Seeder        *seed.Importer
}

// New opens and migrates the configured database and builds the services.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	db, err := engine.Open(cfg)
	if err != nil {
		return nil, err
	}

	if err = engine.Migrate(db); err != nil {
		return nil, err
	}

	return NewWithDB(cfg, db), nil
}

// NewWithDB builds the services on an already migrated db.
func NewWithDB(cfg *config.Config, db *gorm.DB) *Daemon {
	authService := auth.NewService(db)
	officerService := officer.NewService(db, authService)

	return &Daemon{
		cfg:           cfg,
		db:            db,
		Auth:          authService,
		Users:         auth.NewLocalProvider(db),
		Memberships:   membership.NewManager(db, authService, membership.WithStrictJoin(cfg.Membership.StrictJoin)),
		Officers:      officerService,
		Organizations: organization.NewService(db, authService, officerService),
		Content:       content.NewService(db, authService, officerService),
		Seeder:        seed.NewImporter(db, cfg.Seed.DataPath, cfg.Seed.DefaultPassword),
	}
}

// DB returns the database handle.
func (d *Daemon) DB() *gorm.DB {
	return d.db
}

// Start seeds an empty database if configured and logs readiness.
func (d *Daemon) Start(ctx context.Context) error {
	if d.cfg.Seed.OnStart {
		if err := d.seedIfEmpty(ctx); err != nil {
			return err
		}
	}

	orgs, err := d.Organizations.List(ctx, "")
	if err != nil {
		return err
	}

	log.Info().
		Str("title", d.cfg.Title).
		Str("engine", d.cfg.DB.GormEngine).
		Bool("dev_mode", d.cfg.DevMode).
		Bool("strict_join", d.cfg.Membership.StrictJoin).
		Int("organizations", len(orgs)).
		Msg("campushub ready")

	return nil
}

// Close releases the database pool.
func (d *Daemon) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to access database pool")
	}

	return errors.Wrap(sqlDB.Close(), "failed to close database")
}
