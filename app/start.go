package app

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/campushub/campushub/internal/daemon"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")
	startCmd.Flags().BoolVar(&seedOnStart, "seed", false, "Import the seed directory if the database holds no users")

	rootCmd.AddCommand(startCmd, migrateCmd)
}

var (
	devMode     bool
	seedOnStart bool

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Open and migrate the database and check that campushub is ready",
		RunE: withDaemon(func(ctx context.Context, _ *cobra.Command, d *daemon.Daemon) error {
			if devMode {
				cfg.DevMode = true
			}

			if seedOnStart {
				cfg.Seed.OnStart = true
			}

			return d.Start(ctx)
		}),
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: withDaemon(func(_ context.Context, _ *cobra.Command, _ *daemon.Daemon) error {
			// daemon.New has migrated already
			log.Info().Str("engine", cfg.DB.GormEngine).Str("name", cfg.DB.Name).Msg("database migrated")

			return nil
		}),
	}
)
