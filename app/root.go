// Package app implements the main application commands.
package app

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/campushub/campushub/internal/apperr"
	"github.com/campushub/campushub/internal/config"
	"github.com/campushub/campushub/internal/daemon"
	"github.com/campushub/campushub/internal/logger"
)

var (
	configPath string // directory holding main.toml
	actorID    uint   // user the command acts as

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "campushub",
	Short: "CampusHub manages campus organizations, memberships and officer roles",
	Long: `CampusHub manages campus organizations, their join requests and officer roles,
and the announcements and events officers publish.`,
	Args:         cobra.OnlyValidArgs,
	SilenceUsage: true,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./etc/", "directory holding main.toml")
	rootCmd.PersistentFlags().UintVar(&actorID, "as", 0, "ID of the user performing the command")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the config and sets up the global logger.
func loadConfig() error {
	var err error

	if cfg, err = config.ReadConfig(configPath); err != nil {
		return err
	}

	return logger.Init(cfg.Log)
}

type runFunc func(ctx context.Context, cmd *cobra.Command, d *daemon.Daemon) error

// withDaemon runs fn against a freshly opened daemon and closes it afterwards.
// SIGINT and SIGTERM cancel the context.
func withDaemon(fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		d, err := daemon.New(&cfg)
		if err != nil {
			return err
		}

		defer func() { _ = d.Close() }()

		return fn(ctx, cmd, d)
	}
}

// requireActor fails unless --as was given.
func requireActor() error {
	if actorID == 0 {
		return apperr.InvalidInput("--as is required")
	}

	return nil
}

// printJSON writes v indented to the command output.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	return enc.Encode(v) //nolint:wrapcheck
}
