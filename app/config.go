package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campushub/campushub/internal/config"
	"github.com/campushub/campushub/internal/daemon"
	"github.com/campushub/campushub/internal/seed"
)

func init() { //nolint: gochecknoinits
	configDumpCmd.Flags().BoolVar(&dumpJSON, "json", false, "Dump as JSON instead of TOML")
	configCmd.AddCommand(configDumpCmd)

	seedCmd.Flags().StringVar(&seedDataPath, "data", "", "directory holding the csv files (default Seed.DataPath)")

	seedCmd.AddCommand(seedStatusCmd)

	rootCmd.AddCommand(configCmd, seedCmd)
}

var (
	dumpJSON     bool
	seedDataPath string

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	configDumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Print the effective configuration, env override included",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := config.ReadConfig(configPath)
			if err != nil {
				return err
			}

			dump := config.DumpConfig
			if dumpJSON {
				dump = config.DumpConfigJSON
			}

			out, err := dump(&c)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), out)

			return err //nolint:wrapcheck
		},
	}

	seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Import users, organizations, memberships, roles, events and announcements from csv files",
		RunE: withDaemon(func(ctx context.Context, cmd *cobra.Command, d *daemon.Daemon) error {
			seeder := d.Seeder
			if seedDataPath != "" {
				seeder = seed.NewImporter(d.DB(), seedDataPath, cfg.Seed.DefaultPassword)
			}

			summary, err := seeder.Run(ctx)
			if err != nil {
				return err
			}

			return printJSON(cmd, summary)
		}),
	}

	seedStatusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show the summary of the last seed import",
		RunE: withDaemon(func(ctx context.Context, cmd *cobra.Command, d *daemon.Daemon) error {
			summary, err := d.Seeder.LastSummary(ctx)
			if err != nil {
				return err
			}

			return printJSON(cmd, summary)
		}),
	}
)
