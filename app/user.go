package app

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/campushub/campushub/internal/auth"
	"github.com/campushub/campushub/internal/daemon"
)

func init() { //nolint: gochecknoinits
	f := userRegisterCmd.Flags()
	f.StringVar(&registerInput.FirstName, "first", "", "first name")
	f.StringVar(&registerInput.LastName, "last", "", "last name")
	f.StringVar(&registerInput.Email, "email", "", "login email")
	f.StringVar(&registerInput.Password, "password", "", "password, at least 8 characters")

	f = userLoginCmd.Flags()
	f.StringVar(&loginEmail, "email", "", "login email")
	f.StringVar(&loginPassword, "password", "", "password")

	userCmd.AddCommand(userRegisterCmd, userListCmd, userLoginCmd)
	rootCmd.AddCommand(userCmd)
}

var (
	registerInput auth.RegisterInput
	loginEmail    string
	loginPassword string

	userCmd = &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	userRegisterCmd = &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		RunE: withDaemon(func(ctx context.Context, cmd *cobra.Command, d *daemon.Daemon) error {
			u, err := d.Users.Register(ctx, registerInput)
			if err != nil {
				return err
			}

			return printJSON(cmd, u)
		}),
	}

	userListCmd = &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: withDaemon(func(ctx context.Context, cmd *cobra.Command, d *daemon.Daemon) error {
			users, err := d.Users.ListUsers(ctx)
			if err != nil {
				return err
			}

			return printJSON(cmd, users)
		}),
	}

	userLoginCmd = &cobra.Command{
		Use:   "login",
		Short: "Check a user's credentials and print the user, e.g. to find the ID for --as",
		RunE: withDaemon(func(ctx context.Context, cmd *cobra.Command, d *daemon.Daemon) error {
			u, err := d.Users.Authenticate(ctx, loginEmail, loginPassword)
			if err != nil {
				return err
			}

			log.Info().Uint("user_id", u.ID).Msg("credentials verified")

			return printJSON(cmd, u)
		}),
	}
)
