package app

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/campushub/campushub/internal/auth"
	"github.com/campushub/campushub/internal/daemon"
)

func init() { //nolint: gochecknoinits
	f := roleAssignCmd.Flags()
	f.UintVar(&membershipID, "membership", 0, "membership ID")
	f.StringVar(&roleName, "name", "", "role name, e.g. Treasurer; Admin grants every permission")
	f.StringVar(&roleFlags, "perms", "", "comma separated permissions or all")

	f = roleProvisionCmd.Flags()
	f.UintVar(&roleOrgID, "org", 0, "organization ID")
	f.UintVar(&roleUserID, "user", 0, "user ID")
	f.StringVar(&provisionRoleName, "name", auth.AdminRoleName, "role name")

	f = permsShowCmd.Flags()
	f.UintVar(&roleOrgID, "org", 0, "organization ID")
	f.UintVar(&roleUserID, "user", 0, "user ID")

	roleCmd.AddCommand(roleAssignCmd, roleProvisionCmd)
	permsCmd.AddCommand(permsShowCmd)
	rootCmd.AddCommand(roleCmd, permsCmd)
}

var (
	roleName          string
	provisionRoleName string
	roleFlags         string
	roleOrgID         uint
	roleUserID        uint

	roleCmd = &cobra.Command{
		Use:   "role",
		Short: "Manage officer roles",
	}

	roleAssignCmd = &cobra.Command{
		Use:   "assign",
		Short: "Add an officer role to a membership; the --as user needs can_assign_roles",
		RunE: withDaemon(func(ctx context.Context, cmd *cobra.Command, d *daemon.Daemon) error {
			if err := requireActor(); err != nil {
				return err
			}

			perms, err := auth.ParsePermissions(roleFlags)
			if err != nil {
				return err
			}

			role, err := d.Officers.AssignRoleAs(ctx, actorID, membershipID, roleName, perms)
			if err != nil {
				return err
			}

			return printJSON(cmd, role)
		}),
	}

	roleProvisionCmd = &cobra.Command{
		Use:   "provision",
		Short: "Make a user a full officer of an organization",
		RunE: withDaemon(func(ctx context.Context, cmd *cobra.Command, d *daemon.Daemon) error {
			id, err := d.Officers.ProvisionCreatorRole(ctx, roleOrgID, roleUserID, provisionRoleName)
			if err != nil {
				return err
			}

			return printJSON(cmd, map[string]uint{"officer_role_id": id})
		}),
	}

	permsCmd = &cobra.Command{
		Use:   "perms",
		Short: "Inspect permissions",
	}

	permsShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show the effective permissions of a user in an organization",
		RunE: withDaemon(func(ctx context.Context, cmd *cobra.Command, d *daemon.Daemon) error {
			perms, err := d.Auth.EffectivePermissions(ctx, roleOrgID, roleUserID)
			if err != nil {
				return err
			}

			return printJSON(cmd, map[string]any{"permissions": perms, "granted": perms.Granted()})
		}),
	}
)
