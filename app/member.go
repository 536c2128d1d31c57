package app

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/campushub/campushub/internal/daemon"
	"github.com/campushub/campushub/internal/db/models"
)

func init() { //nolint: gochecknoinits
	memberJoinCmd.Flags().UintVar(&memberOrgID, "org", 0, "organization ID")
	memberApproveCmd.Flags().UintVar(&membershipID, "membership", 0, "membership ID")
	memberRejectCmd.Flags().UintVar(&membershipID, "membership", 0, "membership ID")
	memberListCmd.Flags().UintVar(&memberOrgID, "org", 0, "organization ID, all organizations if 0")
	memberListCmd.Flags().BoolVar(&pendingOnly, "pending", false, "only requests waiting for review (needs --org)")

	memberCmd.AddCommand(memberJoinCmd, memberApproveCmd, memberRejectCmd, memberListCmd)
	rootCmd.AddCommand(memberCmd)
}

var (
	memberOrgID  uint
	membershipID uint
	pendingOnly  bool

	memberCmd = &cobra.Command{
		Use:   "member",
		Short: "Manage join requests and memberships",
	}

	memberJoinCmd = &cobra.Command{
		Use:   "join",
		Short: "Ask to join an organization as the --as user",
		RunE: withDaemon(func(ctx context.Context, cmd *cobra.Command, d *daemon.Daemon) error {
			if err := requireActor(); err != nil {
				return err
			}

			m, err := d.Memberships.RequestJoin(ctx, actorID, memberOrgID)
			if err != nil {
				return err
			}

			return printJSON(cmd, m)
		}),
	}

	memberApproveCmd = &cobra.Command{
		Use:   "approve",
		Short: "Approve a join request; the --as user needs can_approve_members",
		RunE:  review(models.MembershipApproved),
	}

	memberRejectCmd = &cobra.Command{
		Use:   "reject",
		Short: "Reject a membership, removing it with its officer roles",
		RunE:  review(models.MembershipRejected),
	}

	memberListCmd = &cobra.Command{
		Use:   "list",
		Short: "List memberships",
		RunE: withDaemon(func(ctx context.Context, cmd *cobra.Command, d *daemon.Daemon) error {
			var (
				list []models.Membership
				err  error
			)

			switch {
			case pendingOnly:
				list, err = d.Memberships.ListPending(ctx, memberOrgID)
			case memberOrgID != 0:
				list, err = d.Memberships.ListByOrg(ctx, memberOrgID)
			default:
				list, err = d.Memberships.ListAll(ctx)
			}

			if err != nil {
				return err
			}

			return printJSON(cmd, list)
		}),
	}
)

func review(status models.MembershipStatus) func(*cobra.Command, []string) error {
	return withDaemon(func(ctx context.Context, cmd *cobra.Command, d *daemon.Daemon) error {
		if err := requireActor(); err != nil {
			return err
		}

		m, err := d.Memberships.Review(ctx, actorID, membershipID, status)
		if err != nil {
			return err
		}

		return printJSON(cmd, m)
	})
}
