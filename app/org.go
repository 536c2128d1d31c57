package app

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/campushub/campushub/internal/daemon"
	"github.com/campushub/campushub/internal/organization"
)

func init() { //nolint: gochecknoinits
	f := orgCreateCmd.Flags()
	f.StringVar(&orgName, "name", "", "organization name")
	f.StringVar(&orgDescription, "description", "", "description")
	f.StringVar(&orgContact, "contact", "", "contact email")

	f = orgUpdateCmd.Flags()
	f.UintVar(&orgID, "id", 0, "organization ID")
	f.StringVar(&orgName, "name", "", "new name")
	f.StringVar(&orgDescription, "description", "", "new description")
	f.StringVar(&orgContact, "contact", "", "new contact email")

	orgDeleteCmd.Flags().UintVar(&orgID, "id", 0, "organization ID")
	orgListCmd.Flags().StringVar(&orgQuery, "query", "", "only organizations whose name or description contains this text")

	orgCmd.AddCommand(orgCreateCmd, orgListCmd, orgUpdateCmd, orgDeleteCmd)
	rootCmd.AddCommand(orgCmd)
}

var (
	orgID          uint
	orgName        string
	orgDescription string
	orgContact     string
	orgQuery       string

	orgCmd = &cobra.Command{
		Use:   "org",
		Short: "Manage organizations",
	}

	orgCreateCmd = &cobra.Command{
		Use:   "create",
		Short: "Create an organization, making the --as user its admin",
		RunE: withDaemon(func(ctx context.Context, cmd *cobra.Command, d *daemon.Daemon) error {
			if err := requireActor(); err != nil {
				return err
			}

			org, roleID, err := d.Organizations.Create(ctx, actorID, organization.CreateInput{
				Name:         orgName,
				Description:  orgDescription,
				ContactEmail: orgContact,
			})
			if err != nil {
				return err
			}

			return printJSON(cmd, map[string]any{"organization": org, "officer_role_id": roleID})
		}),
	}

	orgListCmd = &cobra.Command{
		Use:   "list",
		Short: "List organizations, optionally filtered by --query",
		RunE: withDaemon(func(ctx context.Context, cmd *cobra.Command, d *daemon.Daemon) error {
			orgs, err := d.Organizations.List(ctx, orgQuery)
			if err != nil {
				return err
			}

			return printJSON(cmd, orgs)
		}),
	}

	orgUpdateCmd = &cobra.Command{
		Use:   "update",
		Short: "Update an organization; the --as user needs can_assign_roles",
		RunE: withDaemon(func(ctx context.Context, cmd *cobra.Command, d *daemon.Daemon) error {
			if err := requireActor(); err != nil {
				return err
			}

			in := organization.UpdateInput{}
			if cmd.Flags().Changed("name") {
				in.Name = &orgName
			}

			if cmd.Flags().Changed("description") {
				in.Description = &orgDescription
			}

			if cmd.Flags().Changed("contact") {
				in.ContactEmail = &orgContact
			}

			org, err := d.Organizations.UpdateAs(ctx, actorID, orgID, in)
			if err != nil {
				return err
			}

			return printJSON(cmd, org)
		}),
	}

	orgDeleteCmd = &cobra.Command{
		Use:   "delete",
		Short: "Delete an organization with everything it owns; the --as user needs can_assign_roles",
		RunE: withDaemon(func(ctx context.Context, cmd *cobra.Command, d *daemon.Daemon) error {
			if err := requireActor(); err != nil {
				return err
			}

			summary, err := d.Organizations.DeleteAs(ctx, actorID, orgID)
			if err != nil {
				return err
			}

			return printJSON(cmd, summary)
		}),
	}
)
