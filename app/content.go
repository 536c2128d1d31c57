package app

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/campushub/campushub/internal/apperr"
	"github.com/campushub/campushub/internal/content"
	"github.com/campushub/campushub/internal/daemon"
)

const dateLayout = "2006-01-02"

func init() { //nolint: gochecknoinits
	f := announcePostCmd.Flags()
	f.UintVar(&contentOrgID, "org", 0, "organization ID")
	f.StringVar(&announcement.Title, "title", "", "title")
	f.StringVar(&announcement.Content, "content", "", "body text")

	announceListCmd.Flags().UintVar(&contentOrgID, "org", 0, "organization ID")

	f = eventCreateCmd.Flags()
	f.UintVar(&contentOrgID, "org", 0, "organization ID")
	f.StringVar(&event.EventName, "name", "", "event name")
	f.StringVar(&event.Description, "description", "", "description")
	f.StringVar(&event.Location, "location", "", "location")
	f.StringVar(&eventDate, "date", "", "event date, YYYY-MM-DD")

	eventListCmd.Flags().UintVar(&contentOrgID, "org", 0, "organization ID")

	announceCmd.AddCommand(announcePostCmd, announceListCmd)
	eventCmd.AddCommand(eventCreateCmd, eventListCmd)
	rootCmd.AddCommand(announceCmd, eventCmd)
}

var (
	contentOrgID uint
	announcement content.AnnouncementInput
	event        content.EventInput
	eventDate    string

	announceCmd = &cobra.Command{
		Use:   "announce",
		Short: "Post and list announcements",
	}

	announcePostCmd = &cobra.Command{
		Use:   "post",
		Short: "Post an announcement; the --as user needs can_post_announcements",
		RunE: withDaemon(func(ctx context.Context, cmd *cobra.Command, d *daemon.Daemon) error {
			if err := requireActor(); err != nil {
				return err
			}

			a, err := d.Content.PostAnnouncement(ctx, actorID, contentOrgID, announcement)
			if err != nil {
				return err
			}

			return printJSON(cmd, a)
		}),
	}

	announceListCmd = &cobra.Command{
		Use:   "list",
		Short: "List the announcements of an organization, newest first",
		RunE: withDaemon(func(ctx context.Context, cmd *cobra.Command, d *daemon.Daemon) error {
			list, err := d.Content.ListAnnouncements(ctx, contentOrgID)
			if err != nil {
				return err
			}

			return printJSON(cmd, list)
		}),
	}

	eventCmd = &cobra.Command{
		Use:   "event",
		Short: "Create and list events",
	}

	eventCreateCmd = &cobra.Command{
		Use:   "create",
		Short: "Create an event; the --as user needs can_create_events",
		RunE: withDaemon(func(ctx context.Context, cmd *cobra.Command, d *daemon.Daemon) error {
			if err := requireActor(); err != nil {
				return err
			}

			date, err := time.Parse(dateLayout, eventDate)
			if err != nil {
				return apperr.InvalidInput("invalid --date %q, want YYYY-MM-DD", eventDate)
			}

			event.EventDate = date

			e, err := d.Content.CreateEvent(ctx, actorID, contentOrgID, event)
			if err != nil {
				return err
			}

			return printJSON(cmd, e)
		}),
	}

	eventListCmd = &cobra.Command{
		Use:   "list",
		Short: "List the events of an organization by date",
		RunE: withDaemon(func(ctx context.Context, cmd *cobra.Command, d *daemon.Daemon) error {
			list, err := d.Content.ListEvents(ctx, contentOrgID)
			if err != nil {
				return err
			}

			return printJSON(cmd, list)
		}),
	}
)
