package organization

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/campushub/campushub/internal/apperr"
	"github.com/campushub/campushub/internal/auth"
	"github.com/campushub/campushub/internal/db/controller/announcement"
	"github.com/campushub/campushub/internal/db/controller/event"
	membershipstore "github.com/campushub/campushub/internal/db/controller/membership"
	"github.com/campushub/campushub/internal/db/controller/officerrole"
	orgstore "github.com/campushub/campushub/internal/db/controller/organization"
)

// DeleteSummary counts the rows removed per table.
type DeleteSummary struct {
	Announcements int64
	Events        int64
	OfficerRoles  int64
	Memberships   int64
	Organizations int64
}

type deleteStep struct {
	table string
	run   func(db *gorm.DB, orgID uint) (int64, error)
	count func(s *DeleteSummary) *int64
}

// deleteSteps is the removal order: content, then roles, then memberships, then the organization.
// Foreign key cascades are not relied upon.
var deleteSteps = []deleteStep{ //nolint:gochecknoglobals
	{"announcements", announcement.DeleteByOrg, func(s *DeleteSummary) *int64 { return &s.Announcements }},
	{"events", event.DeleteByOrg, func(s *DeleteSummary) *int64 { return &s.Events }},
	{"officer_roles", officerrole.DeleteByOrg, func(s *DeleteSummary) *int64 { return &s.OfficerRoles }},
	{"memberships", membershipstore.DeleteByOrg, func(s *DeleteSummary) *int64 { return &s.Memberships }},
	{"organizations", orgstore.Delete, func(s *DeleteSummary) *int64 { return &s.Organizations }},
}

// Delete removes organization orgID with its announcements, events, officer
// roles and memberships in one transaction. A failing step rolls back all of them.
// Callers must have checked can_assign_roles; see DeleteAs.
func (s *Service) Delete(ctx context.Context, orgID uint) (*DeleteSummary, error) {
	summary := &DeleteSummary{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := orgstore.Get(tx, orgID); err != nil {
			if errors.Is(err, orgstore.ErrOrganizationNotFound) {
				return apperr.NotFound("organization %d not found", orgID)
			}

			return apperr.Store(err, "failed to get organization")
		}

		for _, step := range deleteSteps {
			n, err := step.run(tx, orgID)
			if err != nil {
				log.Error().Err(err).Uint("org_id", orgID).Str("table", step.table).
					Msg("organization delete step failed, rolling back")

				return apperr.Store(err, "failed to delete "+step.table)
			}

			*step.count(summary) = n
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Uint("org_id", orgID).
		Int64("announcements", summary.Announcements).
		Int64("events", summary.Events).
		Int64("officer_roles", summary.OfficerRoles).
		Int64("memberships", summary.Memberships).
		Msg("organization deleted")

	return summary, nil
}

// DeleteAs deletes on behalf of actorID, who must hold can_assign_roles in the organization.
func (s *Service) DeleteAs(ctx context.Context, actorID, orgID uint) (*DeleteSummary, error) {
	if _, err := s.Get(ctx, orgID); err != nil {
		return nil, err
	}

	if err := s.auth.Require(ctx, orgID, actorID, auth.FlagAssignRoles); err != nil {
		return nil, err
	}

	return s.Delete(ctx, orgID)
}
