// Package membership runs the join request lifecycle:
// Pending on request, then Approved, or Rejected and removed.
package membership

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/campushub/campushub/internal/apperr"
	"github.com/campushub/campushub/internal/auth"
	membershipstore "github.com/campushub/campushub/internal/db/controller/membership"
	"github.com/campushub/campushub/internal/db/controller/officerrole"
	"github.com/campushub/campushub/internal/db/controller/organization"
	"github.com/campushub/campushub/internal/db/controller/user"
	"github.com/campushub/campushub/internal/db/models"
)

// Manager applies membership state changes.
type Manager struct {
	db         *gorm.DB
	auth       *auth.Service
	strictJoin bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithStrictJoin makes RequestJoin fail with an already submitted error
// when a pending or approved membership exists, instead of returning it.
func WithStrictJoin(strict bool) Option {
	return func(m *Manager) {
		m.strictJoin = strict
	}
}

// NewManager creates a new membership manager.
func NewManager(db *gorm.DB, authService *auth.Service, opts ...Option) *Manager {
	m := &Manager{db: db, auth: authService}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// ParseStatus parses a status name, ignoring case.
func ParseStatus(s string) (models.MembershipStatus, error) {
	for _, status := range []models.MembershipStatus{
		models.MembershipPending,
		models.MembershipApproved,
		models.MembershipRejected,
	} {
		if strings.EqualFold(strings.TrimSpace(s), string(status)) {
			return status, nil
		}
	}

	return "", apperr.InvalidInput("unknown membership status %q", s)
}

// RequestJoin files a join request of userID for orgID.
//
// An existing pending or approved membership is returned as is (or refused
// under the strict join policy). A rejected one is replaced by a new pending
// request. A concurrent request for the same pair loses with a conflict.
func (m *Manager) RequestJoin(ctx context.Context, userID, orgID uint) (*models.Membership, error) {
	if userID == 0 || orgID == 0 {
		return nil, apperr.InvalidInput("user and organization are required")
	}

	var result *models.Membership

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, userID, orgID); err != nil {
			return err
		}

		existing, err := membershipstore.Find(tx, userID, orgID)

		switch {
		case errors.Is(err, membershipstore.ErrMembershipNotFound):
		case err != nil:
			return apperr.Store(err, "failed to find membership")
		case existing.Status == models.MembershipRejected:
			if err := removeMembership(tx, existing.ID); err != nil {
				return err
			}
		case m.strictJoin:
			return apperr.AlreadySubmitted("user %d already has a %s membership in organization %d",
				userID, existing.Status, orgID)
		default:
			result = existing
			return nil
		}

		pending := &models.Membership{
			UserID:      userID,
			OrgID:       orgID,
			Status:      models.MembershipPending,
			DateApplied: time.Now(),
		}

		if err := membershipstore.Insert(tx, pending); err != nil {
			if errors.Is(err, membershipstore.ErrMembershipExists) {
				return apperr.Conflict("membership of user %d in organization %d created concurrently", userID, orgID)
			}

			return apperr.Store(err, "failed to insert membership")
		}

		result = pending

		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Status == models.MembershipPending {
		recordTransition(models.MembershipPending)
	}

	log.Info().Uint("user_id", userID).Uint("org_id", orgID).Uint("membership_id", result.ID).
		Str("status", string(result.Status)).Msg("join requested")

	return result, nil
}

// UpdateStatus approves or rejects membershipID.
// Approval sets DateApproved. Rejection deletes the membership together with
// its officer roles and returns the removed row marked Rejected.
func (m *Manager) UpdateStatus(
	ctx context.Context,
	membershipID uint,
	newStatus models.MembershipStatus,
) (*models.Membership, error) {
	if newStatus != models.MembershipApproved && newStatus != models.MembershipRejected {
		return nil, apperr.InvalidInput("status must be %s or %s, got %q",
			models.MembershipApproved, models.MembershipRejected, newStatus)
	}

	var result *models.Membership

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ms, err := membershipstore.Get(tx, membershipID)
		if errors.Is(err, membershipstore.ErrMembershipNotFound) {
			return apperr.NotFound("membership %d not found", membershipID)
		}

		if err != nil {
			return apperr.Store(err, "failed to get membership")
		}

		if newStatus == models.MembershipApproved {
			now := time.Now()
			if err := membershipstore.UpdateStatus(tx, ms.ID, models.MembershipApproved, &now); err != nil {
				return apperr.Store(err, "failed to approve membership")
			}

			ms.Status = models.MembershipApproved
			ms.DateApproved = &now
		} else {
			if err := removeMembership(tx, ms.ID); err != nil {
				return err
			}

			ms.Status = models.MembershipRejected
			ms.DateApproved = nil
		}

		result = ms

		return nil
	})
	if err != nil {
		return nil, err
	}

	recordTransition(newStatus)

	log.Info().Uint("membership_id", membershipID).Uint("org_id", result.OrgID).
		Str("status", string(newStatus)).Msg("membership status updated")

	return result, nil
}

// Review approves or rejects on behalf of actorID, who must hold
// can_approve_members in the membership's organization.
func (m *Manager) Review(
	ctx context.Context,
	actorID, membershipID uint,
	newStatus models.MembershipStatus,
) (*models.Membership, error) {
	ms, err := membershipstore.Get(m.db.WithContext(ctx), membershipID)
	if errors.Is(err, membershipstore.ErrMembershipNotFound) {
		return nil, apperr.NotFound("membership %d not found", membershipID)
	}

	if err != nil {
		return nil, apperr.Store(err, "failed to get membership")
	}

	if err := m.auth.Require(ctx, ms.OrgID, actorID, auth.FlagApproveMembers); err != nil {
		return nil, err
	}

	return m.UpdateStatus(ctx, membershipID, newStatus)
}

// ListByOrg returns the memberships of orgID.
func (m *Manager) ListByOrg(ctx context.Context, orgID uint) ([]models.Membership, error) {
	list, err := membershipstore.List(m.db.WithContext(ctx), &orgID)
	if err != nil {
		return nil, apperr.Store(err, "failed to list memberships")
	}

	return list, nil
}

// ListAll returns every membership.
func (m *Manager) ListAll(ctx context.Context) ([]models.Membership, error) {
	list, err := membershipstore.List(m.db.WithContext(ctx), nil)
	if err != nil {
		return nil, apperr.Store(err, "failed to list memberships")
	}

	return list, nil
}

// ListPending returns the join requests of orgID waiting for review, oldest first.
func (m *Manager) ListPending(ctx context.Context, orgID uint) ([]models.Membership, error) {
	list, err := membershipstore.ListByStatus(m.db.WithContext(ctx), orgID, models.MembershipPending)
	if err != nil {
		return nil, apperr.Store(err, "failed to list pending memberships")
	}

	return list, nil
}

func removeMembership(tx *gorm.DB, membershipID uint) error {
	if _, err := officerrole.DeleteByMembership(tx, membershipID); err != nil {
		return apperr.Store(err, "failed to delete officer roles")
	}

	if err := membershipstore.Delete(tx, membershipID); err != nil {
		return apperr.Store(err, "failed to delete membership")
	}

	return nil
}

func mustExist(tx *gorm.DB, userID, orgID uint) error {
	ok, err := user.Exists(tx, userID)
	if err != nil {
		return apperr.Store(err, "failed to check user")
	}

	if !ok {
		return apperr.NotFound("user %d not found", userID)
	}

	ok, err = organization.Exists(tx, orgID)
	if err != nil {
		return apperr.Store(err, "failed to check organization")
	}

	if !ok {
		return apperr.NotFound("organization %d not found", orgID)
	}

	return nil
}
