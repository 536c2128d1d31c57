package auth

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/campushub/campushub/internal/apperr"
	"github.com/campushub/campushub/internal/db/controller/membership"
	"github.com/campushub/campushub/internal/db/controller/officerrole"
	"github.com/campushub/campushub/internal/db/models"
)

// Service answers permission questions for (user, organization) pairs.
type Service struct {
	db *gorm.DB
}

// NewService creates a new auth service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// WithTx returns a copy of the service running on tx.
func (s *Service) WithTx(tx *gorm.DB) *Service {
	return &Service{db: tx}
}

// EffectivePermissions returns the union of the flags of every officer role
// userID holds in orgID. Without a membership every flag is false.
func (s *Service) EffectivePermissions(ctx context.Context, orgID, userID uint) (Permissions, error) {
	db := s.db.WithContext(ctx)

	m, err := membership.Find(db, userID, orgID)
	if errors.Is(err, membership.ErrMembershipNotFound) {
		return Permissions{}, nil
	}

	if err != nil {
		return Permissions{}, apperr.Store(err, "failed to find membership")
	}

	roles, err := officerrole.ListByMembership(db, m.ID)
	if err != nil {
		return Permissions{}, apperr.Store(err, "failed to list officer roles")
	}

	return Aggregate(roles), nil
}

// HasPermission reports whether userID holds flag in orgID.
func (s *Service) HasPermission(ctx context.Context, orgID, userID uint, flag Flag) (bool, error) {
	if !flag.Valid() {
		return false, &apperr.Error{Kind: apperr.KindInvalidInput, Msg: string(flag), Err: ErrUnknownFlag}
	}

	perms, err := s.EffectivePermissions(ctx, orgID, userID)
	if err != nil {
		return false, err
	}

	return perms.Has(flag), nil
}

// Require fails with an access denied error unless userID holds flag in orgID.
func (s *Service) Require(ctx context.Context, orgID, userID uint, flag Flag) error {
	ok, err := s.HasPermission(ctx, orgID, userID, flag)
	if err != nil {
		return err
	}

	recordDecision(flag, ok)

	if !ok {
		log.Debug().Uint("user_id", userID).Uint("org_id", orgID).Str("flag", string(flag)).Msg("permission denied")

		return apperr.AccessDenied("user %d lacks %s in organization %d", userID, flag, orgID)
	}

	return nil
}

// AuthorizeContentCreation checks that userID may create content in orgID
// and returns the officer role ID to record as its creator.
//
// The membership must be Approved and hold at least one officer role. If
// requiredFlag is set, the roles together must grant it and the oldest role
// granting it on its own is returned; otherwise the oldest role is returned.
// Roles held in other organizations are never consulted.
func (s *Service) AuthorizeContentCreation(
	ctx context.Context,
	userID, orgID uint,
	requiredFlag Flag,
) (uint, error) {
	if requiredFlag != "" && !requiredFlag.Valid() {
		return 0, &apperr.Error{Kind: apperr.KindInvalidInput, Msg: string(requiredFlag), Err: ErrUnknownFlag}
	}

	roleID, err := s.authorizeContentCreation(ctx, userID, orgID, requiredFlag)

	recordDecision(requiredFlag, err == nil)

	return roleID, err
}

func (s *Service) authorizeContentCreation(
	ctx context.Context,
	userID, orgID uint,
	requiredFlag Flag,
) (uint, error) {
	db := s.db.WithContext(ctx)

	m, err := membership.FindApproved(db, userID, orgID)
	if errors.Is(err, membership.ErrMembershipNotFound) {
		return 0, apperr.AccessDenied("user %d is not an approved member of organization %d", userID, orgID)
	}

	if err != nil {
		return 0, apperr.Store(err, "failed to find membership")
	}

	roles, err := officerrole.ListByMembership(db, m.ID)
	if err != nil {
		return 0, apperr.Store(err, "failed to list officer roles")
	}

	if len(roles) == 0 {
		return 0, apperr.AccessDenied("only officers can create content in organization %d", orgID)
	}

	if requiredFlag == "" {
		return roles[0].ID, nil
	}

	if !Aggregate(roles).Has(requiredFlag) {
		return 0, apperr.AccessDenied("user %d lacks %s in organization %d", userID, requiredFlag, orgID)
	}

	return grantingRole(roles, requiredFlag).ID, nil
}

// grantingRole returns the first role granting flag. The caller has
// checked that the aggregate grants it, so one exists.
func grantingRole(roles []models.OfficerRole, flag Flag) *models.OfficerRole {
	for i := range roles {
		if RolePermissions(&roles[i]).Has(flag) {
			return &roles[i]
		}
	}

	return &roles[0]
}
