// Package officer assigns officer roles to memberships and resolves who
// stands behind an officer role.
package officer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/campushub/campushub/internal/apperr"
	"github.com/campushub/campushub/internal/auth"
	"github.com/campushub/campushub/internal/db/controller/membership"
	"github.com/campushub/campushub/internal/db/controller/officerrole"
	"github.com/campushub/campushub/internal/db/controller/organization"
	"github.com/campushub/campushub/internal/db/controller/user"
	"github.com/campushub/campushub/internal/db/models"
)

// CreatorIdentity is the user an officer role belongs to.
type CreatorIdentity struct {
	UserID    uint
	FirstName string
	LastName  string
}

// FullName returns first and last name separated by a space.
func (c *CreatorIdentity) FullName() string {
	return c.FirstName + " " + c.LastName
}

type roleInput struct {
	MembershipID uint   `validate:"required"`
	RoleName     string `validate:"required,max=50"`
}

// Service creates officer roles.
type Service struct {
	db        *gorm.DB
	auth      *auth.Service
	validator *validator.Validate
}

// NewService creates a new officer service.
func NewService(db *gorm.DB, authService *auth.Service) *Service {
	return &Service{
		db:        db,
		auth:      authService,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// WithTx returns a copy of the service running on tx.
func (s *Service) WithTx(tx *gorm.DB) *Service {
	return &Service{db: tx, auth: s.auth.WithTx(tx), validator: s.validator}
}

// AssignRole adds a new officer role to membershipID. Existing roles are
// left alone; a membership may hold any number of roles, duplicates included.
func (s *Service) AssignRole(
	ctx context.Context,
	membershipID uint,
	roleName string,
	perms auth.Permissions,
) (*models.OfficerRole, error) {
	roleName = strings.TrimSpace(roleName)

	if err := s.validator.Struct(roleInput{MembershipID: membershipID, RoleName: roleName}); err != nil {
		return nil, apperr.FromValidation(err)
	}

	role := &models.OfficerRole{
		MembershipID:         membershipID,
		RoleName:             roleName,
		RoleStart:            time.Now(),
		CanPostAnnouncements: perms.CanPostAnnouncements,
		CanCreateEvents:      perms.CanCreateEvents,
		CanApproveMembers:    perms.CanApproveMembers,
		CanAssignRoles:       perms.CanAssignRoles,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := membership.Get(tx, membershipID); err != nil {
			if errors.Is(err, membership.ErrMembershipNotFound) {
				return apperr.NotFound("membership %d not found", membershipID)
			}

			return apperr.Store(err, "failed to get membership")
		}

		return apperr.Store(officerrole.Insert(tx, role), "failed to insert officer role")
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Uint("membership_id", membershipID).
		Uint("officer_role_id", role.ID).
		Str("role", roleName).
		Msg("officer role assigned")

	return role, nil
}

// AssignRoleAs assigns a role on behalf of actorID, who must hold
// can_assign_roles in the membership's organization.
func (s *Service) AssignRoleAs(
	ctx context.Context,
	actorID, membershipID uint,
	roleName string,
	perms auth.Permissions,
) (*models.OfficerRole, error) {
	m, err := membership.Get(s.db.WithContext(ctx), membershipID)
	if errors.Is(err, membership.ErrMembershipNotFound) {
		return nil, apperr.NotFound("membership %d not found", membershipID)
	}

	if err != nil {
		return nil, apperr.Store(err, "failed to get membership")
	}

	if err := s.auth.Require(ctx, m.OrgID, actorID, auth.FlagAssignRoles); err != nil {
		return nil, err
	}

	return s.AssignRole(ctx, membershipID, roleName, perms)
}

// ProvisionCreatorRole makes userID a full officer of orgID and returns the officer role ID.
//
// A missing membership is created Approved, a waiting one is approved. If the
// membership has no role yet, a role named roleName (default "Admin") with
// every flag set is added. Otherwise the oldest existing role is returned and
// nothing is written, so repeated calls return the same ID.
func (s *Service) ProvisionCreatorRole(ctx context.Context, orgID, userID uint, roleName string) (uint, error) {
	roleName = strings.TrimSpace(roleName)
	if roleName == "" {
		roleName = auth.AdminRoleName
	}

	var roleID uint

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, userID, orgID); err != nil {
			return err
		}

		m, err := approvedMembership(tx, userID, orgID)
		if err != nil {
			return err
		}

		existing, err := officerrole.FindByMembership(tx, m.ID)
		if err == nil {
			roleID = existing.ID
			return nil
		}

		if !errors.Is(err, officerrole.ErrOfficerRoleNotFound) {
			return apperr.Store(err, "failed to find officer role")
		}

		all := auth.AllPermissions()
		role := &models.OfficerRole{
			MembershipID:         m.ID,
			RoleName:             roleName,
			RoleStart:            time.Now(),
			CanPostAnnouncements: all.CanPostAnnouncements,
			CanCreateEvents:      all.CanCreateEvents,
			CanApproveMembers:    all.CanApproveMembers,
			CanAssignRoles:       all.CanAssignRoles,
		}

		if err := officerrole.Insert(tx, role); err != nil {
			return apperr.Store(err, "failed to insert officer role")
		}

		roleID = role.ID

		log.Info().Uint("org_id", orgID).Uint("user_id", userID).Uint("officer_role_id", roleID).
			Msg("creator role provisioned")

		return nil
	})
	if err != nil {
		return 0, err
	}

	return roleID, nil
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

// approvedMembership returns the membership of userID in orgID, creating or approving it as needed.
func approvedMembership(tx *gorm.DB, userID, orgID uint) (*models.Membership, error) {
	now := time.Now()

	m, err := membership.Find(tx, userID, orgID)
	if errors.Is(err, membership.ErrMembershipNotFound) {
		m = &models.Membership{
			UserID:       userID,
			OrgID:        orgID,
			Status:       models.MembershipApproved,
			DateApplied:  now,
			DateApproved: &now,
		}

		if err := membership.Insert(tx, m); err != nil {
			if errors.Is(err, membership.ErrMembershipExists) {
				return nil, apperr.Conflict("membership of user %d in organization %d created concurrently", userID, orgID)
			}

			return nil, apperr.Store(err, "failed to insert membership")
		}

		return m, nil
	}

	if err != nil {
		return nil, apperr.Store(err, "failed to find membership")
	}

	if m.Status != models.MembershipApproved {
		if err := membership.UpdateStatus(tx, m.ID, models.MembershipApproved, &now); err != nil {
			return nil, apperr.Store(err, "failed to approve membership")
		}

		m.Status = models.MembershipApproved
		m.DateApproved = &now
	}

	return m, nil
}

// ResolveCreatorIdentity follows an announcement or event CreatedBy value to
// its user. It returns nil without error when any link of the chain is gone.
func (s *Service) ResolveCreatorIdentity(ctx context.Context, createdByID uint) (*CreatorIdentity, error) {
	c, err := officerrole.ResolveCreator(s.db.WithContext(ctx), createdByID)
	if errors.Is(err, officerrole.ErrCreatorNotFound) {
		return nil, nil //nolint:nilnil
	}

	if err != nil {
		return nil, apperr.Store(err, "failed to resolve creator")
	}

	return &CreatorIdentity{
		UserID:    c.UserID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
	}, nil
}

// ListByMembership returns the roles of membershipID, oldest first.
func (s *Service) ListByMembership(ctx context.Context, membershipID uint) ([]models.OfficerRole, error) {
	roles, err := officerrole.ListByMembership(s.db.WithContext(ctx), membershipID)
	if err != nil {
		return nil, apperr.Store(err, "failed to list officer roles")
	}

	return roles, nil
}
