// Package organization creates, updates and deletes organizations.
package organization

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/campushub/campushub/internal/apperr"
	"github.com/campushub/campushub/internal/auth"
	orgstore "github.com/campushub/campushub/internal/db/controller/organization"
	"github.com/campushub/campushub/internal/db/models"
	"github.com/campushub/campushub/internal/officer"
)

// Service manages organizations.
type Service struct {
	db        *gorm.DB
	auth      *auth.Service
	officer   *officer.Service
	validator *validator.Validate
}

// CreateInput holds the fields of a new organization.
type CreateInput struct {
	Name         string `validate:"required,max=120"`
	Description  string
	ContactEmail string `validate:"omitempty,email,max=120"`
}

// UpdateInput holds the fields to change. Nil fields are left alone.
type UpdateInput struct {
	Name         *string `validate:"omitempty,max=120"`
	Description  *string
	ContactEmail *string `validate:"omitempty,email,max=120"`
}

// NewService creates a new organization service.
func NewService(db *gorm.DB, authService *auth.Service, officerService *officer.Service) *Service {
	return &Service{
		db:        db,
		auth:      authService,
		officer:   officerService,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Create inserts a new organization and makes creatorID its admin in the
// same transaction. It returns the organization and the creator's officer role ID.
func (s *Service) Create(ctx context.Context, creatorID uint, in CreateInput) (*models.Organization, uint, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.ContactEmail = strings.TrimSpace(in.ContactEmail)

	if err := s.validator.Struct(in); err != nil {
		return nil, 0, apperr.FromValidation(err)
	}

	org := &models.Organization{
		Name:         in.Name,
		Description:  in.Description,
		ContactEmail: in.ContactEmail,
	}

	var roleID uint

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := orgstore.Insert(tx, org); err != nil {
			if errors.Is(err, orgstore.ErrOrganizationExists) {
				return apperr.AlreadyExists("organization %q already exists", in.Name)
			}

			return apperr.Store(err, "failed to insert organization")
		}

		var err error

		roleID, err = s.officer.WithTx(tx).ProvisionCreatorRole(ctx, org.ID, creatorID, auth.AdminRoleName)

		return err
	})
	if err != nil {
		return nil, 0, err
	}

	log.Info().Uint("org_id", org.ID).Str("name", org.Name).Uint("creator_id", creatorID).
		Msg("organization created")

	return org, roleID, nil
}

// Get returns organization id.
func (s *Service) Get(ctx context.Context, id uint) (*models.Organization, error) {
	org, err := orgstore.Get(s.db.WithContext(ctx), id)
	if errors.Is(err, orgstore.ErrOrganizationNotFound) {
		return nil, apperr.NotFound("organization %d not found", id)
	}

	if err != nil {
		return nil, apperr.Store(err, "failed to get organization")
	}

	return org, nil
}

// List returns the organizations whose name or description contains query,
// ignoring case, sorted by name. An empty query lists them all.
func (s *Service) List(ctx context.Context, query string) ([]models.Organization, error) {
	orgs, err := orgstore.List(s.db.WithContext(ctx), query)
	if err != nil {
		return nil, apperr.Store(err, "failed to list organizations")
	}

	return orgs, nil
}

// Update changes the given fields of organization id.
func (s *Service) Update(ctx context.Context, id uint, in UpdateInput) (*models.Organization, error) {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperr.InvalidInput("organization name must not be empty")
		}

		in.Name = &name
	}

	if err := s.validator.Struct(in); err != nil {
		return nil, apperr.FromValidation(err)
	}

	var org *models.Organization

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error

		org, err = orgstore.Get(tx, id)
		if errors.Is(err, orgstore.ErrOrganizationNotFound) {
			return apperr.NotFound("organization %d not found", id)
		}

		if err != nil {
			return apperr.Store(err, "failed to get organization")
		}

		if in.Name != nil {
			org.Name = *in.Name
		}

		if in.Description != nil {
			org.Description = *in.Description
		}

		if in.ContactEmail != nil {
			org.ContactEmail = *in.ContactEmail
		}

		if err := orgstore.Save(tx, org); err != nil {
			if errors.Is(err, orgstore.ErrOrganizationExists) {
				return apperr.AlreadyExists("organization %q already exists", org.Name)
			}

			return apperr.Store(err, "failed to update organization")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return org, nil
}

// UpdateAs updates on behalf of actorID, who must hold can_assign_roles in the organization.
func (s *Service) UpdateAs(ctx context.Context, actorID, id uint, in UpdateInput) (*models.Organization, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if err := s.auth.Require(ctx, id, actorID, auth.FlagAssignRoles); err != nil {
		return nil, err
	}

	return s.Update(ctx, id, in)
}
