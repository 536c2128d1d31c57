package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/campushub/campushub/internal/apperr"
	"github.com/campushub/campushub/internal/db/controller/user"
	"github.com/campushub/campushub/internal/db/models"
)

// LocalProvider handles registration and password authentication against the local database.
type LocalProvider struct {
	db        *gorm.DB
	validator *validator.Validate
}

// RegisterInput holds the fields needed to register a user.
type RegisterInput struct {
	FirstName string `validate:"required,max=80"`
	LastName  string `validate:"required,max=80"`
	Email     string `validate:"required,email,max=120"`
	Password  string `validate:"required,min=8"`
}

// NewLocalProvider creates a new local authentication provider.
func NewLocalProvider(db *gorm.DB) *LocalProvider {
	return &LocalProvider{
		db:        db,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Register creates a new user with a hashed password.
func (p *LocalProvider) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	if err := p.validator.Struct(in); err != nil {
		return nil, apperr.FromValidation(err)
	}

	hashed, err := models.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Store(err, "failed to hash password")
	}

	u := &models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  hashed,
	}

	if err := user.Insert(p.db.WithContext(ctx), u); err != nil {
		if errors.Is(err, user.ErrUserExists) {
			return nil, apperr.AlreadyExists("user with email %s already exists", in.Email)
		}

		return nil, apperr.Store(err, "failed to create user")
	}

	return u, nil
}

// Authenticate returns the user with email if password matches.
func (p *LocalProvider) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := user.GetByEmail(p.db.WithContext(ctx), strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, apperr.NotFound("user %s not found", email)
	}

	if err != nil {
		return nil, apperr.Store(err, "failed to query user")
	}

	if !u.VerifyPassword(password) {
		return nil, &apperr.Error{Kind: apperr.KindAccessDenied, Err: ErrInvalidPassword}
	}

	return u, nil
}

// GetUser retrieves a user by ID.
func (p *LocalProvider) GetUser(ctx context.Context, id uint) (*models.User, error) {
	u, err := user.Get(p.db.WithContext(ctx), id)
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, apperr.NotFound("user %d not found", id)
	}

	if err != nil {
		return nil, apperr.Store(err, "failed to get user")
	}

	return u, nil
}

// ListUsers lists every user.
func (p *LocalProvider) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := user.List(p.db.WithContext(ctx))
	if err != nil {
		return nil, apperr.Store(err, "failed to list users")
	}

	return users, nil
}
