// Package content posts announcements and creates events on behalf of officers.
package content

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/campushub/campushub/internal/apperr"
	"github.com/campushub/campushub/internal/auth"
	"github.com/campushub/campushub/internal/db/controller/announcement"
	"github.com/campushub/campushub/internal/db/controller/event"
	"github.com/campushub/campushub/internal/db/models"
	"github.com/campushub/campushub/internal/officer"
)

// UnknownCreator is shown when the author of an item can no longer be resolved.
const UnknownCreator = "Unknown"

// Service manages announcements and events.
type Service struct {
	db        *gorm.DB
	auth      *auth.Service
	officer   *officer.Service
	validator *validator.Validate
	now       func() time.Time
}

// AnnouncementInput holds a new announcement.
type AnnouncementInput struct {
	Title   string `validate:"required,max=200"`
	Content string `validate:"required"`
}

// EventInput holds a new event.
type EventInput struct {
	EventName   string    `validate:"required,max=200"`
	Description string
	EventDate   time.Time `validate:"required"`
	Location    string    `validate:"max=200"`
}

// AnnouncementView is an announcement with its author's name.
type AnnouncementView struct {
	models.Announcement
	CreatorName string `json:"creator_name"`
}

// EventView is an event with its creator's name.
type EventView struct {
	models.Event
	CreatorName string `json:"creator_name"`
}

// NewService creates a new content service.
func NewService(db *gorm.DB, authService *auth.Service, officerService *officer.Service) *Service {
	return &Service{
		db:        db,
		auth:      authService,
		officer:   officerService,
		validator: validator.New(validator.WithRequiredStructEnabled()),
		now:       time.Now,
	}
}

// PostAnnouncement publishes an announcement in orgID as userID.
// The user needs an officer role granting can_post_announcements.
func (s *Service) PostAnnouncement(ctx context.Context, userID, orgID uint, in AnnouncementInput) (*models.Announcement, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)

	if err := s.validator.Struct(in); err != nil {
		return nil, apperr.FromValidation(err)
	}

	roleID, err := s.auth.AuthorizeContentCreation(ctx, userID, orgID, auth.FlagPostAnnouncements)
	if err != nil {
		return nil, err
	}

	a := &models.Announcement{
		OrgID:      orgID,
		CreatedBy:  roleID,
		Title:      in.Title,
		Content:    in.Content,
		DatePosted: s.now(),
	}

	if err := announcement.Insert(s.db.WithContext(ctx), a); err != nil {
		return nil, apperr.Store(err, "failed to insert announcement")
	}

	log.Info().Uint("org_id", orgID).Uint("announcement_id", a.ID).Uint("officer_role_id", roleID).
		Msg("announcement posted")

	return a, nil
}

// CreateEvent schedules an event in orgID as userID.
// The user needs an officer role granting can_create_events.
func (s *Service) CreateEvent(ctx context.Context, userID, orgID uint, in EventInput) (*models.Event, error) {
	in.EventName = strings.TrimSpace(in.EventName)

	if err := s.validator.Struct(in); err != nil {
		return nil, apperr.FromValidation(err)
	}

	roleID, err := s.auth.AuthorizeContentCreation(ctx, userID, orgID, auth.FlagCreateEvents)
	if err != nil {
		return nil, err
	}

	e := &models.Event{
		OrgID:       orgID,
		CreatedBy:   roleID,
		EventName:   in.EventName,
		Description: in.Description,
		EventDate:   in.EventDate,
		Location:    strings.TrimSpace(in.Location),
	}

	if err := event.Insert(s.db.WithContext(ctx), e); err != nil {
		return nil, apperr.Store(err, "failed to insert event")
	}

	log.Info().Uint("org_id", orgID).Uint("event_id", e.ID).Uint("officer_role_id", roleID).
		Msg("event created")

	return e, nil
}

// ListAnnouncements returns the announcements of orgID, newest first.
func (s *Service) ListAnnouncements(ctx context.Context, orgID uint) ([]AnnouncementView, error) {
	items, err := announcement.ListByOrg(s.db.WithContext(ctx), orgID)
	if err != nil {
		return nil, apperr.Store(err, "failed to list announcements")
	}

	names := newNameCache(s.officer)
	views := make([]AnnouncementView, 0, len(items))

	for _, a := range items {
		name, err := names.lookup(ctx, a.CreatedBy)
		if err != nil {
			return nil, err
		}

		views = append(views, AnnouncementView{Announcement: a, CreatorName: name})
	}

	return views, nil
}

// ListEvents returns the events of orgID by date.
func (s *Service) ListEvents(ctx context.Context, orgID uint) ([]EventView, error) {
	items, err := event.ListByOrg(s.db.WithContext(ctx), orgID)
	if err != nil {
		return nil, apperr.Store(err, "failed to list events")
	}

	names := newNameCache(s.officer)
	views := make([]EventView, 0, len(items))

	for _, e := range items {
		name, err := names.lookup(ctx, e.CreatedBy)
		if err != nil {
			return nil, err
		}

		views = append(views, EventView{Event: e, CreatorName: name})
	}

	return views, nil
}

// nameCache resolves each officer role at most once per listing.
type nameCache struct {
	officer *officer.Service
	names   map[uint]string
}

func newNameCache(o *officer.Service) *nameCache {
	return &nameCache{officer: o, names: map[uint]string{}}
}

func (c *nameCache) lookup(ctx context.Context, officerRoleID uint) (string, error) {
	if name, ok := c.names[officerRoleID]; ok {
		return name, nil
	}

	identity, err := c.officer.ResolveCreatorIdentity(ctx, officerRoleID)
	if err != nil {
		return "", err
	}

	name := UnknownCreator
	if identity != nil {
		name = identity.FullName()
	}

	c.names[officerRoleID] = name

	return name, nil
}
