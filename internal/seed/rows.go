package seed

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/campushub/campushub/internal/db/controller/announcement"
	"github.com/campushub/campushub/internal/db/controller/event"
	"github.com/campushub/campushub/internal/db/controller/membership"
	"github.com/campushub/campushub/internal/db/controller/officerrole"
	"github.com/campushub/campushub/internal/db/controller/organization"
	"github.com/campushub/campushub/internal/db/controller/user"
	"github.com/campushub/campushub/internal/db/models"
)

func (i *Importer) loadUser(_ context.Context, db *gorm.DB, r row) error {
	if err := r.require("UserID", "Email"); err != nil {
		return err
	}

	id, err := r.id("UserID")
	if err != nil {
		return err
	}

	exists, err := user.Exists(db, id)
	if err != nil {
		return err
	}

	if exists {
		return errors.Wrapf(errSkip, "user %d already exists", id)
	}

	hash, err := i.passwordHash()
	if err != nil {
		return err
	}

	err = user.Insert(db, &models.User{
		ID:        id,
		FirstName: r.get("FirstName"),
		LastName:  r.get("LastName"),
		Email:     strings.ToLower(r.get("Email")),
		Password:  hash,
	})
	if errors.Is(err, user.ErrUserExists) {
		return errors.Wrapf(errSkip, "email %s already taken", r.get("Email"))
	}

	return err
}

func loadOrganization(_ context.Context, db *gorm.DB, r row) error {
	if err := r.require("OrgID", "OrgName"); err != nil {
		return err
	}

	id, err := r.id("OrgID")
	if err != nil {
		return err
	}

	exists, err := organization.Exists(db, id)
	if err != nil {
		return err
	}

	if exists {
		return errors.Wrapf(errSkip, "organization %d already exists", id)
	}

	err = organization.Insert(db, &models.Organization{
		ID:           id,
		Name:         r.get("OrgName"),
		Description:  r.get("OrgDescription"),
		ContactEmail: r.get("ContactEmail"),
	})
	if errors.Is(err, organization.ErrOrganizationExists) {
		return errors.Wrapf(errSkip, "organization name %q already taken", r.get("OrgName"))
	}

	return err
}

func loadMembership(_ context.Context, db *gorm.DB, r row) error {
	if err := r.require("MembershipID", "UserID", "OrgID"); err != nil {
		return err
	}

	id, err := r.id("MembershipID")
	if err != nil {
		return err
	}

	userID, err := r.id("UserID")
	if err != nil {
		return err
	}

	orgID, err := r.id("OrgID")
	if err != nil {
		return err
	}

	status, err := parseStatus(r.get("Status"))
	if err != nil {
		return err
	}

	applied, err := r.dateOr("DateApplied", time.Now())
	if err != nil {
		return err
	}

	approved, err := r.date("DateApproved")
	if err != nil {
		return err
	}

	if status == models.MembershipApproved && approved == nil {
		approved = &applied
	}

	if status != models.MembershipApproved {
		approved = nil
	}

	if _, err := membership.Get(db, id); err == nil {
		return errors.Wrapf(errSkip, "membership %d already exists", id)
	} else if !errors.Is(err, membership.ErrMembershipNotFound) {
		return err
	}

	if err := mustExist(db, userID, orgID); err != nil {
		return errors.Wrapf(err, "membership %d", id)
	}

	err = membership.Insert(db, &models.Membership{
		ID:           id,
		UserID:       userID,
		OrgID:        orgID,
		Status:       status,
		DateApplied:  applied,
		DateApproved: approved,
	})
	if errors.Is(err, membership.ErrMembershipExists) {
		return errors.Wrapf(errSkip, "user %d already has a membership in organization %d", userID, orgID)
	}

	return err
}

func loadOfficerRole(_ context.Context, db *gorm.DB, r row) error {
	if err := r.require("OfficerRoleID", "MembershipID", "RoleName"); err != nil {
		return err
	}

	id, err := r.id("OfficerRoleID")
	if err != nil {
		return err
	}

	membershipID, err := r.id("MembershipID")
	if err != nil {
		return err
	}

	start, err := r.dateOr("RoleStart", time.Now())
	if err != nil {
		return err
	}

	end, err := r.date("RoleEnd")
	if err != nil {
		return err
	}

	role := &models.OfficerRole{
		ID:           id,
		MembershipID: membershipID,
		RoleName:     r.get("RoleName"),
		RoleStart:    start,
		RoleEnd:      end,
	}

	flags := []struct {
		column string
		dst    *bool
	}{
		{"can_post_announcements", &role.CanPostAnnouncements},
		{"can_create_events", &role.CanCreateEvents},
		{"can_approve_members", &role.CanApproveMembers},
		{"can_assign_roles", &role.CanAssignRoles},
	}

	for _, f := range flags {
		if *f.dst, err = r.flag(f.column); err != nil {
			return err
		}
	}

	if _, err := officerrole.Get(db, id); err == nil {
		return errors.Wrapf(errSkip, "officer role %d already exists", id)
	} else if !errors.Is(err, officerrole.ErrOfficerRoleNotFound) {
		return err
	}

	if _, err := membership.Get(db, membershipID); err != nil {
		if errors.Is(err, membership.ErrMembershipNotFound) {
			return errors.Wrapf(errSkip, "officer role %d: membership %d missing", id, membershipID)
		}

		return err
	}

	return officerrole.Insert(db, role)
}

func loadEvent(_ context.Context, db *gorm.DB, r row) error {
	if err := r.require("OrgID", "CreatedBy", "EventName"); err != nil {
		return err
	}

	orgID, createdBy, err := contentRefs(db, r)
	if err != nil {
		return err
	}

	date, err := r.dateOr("EventDate", time.Now())
	if err != nil {
		return err
	}

	return event.Insert(db, &models.Event{
		OrgID:       orgID,
		CreatedBy:   createdBy,
		EventName:   r.get("EventName"),
		Description: r.get("EventDescription"),
		EventDate:   date,
		Location:    r.get("Location"),
	})
}

func loadAnnouncement(_ context.Context, db *gorm.DB, r row) error {
	if err := r.require("OrgID", "CreatedBy", "Title"); err != nil {
		return err
	}

	orgID, createdBy, err := contentRefs(db, r)
	if err != nil {
		return err
	}

	posted, err := r.dateOr("DatePosted", time.Now())
	if err != nil {
		return err
	}

	return announcement.Insert(db, &models.Announcement{
		OrgID:      orgID,
		CreatedBy:  createdBy,
		Title:      r.get("Title"),
		Content:    r.get("Content"),
		DatePosted: posted,
	})
}

// contentRefs checks the OrgID and CreatedBy columns of an event or announcement.
func contentRefs(db *gorm.DB, r row) (uint, uint, error) {
	orgID, err := r.id("OrgID")
	if err != nil {
		return 0, 0, err
	}

	createdBy, err := r.id("CreatedBy")
	if err != nil {
		return 0, 0, err
	}

	exists, err := organization.Exists(db, orgID)
	if err != nil {
		return 0, 0, err
	}

	if !exists {
		return 0, 0, errors.Wrapf(errSkip, "organization %d missing", orgID)
	}

	if _, err := officerrole.Get(db, createdBy); err != nil {
		if errors.Is(err, officerrole.ErrOfficerRoleNotFound) {
			return 0, 0, errors.Wrapf(errSkip, "officer role %d missing", createdBy)
		}

		return 0, 0, err
	}

	return orgID, createdBy, nil
}

func mustExist(db *gorm.DB, userID, orgID uint) error {
	ok, err := user.Exists(db, userID)
	if err != nil {
		return err
	}

	if !ok {
		return errors.Wrapf(errSkip, "user %d missing", userID)
	}

	ok, err = organization.Exists(db, orgID)
	if err != nil {
		return err
	}

	if !ok {
		return errors.Wrapf(errSkip, "organization %d missing", orgID)
	}

	return nil
}

// parseStatus reads a Status column. Empty means Approved. Rejected rows are
// not stored since a rejected membership does not exist.
func parseStatus(s string) (models.MembershipStatus, error) {
	if s == "" {
		return models.MembershipApproved, nil
	}

	for _, st := range []models.MembershipStatus{models.MembershipPending, models.MembershipApproved} {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}

	return "", errors.Wrapf(errSkip, "status %q not importable", s)
}
