package auth

import (
	"strings"

	"github.com/campushub/campushub/internal/apperr"
	"github.com/campushub/campushub/internal/db/models"
)

// AdminRoleName is the role name given to organization creators.
const AdminRoleName = "Admin"

// Flag names a single officer permission.
type Flag string

const (
	// FlagPostAnnouncements allows posting announcements.
	FlagPostAnnouncements Flag = "can_post_announcements"
	// FlagCreateEvents allows creating events.
	FlagCreateEvents Flag = "can_create_events"
	// FlagApproveMembers allows approving and rejecting join requests.
	FlagApproveMembers Flag = "can_approve_members"
	// FlagAssignRoles allows assigning officer roles and deleting the organization.
	FlagAssignRoles Flag = "can_assign_roles"
)

// Flags lists every flag in display order.
func Flags() []Flag {
	return []Flag{FlagPostAnnouncements, FlagCreateEvents, FlagApproveMembers, FlagAssignRoles}
}

// Valid reports whether f is a known flag.
func (f Flag) Valid() bool {
	switch f {
	case FlagPostAnnouncements, FlagCreateEvents, FlagApproveMembers, FlagAssignRoles:
		return true
	default:
		return false
	}
}

// ParseFlag parses a flag name. Case and surrounding blanks are ignored.
func ParseFlag(s string) (Flag, error) {
	f := Flag(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", &apperr.Error{Kind: apperr.KindInvalidInput, Msg: s, Err: ErrUnknownFlag}
	}

	return f, nil
}

// Permissions is the set of officer flags a user holds in one organization.
type Permissions struct {
	CanPostAnnouncements bool `json:"can_post_announcements"`
	CanCreateEvents      bool `json:"can_create_events"`
	CanApproveMembers    bool `json:"can_approve_members"`
	CanAssignRoles       bool `json:"can_assign_roles"`
}

// AllPermissions returns a set with every flag granted.
func AllPermissions() Permissions {
	return Permissions{
		CanPostAnnouncements: true,
		CanCreateEvents:      true,
		CanApproveMembers:    true,
		CanAssignRoles:       true,
	}
}

// Has reports whether f is granted. Unknown flags are never granted.
func (p Permissions) Has(f Flag) bool {
	switch f {
	case FlagPostAnnouncements:
		return p.CanPostAnnouncements
	case FlagCreateEvents:
		return p.CanCreateEvents
	case FlagApproveMembers:
		return p.CanApproveMembers
	case FlagAssignRoles:
		return p.CanAssignRoles
	default:
		return false
	}
}

// Grant returns p with f set. Unknown flags are ignored.
func (p Permissions) Grant(f Flag) Permissions {
	switch f {
	case FlagPostAnnouncements:
		p.CanPostAnnouncements = true
	case FlagCreateEvents:
		p.CanCreateEvents = true
	case FlagApproveMembers:
		p.CanApproveMembers = true
	case FlagAssignRoles:
		p.CanAssignRoles = true
	}

	return p
}

// Granted lists the flags set in p in display order.
func (p Permissions) Granted() []Flag {
	flags := []Flag{}

	for _, f := range Flags() {
		if p.Has(f) {
			flags = append(flags, f)
		}
	}

	return flags
}

// ParsePermissions parses a comma separated list of flag names.
// "all" grants every flag, an empty list grants none.
func ParsePermissions(s string) (Permissions, error) {
	var p Permissions

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)

		switch {
		case part == "":
			continue
		case strings.EqualFold(part, "all"):
			p = AllPermissions()
			continue
		}

		f, err := ParseFlag(part)
		if err != nil {
			return Permissions{}, err
		}

		p = p.Grant(f)
	}

	return p, nil
}

// Union returns the flags granted by p or o.
func (p Permissions) Union(o Permissions) Permissions {
	return Permissions{
		CanPostAnnouncements: p.CanPostAnnouncements || o.CanPostAnnouncements,
		CanCreateEvents:      p.CanCreateEvents || o.CanCreateEvents,
		CanApproveMembers:    p.CanApproveMembers || o.CanApproveMembers,
		CanAssignRoles:       p.CanAssignRoles || o.CanAssignRoles,
	}
}

// IsAdminRole reports whether a role name carries the admin override.
// Only "admin" in any letter case matches.
func IsAdminRole(name string) bool {
	return strings.EqualFold(name, "admin")
}

// RolePermissions returns what a single role grants, admin override included.
func RolePermissions(r *models.OfficerRole) Permissions {
	if IsAdminRole(r.RoleName) {
		return AllPermissions()
	}

	return Permissions{
		CanPostAnnouncements: r.CanPostAnnouncements,
		CanCreateEvents:      r.CanCreateEvents,
		CanApproveMembers:    r.CanApproveMembers,
		CanAssignRoles:       r.CanAssignRoles,
	}
}

// Aggregate computes the effective permissions of a set of roles.
// Any admin role grants everything; otherwise the flags are OR-ed, so the
// result does not depend on role order.
func Aggregate(roles []models.OfficerRole) Permissions {
	var p Permissions

	for i := range roles {
		if IsAdminRole(roles[i].RoleName) {
			return AllPermissions()
		}

		p = p.Union(RolePermissions(&roles[i]))
	}

	return p
}
