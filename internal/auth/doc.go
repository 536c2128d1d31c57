// Package auth decides what a user may do inside an organization.
//
// Permissions are held through officer roles. A user's effective permissions
// in an organization are the union of the flags of every officer role attached
// to their membership there. A role named "admin" (any case) grants every flag
// and short-circuits the union. Nothing is cached: every check reads the
// current membership and role rows.
//
// # Flags
//
//   - can_post_announcements: post announcements
//   - can_create_events: create events
//   - can_approve_members: approve or reject join requests
//   - can_assign_roles: assign officer roles and delete the organization
//
// # Content gate
//
// AuthorizeContentCreation is called before an announcement or event is
// stored. It requires an approved membership holding at least one officer
// role and returns the officer role ID to stamp as the content's creator.
//
// # Credentials
//
// LocalProvider registers and authenticates users with Argon2id password hashes.
//
// Example usage:
//
//	authService := auth.NewService(db)
//
//	perms, err := authService.EffectivePermissions(ctx, orgID, userID)
//
//	roleID, err := authService.AuthorizeContentCreation(ctx, userID, orgID, auth.FlagPostAnnouncements)
package auth
