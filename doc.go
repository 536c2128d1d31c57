// Package main provides the entry point for the campushub command line tool.
// It manages campus organizations, their memberships and officer roles, and
// the announcements and events officers publish. State is kept in a relational
// database accessed through gorm (sqlite, mysql or postgres).
package main
