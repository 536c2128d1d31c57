// Package controller holds what the table controllers below it share.
// Each sub package wraps one table with plain functions taking a *gorm.DB,
// so callers decide whether they run on the pool or inside a transaction.
package controller

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

// IsDuplicateKey reports whether err is a unique constraint violation.
// gorm translates it for most drivers; the message check covers the rest.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := strings.ToLower(err.Error())

	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate")
}
