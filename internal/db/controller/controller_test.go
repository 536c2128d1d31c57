package controller

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKey(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "translated", err: gorm.ErrDuplicatedKey, want: true},
		{name: "wrapped translated", err: fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), want: true},
		{name: "sqlite message", err: errors.New("UNIQUE constraint failed: memberships.user_id, memberships.org_id"), want: true},
		{name: "mysql message", err: errors.New("Error 1062 (23000): Duplicate entry '1-2' for key 'idx_memberships_user_org'"), want: true},
		{name: "other", err: gorm.ErrRecordNotFound, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsDuplicateKey(tc.err))
		})
	}
}
