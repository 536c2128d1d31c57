package organization

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/campushub/campushub/internal/apperr"
	"github.com/campushub/campushub/internal/auth"
	"github.com/campushub/campushub/internal/officer"
)

func newMockService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Discard,
	})
	require.NoError(t, err)

	authService := auth.NewService(db)

	return NewService(db, authService, officer.NewService(db, authService)), mock
}

func TestDeleteRollsBack(t *testing.T) {
	testCases := []struct {
		name   string
		expect func(mock sqlmock.Sqlmock)
	}{
		{
			name: "events step fails",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM "announcements"`).WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectExec(`DELETE FROM "events"`).WithArgs(1).WillReturnError(errors.New("disk I/O error"))
			},
		},
		{
			name: "organization step fails",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM "announcements"`).WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(`DELETE FROM "events"`).WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(`DELETE FROM "officer_roles"`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`DELETE FROM "memberships"`).WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`DELETE FROM "organizations"`).WithArgs(1).WillReturnError(errors.New("connection reset"))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, mock := newMockService(t)

			mock.ExpectBegin()
			mock.ExpectQuery(`SELECT \* FROM "organizations"`).
				WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Chess Society"))
			tc.expect(mock)
			mock.ExpectRollback()

			summary, err := svc.Delete(context.Background(), 1)
			require.ErrorIs(t, err, apperr.ErrStore)
			assert.Nil(t, summary)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDeleteMissingOrganization(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "organizations"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.Delete(context.Background(), 1)
	require.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
