package gorm

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/shiplog/pkg/db"
)

const (
	ownerID   = "6f1c2a4e-8d3b-4b1e-9a53-3f2a1c0d9e11"
	otherID   = "0a9b8c7d-6e5f-4a3b-8c2d-1e0f9a8b7c6d"
	productID = "5b2e6a10-3c4d-4e5f-8a9b-0c1d2e3f4a5b"
	updateID  = "9e8d7c6b-5a4f-4e3d-9c2b-1a0f9e8d7c6b"
	pointID   = "1f2e3d4c-5b6a-4978-8a9b-cdef01234567"
)

// newMockDB returns a gorm handle over sqlmock. Expectations are verified at cleanup.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := db.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), false)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = conn.Close()
	})
	return gormDB, mock
}
