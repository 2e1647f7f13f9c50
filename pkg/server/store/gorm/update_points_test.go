package gorm

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/shiplog/pkg/model"
	"github.com/doodlesbykumbi/shiplog/pkg/server/store"
)

var pointColumns = []string{"id", "created_at", "updated_at", "name", "description", "update_id"}

const ownedPointsQuery = `SELECT update_points\.\* FROM "update_points" JOIN updates ON updates\.id = update_points\.update_id JOIN products ON products\.id = updates\.product_id WHERE products\.belongs_to_id = \$1`

func expectFetchPoint(mock sqlmock.Sqlmock, owner string, found bool) {
	rows := sqlmock.NewRows(pointColumns)
	if found {
		now := time.Now()
		rows.AddRow(pointID, now, now, "Contrast", "Raised contrast ratio", updateID)
	}
	mock.ExpectQuery(ownedPointsQuery + ` AND update_points\.id = \$2`).
		WithArgs(owner, pointID).
		WillReturnRows(rows)
}

func TestUpdatePointsStore_List(t *testing.T) {
	gormDB, mock := newMockDB(t)
	now := time.Now()
	mock.ExpectQuery(ownedPointsQuery + ` ORDER BY update_points\.created_at`).
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows(pointColumns).AddRow(pointID, now, now, "Contrast", "Raised contrast ratio", updateID))

	points, err := NewUpdatePointsStore(gormDB).ListUpdatePoints(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, updateID, points[0].UpdateID)
}

func TestUpdatePointsStore_Fetch(t *testing.T) {
	ctx := context.Background()

	gormDB, mock := newMockDB(t)
	expectFetchPoint(mock, ownerID, true)
	point, err := NewUpdatePointsStore(gormDB).FetchUpdatePoint(ctx, ownerID, pointID)
	require.NoError(t, err)
	assert.Equal(t, "Contrast", point.Name)

	gormDB, mock = newMockDB(t)
	expectFetchPoint(mock, otherID, false)
	_, err = NewUpdatePointsStore(gormDB).FetchUpdatePoint(ctx, otherID, pointID)
	assert.ErrorIs(t, err, store.ErrUpdatePointNotFound)
}

func TestUpdatePointsStore_Create(t *testing.T) {
	ctx := context.Background()
	countQuery := `SELECT count\(1\) FROM "updates" JOIN products ON products\.id = updates\.product_id WHERE updates\.id = \$1 AND products\.belongs_to_id = \$2`

	t.Run("on own update", func(t *testing.T) {
		gormDB, mock := newMockDB(t)
		mock.ExpectQuery(countQuery).
			WithArgs(updateID, ownerID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectExec(`INSERT INTO "update_points"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		point := &model.UpdatePoint{Name: "Contrast", Description: "Raised contrast ratio", UpdateID: updateID}
		require.NoError(t, NewUpdatePointsStore(gormDB).CreateUpdatePoint(ctx, ownerID, point))
		assert.True(t, validID(point.ID))
	})

	t.Run("on someone else's update", func(t *testing.T) {
		gormDB, mock := newMockDB(t)
		mock.ExpectQuery(countQuery).
			WithArgs(updateID, otherID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		point := &model.UpdatePoint{Name: "Contrast", Description: "x", UpdateID: updateID}
		err := NewUpdatePointsStore(gormDB).CreateUpdatePoint(ctx, otherID, point)
		assert.ErrorIs(t, err, store.ErrUpdateNotFound)
	})
}

func TestUpdatePointsStore_PatchAndDelete(t *testing.T) {
	ctx := context.Background()

	gormDB, mock := newMockDB(t)
	expectFetchPoint(mock, ownerID, true)
	mock.ExpectExec(`UPDATE "update_points" SET`).WillReturnResult(sqlmock.NewResult(0, 1))

	name := "Higher contrast"
	point, err := NewUpdatePointsStore(gormDB).PatchUpdatePoint(ctx, ownerID, pointID, store.UpdatePointPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Higher contrast", point.Name)
	assert.Equal(t, "Raised contrast ratio", point.Description)

	gormDB, mock = newMockDB(t)
	expectFetchPoint(mock, ownerID, true)
	mock.ExpectExec(`DELETE FROM "update_points"`).WithArgs(pointID).WillReturnResult(sqlmock.NewResult(0, 1))

	point, err = NewUpdatePointsStore(gormDB).DeleteUpdatePoint(ctx, ownerID, pointID)
	require.NoError(t, err)
	assert.Equal(t, pointID, point.ID)
}

func TestHealthStore(t *testing.T) {
	gormDB, mock := newMockDB(t)
	mock.ExpectExec(`SELECT 1`).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, NewHealthStore(gormDB).CheckConnectivity(context.Background()))
}
