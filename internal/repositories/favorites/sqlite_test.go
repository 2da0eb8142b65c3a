package favorites

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/userdir/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE favorites (
  id         TEXT PRIMARY KEY,
  user_id    TEXT NOT NULL,
  created_at INTEGER NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestAdd_ThenGetAll(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	t0 := time.UnixMilli(1_000)
	require.NoError(t, r.Add(ctx, models.NewFavorite("u2", t0.Add(time.Second))))
	require.NoError(t, r.Add(ctx, models.NewFavorite("u1", t0)))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "u1", got[0].UserID)
	assert.Equal(t, "fav_u1_1000", got[0].ID)
	assert.True(t, got[0].CreatedAt.Equal(t0))
	assert.Equal(t, "u2", got[1].UserID)
}

func TestAdd_DuplicateIDFails(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	fav := models.NewFavorite("u1", time.UnixMilli(5))
	require.NoError(t, r.Add(ctx, fav))

	err := r.Add(ctx, fav)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to add favorite[u1]")
}

func TestDeleteByUserID_RemovesAllRecordsForUser(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Add(ctx, models.NewFavorite("u1", time.UnixMilli(1))))
	require.NoError(t, r.Add(ctx, models.NewFavorite("u1", time.UnixMilli(2))))
	require.NoError(t, r.Add(ctx, models.NewFavorite("u2", time.UnixMilli(3))))

	n, err := r.DeleteByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "u2", got[0].UserID)

	// deleting again is a no-op
	n, err = r.DeleteByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestClear(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Add(ctx, models.NewFavorite("u1", time.UnixMilli(1))))
	require.NoError(t, r.Clear(ctx))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetAll_QueryErrorWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, user_id, created_at FROM favorites`).
		WillReturnError(errors.New("no such table"))

	_, err = NewSQLiteRepository(db).GetAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to select favorites: no such table")
}
