package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/userdir/internal/common"
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
CREATE TABLE users (
  id         TEXT PRIMARY KEY,
  email      TEXT NOT NULL DEFAULT '',
  gender     TEXT NOT NULL DEFAULT '',
  nat        TEXT NOT NULL DEFAULT '',
  first_name TEXT NOT NULL DEFAULT '',
  last_name  TEXT NOT NULL DEFAULT '',
  data       TEXT NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func user(id, first, last, email string) models.User {
	return models.User{
		ID:    id,
		Name:  models.Name{First: first, Last: last},
		Email: email,
		Login: models.Login{UUID: id},
		Nat:   "GB",
		Location: models.Location{
			Country:  "United Kingdom",
			Postcode: "SW1A 1AA",
		},
	}
}

func TestBulkPut_InsertThenGetAll(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.BulkPut(ctx, []models.User{
		user("b", "Bob", "Stone", "bob@example.com"),
		user("a", "Alice", "Reed", "alice@example.com"),
	}))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// ordered by id
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, models.Postcode("SW1A 1AA"), got[0].Location.Postcode)

	var email, first string
	require.NoError(t, db.QueryRow(`SELECT email, first_name FROM users WHERE id='a'`).Scan(&email, &first))
	assert.Equal(t, "alice@example.com", email)
	assert.Equal(t, "Alice", first)
}

func TestBulkPut_OverwritesExistingID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.BulkPut(ctx, []models.User{user("a", "Old", "Name", "old@example.com")}))
	require.NoError(t, r.BulkPut(ctx, []models.User{user("a", "New", "Name", "new@example.com")}))

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	u, err := r.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "New", u.Name.First)
	assert.Equal(t, "new@example.com", u.Email)
}

func TestBulkPut_RejectsEmptyID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	err := r.BulkPut(context.Background(), []models.User{{Email: "x@example.com"}})
	require.ErrorIs(t, err, models.ErrMissingLoginUUID)
}

func TestGetAll_EmptyReturnsEmptySlice(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	got, err := r.GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetByID_NotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := r.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestClear_RemovesAll(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.BulkPut(ctx, []models.User{user("a", "A", "A", "a@x"), user("b", "B", "B", "b@x")}))
	require.NoError(t, r.Clear(ctx))

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGetAll_DecodeErrorWrapped(t *testing.T) {
	db := setupDB(t)
	_, err := db.Exec(`INSERT INTO users (id, data) VALUES ('bad', '{not json')`)
	require.NoError(t, err)

	_, err = NewSQLiteRepository(db).GetAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode user row")
}

func TestBulkPut_DriverErrorWrapped(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(errors.New("disk I/O error"))

	err = NewSQLiteRepository(db).BulkPut(context.Background(), []models.User{user("a", "A", "B", "a@x")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to put user a: disk I/O error")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClear_DriverErrorWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM users`).WillReturnError(errors.New("locked"))

	err = NewSQLiteRepository(db).Clear(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to clear users")
}
