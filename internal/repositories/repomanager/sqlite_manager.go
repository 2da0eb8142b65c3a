package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/userdir/internal/dbx"
	"github.com/dmitrijs2005/userdir/internal/filex"
	"github.com/dmitrijs2005/userdir/internal/migrations"
	"github.com/dmitrijs2005/userdir/internal/repositories/cachemeta"
	"github.com/dmitrijs2005/userdir/internal/repositories/favorites"
	"github.com/dmitrijs2005/userdir/internal/repositories/users"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// MemoryDSN opens a private in-memory database. It lives as long as the
// single pooled connection does.
const MemoryDSN = ":memory:"

type SQLiteRepositoryManager struct {
	db    *sql.DB
	repos Repositories
}

var _ RepositoryManager = (*SQLiteRepositoryManager)(nil)

// Open opens (creating if needed) the database at path, applies migrations and
// returns a ready manager. The pool is capped at one connection: the local
// store has a single writer and a single reader.
func Open(ctx context.Context, path string) (*SQLiteRepositoryManager, error) {
	dsn, err := DSN(path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return NewSQLiteRepositoryManager(db), nil
}

// NewSQLiteRepositoryManager wraps an already migrated database.
func NewSQLiteRepositoryManager(db *sql.DB) *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{db: db, repos: bind(db)}
}

// RunMigrations applies the embedded schema with goose.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// DSN turns a filesystem path into a modernc sqlite DSN, creating the parent
// directory. MemoryDSN is passed through.
func DSN(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("database path is empty")
	}
	if trimmed == MemoryDSN {
		return MemoryDSN, nil
	}

	if _, err := filex.EnsureParentDir(trimmed); err != nil {
		return "", fmt.Errorf("create database dir: %w", err)
	}

	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	return "file:" + uriPathEscaper.Replace(trimmed) + "?" + q.Encode(), nil
}

// uriPathEscaper escapes the characters sqlite's URI parser treats as
// delimiters inside the path part of a file: URI.
var uriPathEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

func bind(db dbx.DBTX) Repositories {
	return Repositories{
		Users:     users.NewSQLiteRepository(db),
		Favorites: favorites.NewSQLiteRepository(db),
		Cache:     cachemeta.NewSQLiteRepository(db),
	}
}

func (m *SQLiteRepositoryManager) Users() users.Repository         { return m.repos.Users }
func (m *SQLiteRepositoryManager) Favorites() favorites.Repository { return m.repos.Favorites }
func (m *SQLiteRepositoryManager) Cache() cachemeta.Repository     { return m.repos.Cache }

func (m *SQLiteRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	return dbx.WithTx(ctx, m.db, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, bind(tx))
	})
}

// DB exposes the underlying handle for diagnostics and tests.
func (m *SQLiteRepositoryManager) DB() *sql.DB {
	return m.db
}

func (m *SQLiteRepositoryManager) Close() error {
	return m.db.Close()
}
