// Package cachemeta tracks which result pages were fetched and when.
package cachemeta

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/userdir/internal/common"
	"github.com/dmitrijs2005/userdir/internal/dbx"
	"github.com/dmitrijs2005/userdir/internal/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

var _ Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Put(ctx context.Context, meta models.CacheMetadata) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cache (id, page, last_fetched, total_results) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			page = excluded.page,
			last_fetched = excluded.last_fetched,
			total_results = excluded.total_results
	`, meta.ID, meta.Page, meta.LastFetched.UnixMilli(), meta.TotalResults)
	if err != nil {
		return fmt.Errorf("failed to put cache metadata[%s]: %w", meta.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) GetByPage(ctx context.Context, page int) (*models.CacheMetadata, error) {
	var (
		m       models.CacheMetadata
		fetched int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, page, last_fetched, total_results FROM cache WHERE page = ?`, page).
		Scan(&m.ID, &m.Page, &fetched, &m.TotalResults)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cache metadata[page %d]: %w", page, err)
	}
	m.LastFetched = time.UnixMilli(fetched)
	return &m, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.CacheMetadata, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, page, last_fetched, total_results FROM cache ORDER BY page`)
	if err != nil {
		return nil, fmt.Errorf("failed to select cache metadata: %w", err)
	}
	defer rows.Close()

	result := []models.CacheMetadata{}
	for rows.Next() {
		var (
			m       models.CacheMetadata
			fetched int64
		)
		if err := rows.Scan(&m.ID, &m.Page, &fetched, &m.TotalResults); err != nil {
			return nil, fmt.Errorf("failed to scan cache metadata row: %w", err)
		}
		m.LastFetched = time.UnixMilli(fetched)
		result = append(result, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cache metadata rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cache`); err != nil {
		return fmt.Errorf("failed to clear cache metadata: %w", err)
	}
	return nil
}
