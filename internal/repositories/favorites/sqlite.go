// Package favorites stores the user ids starred in the directory.
package favorites

import (
	"context"
	"fmt"
	"time"

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

func (r *SQLiteRepository) Add(ctx context.Context, fav models.Favorite) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO favorites (id, user_id, created_at) VALUES (?, ?, ?)`,
		fav.ID, fav.UserID, fav.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to add favorite[%s]: %w", fav.UserID, err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete favorite[%s]: %w", userID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Favorite, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, user_id, created_at FROM favorites ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select favorites: %w", err)
	}
	defer rows.Close()

	result := []models.Favorite{}
	for rows.Next() {
		var (
			fav     models.Favorite
			created int64
		)
		if err := rows.Scan(&fav.ID, &fav.UserID, &created); err != nil {
			return nil, fmt.Errorf("failed to scan favorite row: %w", err)
		}
		fav.CreatedAt = time.UnixMilli(created)
		result = append(result, fav)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorite rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM favorites`); err != nil {
		return fmt.Errorf("failed to clear favorites: %w", err)
	}
	return nil
}
