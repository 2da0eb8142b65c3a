package users

import (
	"context"

	"github.com/dmitrijs2005/userdir/internal/models"
)

// Repository persists the users collection.
type Repository interface {
	// BulkPut upserts every user keyed by ID; existing rows are overwritten.
	BulkPut(ctx context.Context, users []models.User) error

	// GetAll returns every stored user ordered by id.
	GetAll(ctx context.Context) ([]models.User, error)

	// GetByID returns common.ErrNotFound when no user has the id.
	GetByID(ctx context.Context, id string) (*models.User, error)

	Count(ctx context.Context) (int, error)

	// Clear removes every user.
	Clear(ctx context.Context) error
}
