package cachemeta

import (
	"context"

	"github.com/dmitrijs2005/userdir/internal/models"
)

// Repository persists one metadata record per fetched page.
type Repository interface {
	// Put inserts or replaces the record with meta.ID.
	Put(ctx context.Context, meta models.CacheMetadata) error
	GetByPage(ctx context.Context, page int) (*models.CacheMetadata, error)
	GetAll(ctx context.Context) ([]models.CacheMetadata, error)
	Clear(ctx context.Context) error
}
