package favorites

import (
	"context"

	"github.com/dmitrijs2005/userdir/internal/models"
)

// Repository persists favorite records. Several records may exist for the
// same user id; the user counts as a favorite while at least one does.
type Repository interface {
	Add(ctx context.Context, fav models.Favorite) error

	// DeleteByUserID removes every record for userID and reports how many went.
	DeleteByUserID(ctx context.Context, userID string) (int64, error)

	// GetAll returns records ordered by creation time.
	GetAll(ctx context.Context) ([]models.Favorite, error)

	Clear(ctx context.Context) error
}
