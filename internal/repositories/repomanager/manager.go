package repomanager

import (
	"context"

	"github.com/dmitrijs2005/userdir/internal/repositories/cachemeta"
	"github.com/dmitrijs2005/userdir/internal/repositories/favorites"
	"github.com/dmitrijs2005/userdir/internal/repositories/users"
)

// Repositories groups the three collections bound to one database handle.
type Repositories struct {
	Users     users.Repository
	Favorites favorites.Repository
	Cache     cachemeta.Repository
}

// RepositoryManager is the persistent store adapter used by the coordinator.
// Repositories returned outside WithTx share no atomicity; writes made through
// the Repositories passed to fn commit or roll back together.
type RepositoryManager interface {
	Users() users.Repository
	Favorites() favorites.Repository
	Cache() cachemeta.Repository
	WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
	Close() error
}
