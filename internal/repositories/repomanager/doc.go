// Package repomanager opens the local directory database and hands out the
// users, favorites and cache repositories.
//
// # Overview
//
// Open resolves a path into a modernc.org/sqlite DSN, applies the embedded
// goose migrations (schema v1) and returns a SQLiteRepositoryManager. The
// manager exposes repositories bound to the database for standalone calls and
// WithTx for groups of writes that must land together, such as the
// users + cache write after a page fetch or the three-collection clear.
//
// Typical Usage
//
//	m, err := repomanager.Open(ctx, "/home/me/.local/share/userdir/userdir.db")
//	if err != nil {
//		return err
//	}
//	defer m.Close()
//
//	err = m.WithTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
//		if err := r.Users.BulkPut(ctx, page); err != nil {
//			return err
//		}
//		return r.Cache.Put(ctx, meta)
//	})
//
// A call made through m.Users() while a WithTx callback is running would wait
// for the single pooled connection; callbacks must only use the Repositories
// they receive.
package repomanager
