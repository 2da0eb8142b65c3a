// Package users provides the local persistence layer for directory users.
//
// # Overview
//
// Each user is stored as a JSON document in the data column. The fields the
// client may want to look up by (email, gender, nat, first and last name) are
// duplicated into indexed columns on every write.
//
// SQLiteRepository works over dbx.DBTX, so the same code runs against the
// database directly or inside a transaction opened by the repository manager.
//
// Typical Usage
//
//	repo := users.NewSQLiteRepository(db)
//	_ = repo.BulkPut(ctx, page)
//	all, _ := repo.GetAll(ctx)
//	_ = repo.Clear(ctx)
package users
