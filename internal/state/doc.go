// Package state holds the directory's single source of truth and the
// actions that move it between loading, loaded and offline.
//
// A Store combines three things: the remote page source, the local
// repositories and an in-memory Snapshot. Actions never return errors.
// Failures are written into the Snapshot (IsError, ErrorMessage) and
// the logger, and a failed fetch falls back to whatever is cached.
//
// The store lock is held only while the Snapshot is read or written, never
// across network or database calls. Two overlapping FetchUsers calls may
// therefore both commit, and the later commit wins for page 1 while later
// pages append in completion order.
package state
