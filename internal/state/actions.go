package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userdir/internal/models"
	"github.com/dmitrijs2005/userdir/internal/repositories/repomanager"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// FetchUsers loads one page from the remote source and caches it. Page 1
// replaces the list; later pages append. Any failure, including manual
// offline mode, is recorded in the state and the cached users are shown
// instead.
func (s *Store) FetchUsers(ctx context.Context, page int) {
	ctx, span := s.tracer.Start(ctx, "state.FetchUsers", trace.WithAttributes(attribute.Int("page", page)))
	defer span.End()

	log := s.logger.With("fetch_id", uuid.NewString(), "page", page)

	var manual bool
	s.update(func(st *Snapshot) {
		st.IsLoading = true
		st.IsError = false
		st.ErrorMessage = ""
		manual = st.IsManualOffline
	})
	defer s.update(func(st *Snapshot) { st.IsLoading = false })

	var err error
	if manual {
		err = ErrManualOffline
		log.Info(ctx, "manual offline, skipping network")
	} else {
		err = s.fetchPage(ctx, page)
	}
	if err == nil {
		log.Debug(ctx, "page fetched")
		return
	}

	if !errors.Is(err, ErrManualOffline) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Error(ctx, "fetch users failed", "err", err)
	}
	s.update(func(st *Snapshot) {
		st.IsError = true
		st.ErrorMessage = err.Error()
		st.IsOffline = true
	})
	s.LoadFromCache(ctx)
}

func (s *Store) fetchPage(ctx context.Context, page int) error {
	var perPage int
	s.read(func(st *Snapshot) { perPage = st.ResultsPerPage })

	resp, err := s.source.FetchPage(ctx, page, perPage)
	if err != nil {
		return err
	}
	users, err := models.FromRemote(resp.Results)
	if err != nil {
		return err
	}

	total := resp.Info.Results
	if total == 0 {
		total = perPage
	}
	meta := models.NewCacheMetadata(page, total, s.now())

	err = s.repos.WithTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		if err := r.Users.BulkPut(ctx, users); err != nil {
			return err
		}
		return r.Cache.Put(ctx, meta)
	})
	if err != nil {
		return fmt.Errorf("cache page %d: %w", page, err)
	}

	s.update(func(st *Snapshot) {
		if page == 1 {
			st.Users = users
			st.CurrentPage = 1
			st.TotalResults = total
			st.IsOffline = false
			return
		}
		st.Users = append(st.Users, users...)
		st.CurrentPage = page
	})
	return nil
}

// LoadFromCache shows every cached user and marks the store offline. An
// empty cache or a read failure leaves the state untouched.
func (s *Store) LoadFromCache(ctx context.Context) {
	ctx, span := s.tracer.Start(ctx, "state.LoadFromCache")
	defer span.End()

	users, err := s.repos.Users().GetAll(ctx)
	if err != nil {
		span.RecordError(err)
		s.logger.Error(ctx, "load from cache failed", "err", err)
		return
	}
	span.SetAttributes(attribute.Int("users", len(users)))
	if len(users) == 0 {
		return
	}
	s.update(func(st *Snapshot) {
		st.Users = users
		st.IsOffline = true
	})
}

// ClearCache empties all three collections and resets the listing.
// Favorites are removed along with the cache.
func (s *Store) ClearCache(ctx context.Context) {
	ctx, span := s.tracer.Start(ctx, "state.ClearCache")
	defer span.End()

	err := s.repos.WithTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		if err := r.Users.Clear(ctx); err != nil {
			return err
		}
		if err := r.Cache.Clear(ctx); err != nil {
			return err
		}
		return r.Favorites.Clear(ctx)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error(ctx, "clear cache failed", "err", err)
		return
	}

	s.update(func(st *Snapshot) {
		st.Users = []models.User{}
		st.Favorites = map[string]struct{}{}
		st.CurrentPage = 1
		st.TotalResults = 0
	})
}

// ToggleFavorite adds or removes userID from the favorites. The in-memory
// set only changes once the store write succeeds.
func (s *Store) ToggleFavorite(ctx context.Context, userID string) {
	ctx, span := s.tracer.Start(ctx, "state.ToggleFavorite")
	defer span.End()

	var was bool
	s.read(func(st *Snapshot) { _, was = st.Favorites[userID] })

	var err error
	if was {
		_, err = s.repos.Favorites().DeleteByUserID(ctx, userID)
	} else {
		err = s.repos.Favorites().Add(ctx, models.NewFavorite(userID, s.now()))
	}
	span.SetAttributes(attribute.Bool("favorite", !was))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error(ctx, "toggle favorite failed", "user_id", userID, "err", err)
		return
	}

	s.update(func(st *Snapshot) {
		favs := make(map[string]struct{}, len(st.Favorites)+1)
		for id := range st.Favorites {
			favs[id] = struct{}{}
		}
		if was {
			delete(favs, userID)
		} else {
			favs[userID] = struct{}{}
		}
		st.Favorites = favs
	})
}

// LoadFavorites replaces the in-memory favorite set with the stored one.
func (s *Store) LoadFavorites(ctx context.Context) {
	favs, err := s.repos.Favorites().GetAll(ctx)
	if err != nil {
		s.logger.Error(ctx, "load favorites failed", "err", err)
		return
	}
	set := make(map[string]struct{}, len(favs))
	for _, f := range favs {
		set[f.UserID] = struct{}{}
	}
	s.update(func(st *Snapshot) { st.Favorites = set })
}

// Bootstrap runs the startup sequence: favorites first, then page 1.
func (s *Store) Bootstrap(ctx context.Context) {
	s.LoadFavorites(ctx)
	s.FetchUsers(ctx, 1)
}

// Retry fetches the current page again.
func (s *Store) Retry(ctx context.Context) {
	var page int
	s.read(func(st *Snapshot) { page = st.CurrentPage })
	s.FetchUsers(ctx, page)
}

// Refresh clears the cache and starts over from page 1.
func (s *Store) Refresh(ctx context.Context) {
	s.ClearCache(ctx)
	s.FetchUsers(ctx, 1)
}
