package state

import (
	"maps"
	"slices"

	"github.com/dmitrijs2005/userdir/internal/models"
	"github.com/dmitrijs2005/userdir/internal/view"
)

// ResultsPerPage is the fixed page size requested from the API.
const ResultsPerPage = 10

// Phase names the loading/error/offline state the flags describe.
type Phase string

const (
	PhaseIdle            Phase = "idle"
	PhaseLoading         Phase = "loading"
	PhaseLoaded          Phase = "loaded"
	PhaseErrorOnline     Phase = "error-online"
	PhaseOfflineFallback Phase = "offline-fallback"
)

// Snapshot is the canonical directory state. Values returned by Store.Snapshot
// are deep copies and safe to keep or modify.
type Snapshot struct {
	Users     []models.User
	Favorites map[string]struct{}

	IsLoading       bool
	IsError         bool
	ErrorMessage    string
	IsOffline       bool
	IsManualOffline bool

	CurrentPage    int
	TotalResults   int
	ResultsPerPage int

	SearchTerm string
	SortBy     view.SortKey
	SortOrder  view.SortOrder
}

func initialSnapshot() Snapshot {
	return Snapshot{
		Users:          []models.User{},
		Favorites:      map[string]struct{}{},
		CurrentPage:    1,
		ResultsPerPage: ResultsPerPage,
		SortBy:         view.SortByName,
		SortOrder:      view.Asc,
	}
}

func (s Snapshot) clone() Snapshot {
	dup := s
	dup.Users = slices.Clone(s.Users)
	if dup.Users == nil {
		dup.Users = []models.User{}
	}
	dup.Favorites = maps.Clone(s.Favorites)
	if dup.Favorites == nil {
		dup.Favorites = map[string]struct{}{}
	}
	return dup
}

// Criteria returns the search and sort settings for the derived view.
func (s Snapshot) Criteria() view.Criteria {
	return view.Criteria{SearchTerm: s.SearchTerm, SortBy: s.SortBy, SortOrder: s.SortOrder}
}

func (s Snapshot) IsFavorite(userID string) bool {
	_, ok := s.Favorites[userID]
	return ok
}

// FavoriteIDs returns the favorite user ids in lexical order.
func (s Snapshot) FavoriteIDs() []string {
	return slices.Sorted(maps.Keys(s.Favorites))
}

// TotalPages is ceil(TotalResults / ResultsPerPage).
func (s Snapshot) TotalPages() int {
	if s.ResultsPerPage <= 0 || s.TotalResults <= 0 {
		return 0
	}
	return (s.TotalResults + s.ResultsPerPage - 1) / s.ResultsPerPage
}

func (s Snapshot) HasNextPage() bool {
	return s.CurrentPage < s.TotalPages()
}

func (s Snapshot) HasPrevPage() bool {
	return s.CurrentPage > 1
}

// PageRange returns the 1-based indexes of the first and last result on the
// current page. Both are zero when nothing is known about the total.
func (s Snapshot) PageRange() (first, last int) {
	if s.TotalResults == 0 {
		return 0, 0
	}
	first = (s.CurrentPage-1)*s.ResultsPerPage + 1
	last = min(s.CurrentPage*s.ResultsPerPage, s.TotalResults)
	return first, last
}

// Phase maps the flags onto the loading state machine.
func (s Snapshot) Phase() Phase {
	switch {
	case s.IsLoading:
		return PhaseLoading
	case s.IsError && s.IsOffline:
		return PhaseOfflineFallback
	case s.IsError:
		return PhaseErrorOnline
	case len(s.Users) > 0:
		return PhaseLoaded
	}
	return PhaseIdle
}
