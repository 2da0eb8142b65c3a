package state

import (
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/userdir/internal/logging"
	"github.com/dmitrijs2005/userdir/internal/models"
	"github.com/dmitrijs2005/userdir/internal/randomuser"
	"github.com/dmitrijs2005/userdir/internal/repositories/repomanager"
	"github.com/dmitrijs2005/userdir/internal/view"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/dmitrijs2005/userdir/internal/state"

// Store owns the directory state and the actions that change it.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot

	source randomuser.Source
	repos  repomanager.RepositoryManager
	logger logging.Logger
	tracer trace.Tracer
	now    func() time.Time

	subMu   sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

type Option func(*Store)

func WithLogger(l logging.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now for favorite ids and cache timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTracerProvider takes the action tracer from tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Store) {
		if tp != nil {
			s.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithManualOffline starts the store in manual offline mode.
func WithManualOffline(v bool) Option {
	return func(s *Store) {
		s.snapshot.IsManualOffline = v
	}
}

func New(source randomuser.Source, repos repomanager.RepositoryManager, opts ...Option) *Store {
	s := &Store{
		snapshot: initialSnapshot(),
		source:   source,
		repos:    repos,
		logger:   logging.Discard(),
		tracer:   otel.Tracer(tracerName),
		now:      time.Now,
		subs:     map[int]chan struct{}{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.clone()
}

// Subscribe returns a channel that receives a signal after every state
// change. Signals coalesce; a slow reader sees at least the latest one.
// The returned func unsubscribes and closes the channel.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
			close(ch)
		})
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (s *Store) update(fn func(st *Snapshot)) {
	s.mu.Lock()
	fn(&s.snapshot)
	s.mu.Unlock()
	s.notify()
}

func (s *Store) read(fn func(st *Snapshot)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.snapshot)
}

// FilteredAndSortedUsers is the derived view of the current users under the
// current search and sort settings.
func (s *Store) FilteredAndSortedUsers() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view.FilterAndSort(s.snapshot.Users, s.snapshot.Criteria())
}

func (s *Store) SetUsers(users []models.User) {
	dup := slices.Clone(users)
	if dup == nil {
		dup = []models.User{}
	}
	s.update(func(st *Snapshot) { st.Users = dup })
}

func (s *Store) AddUsers(users []models.User) {
	s.update(func(st *Snapshot) { st.Users = append(st.Users, users...) })
}

func (s *Store) SetLoading(v bool) {
	s.update(func(st *Snapshot) { st.IsLoading = v })
}

// SetError records msg as the current error. An empty msg clears it.
func (s *Store) SetError(msg string) {
	s.update(func(st *Snapshot) {
		st.ErrorMessage = msg
		st.IsError = msg != ""
	})
}

func (s *Store) SetOffline(v bool) {
	s.update(func(st *Snapshot) { st.IsOffline = v })
}

func (s *Store) SetManualOffline(v bool) {
	s.update(func(st *Snapshot) { st.IsManualOffline = v })
}

// SetPagination sets the current page and, when given, the total result count.
func (s *Store) SetPagination(page int, total ...int) {
	s.update(func(st *Snapshot) {
		st.CurrentPage = page
		if len(total) > 0 {
			st.TotalResults = total[0]
		}
	})
}

func (s *Store) SetSearchTerm(term string) {
	s.update(func(st *Snapshot) { st.SearchTerm = term })
}

func (s *Store) SetSortBy(key view.SortKey) {
	s.update(func(st *Snapshot) { st.SortBy = key })
}

func (s *Store) SetSortOrder(order view.SortOrder) {
	s.update(func(st *Snapshot) { st.SortOrder = order })
}
