package store

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/importer"
	"github.com/alexanderramin/canteiro/internal/logging"
	"github.com/alexanderramin/canteiro/internal/metrics"
	"github.com/alexanderramin/canteiro/internal/tracking"
	"go.uber.org/zap"
)

// ErrStaleSnapshot is returned when a snapshot was requested under a read
// scope that has since changed.
var ErrStaleSnapshot = errors.New("snapshot belongs to a superseded read scope")

// Action is a state transition accepted by Session.Dispatch.
type Action interface {
	apply(s *Session)
}

// SetProjects replaces the whole collection.
type SetProjects struct {
	Projects []domain.Project
}

// SetFilters replaces the filter criteria.
type SetFilters struct {
	Criteria tracking.Criteria
}

// SetCurrentUser replaces the current user. When the derived read scope
// changes the collection is cleared and the session goes back to loading
// until a snapshot for the new scope arrives.
type SetCurrentUser struct {
	User *domain.User
}

func (a SetProjects) apply(s *Session) {
	s.projects = slices.Clone(a.Projects)
	s.loading = false
}

func (a SetFilters) apply(s *Session) {
	s.filters = a.Criteria
}

func (a SetCurrentUser) apply(s *Session) {
	var u *domain.User
	if a.User != nil {
		cp := *a.User
		u = &cp
	}
	s.user = u

	scope := domain.ScopeFor(u)
	if !scope.Equal(s.scope) {
		s.scope = scope
		s.generation++
		s.projects = nil
		s.loading = true
	}
}

// State is a point-in-time copy of the session.
type State struct {
	Projects []domain.Project
	Filters  tracking.Criteria
	User     *domain.User
	Scope    domain.ReadScope
	Loading  bool
}

// SnapshotToken ties a pending snapshot to the read scope it was requested
// under.
type SnapshotToken struct {
	generation uint64
	Scope      domain.ReadScope
}

// Session owns the client-side application state. All transitions go
// through Dispatch or ApplySnapshot, which apply one update at a time.
type Session struct {
	mu sync.RWMutex

	projects   []domain.Project
	filters    tracking.Criteria
	user       *domain.User
	scope      domain.ReadScope
	generation uint64
	loading    bool

	subscribers map[int]chan struct{}
	nextSub     int

	loc    *time.Location
	logger *zap.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithLocation sets the zone used for calendar-day filters.
func WithLocation(loc *time.Location) Option {
	return func(s *Session) { s.loc = loc }
}

// NewSession returns an empty session with no user, which reads nothing.
func NewSession(opts ...Option) *Session {
	s := &Session{
		scope:       domain.ScopeNone,
		subscribers: make(map[int]chan struct{}),
		loc:         time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrNop(s.logger)
	return s
}

// Dispatch applies a single action and notifies subscribers.
func (s *Session) Dispatch(a Action) {
	s.mu.Lock()
	a.apply(s)
	s.logger.Debug("session action applied",
		zap.String("action", actionName(a)),
		zap.Int("projects", len(s.projects)),
		zap.Uint64("generation", s.generation),
	)
	s.mu.Unlock()
	s.notify()
}

// BeginSnapshot returns a token for a snapshot requested under the current
// read scope.
func (s *Session) BeginSnapshot() SnapshotToken {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SnapshotToken{generation: s.generation, Scope: s.scope}
}

// ApplySnapshot normalizes stored and replaces the collection with it. A nil
// snapshot marks the session as loading and keeps the current collection.
// Snapshots taken under a superseded scope are discarded with
// ErrStaleSnapshot.
func (s *Session) ApplySnapshot(token SnapshotToken, stored []importer.StoredProject) error {
	s.mu.Lock()
	if token.generation != s.generation {
		s.mu.Unlock()
		metrics.RecordSnapshot("stale", 0)
		s.logger.Debug("stale snapshot discarded", zap.Uint64("token", token.generation), zap.Uint64("current", s.generation))
		return ErrStaleSnapshot
	}
	if stored == nil {
		s.loading = true
		s.mu.Unlock()
		metrics.RecordSnapshot("loading", 0)
		s.notify()
		return nil
	}

	s.projects = importer.NormalizeAll(stored)
	s.loading = false
	n := len(s.projects)
	s.mu.Unlock()

	metrics.RecordSnapshot("applied", n)
	s.logger.Debug("snapshot applied", zap.Int("projects", n))
	s.notify()
	return nil
}

// State returns a copy of the current state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var u *domain.User
	if s.user != nil {
		cp := *s.user
		u = &cp
	}
	return State{
		Projects: slices.Clone(s.projects),
		Filters:  s.filters,
		User:     u,
		Scope:    s.scope,
		Loading:  s.loading,
	}
}

// Loading reports whether the session is waiting for its first snapshot.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Filtered applies the current filters at now.
func (s *Session) Filtered(now time.Time) []domain.Project {
	s.mu.RLock()
	projects, criteria := s.projects, s.filters
	s.mu.RUnlock()

	if criteria.Location == nil {
		criteria.Location = s.loc
	}
	return tracking.Filter(projects, criteria, now)
}

// Subscribe returns a channel signalled after every transition, plus a
// function that cancels the subscription. Signals coalesce: a slow reader
// sees at most one pending notification.
func (s *Session) Subscribe() (<-chan struct{}, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan struct{}, 1)
	s.subscribers[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(c)
		}
	}
}

func (s *Session) notify() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func actionName(a Action) string {
	switch a.(type) {
	case SetProjects:
		return "SET_PROJECTS"
	case SetFilters:
		return "SET_FILTERS"
	case SetCurrentUser:
		return "SET_CURRENT_USER"
	}
	return "UNKNOWN"
}
