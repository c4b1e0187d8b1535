// Package session keeps per-session presentation state in memory. Nothing in
// the storage or calculation layers reads it.
package session

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rpggio/brewlog/internal/domain/pour"
)

// Store holds session states keyed by session id. It is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*State
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// NewStore creates a store whose entries expire after ttl of inactivity.
// A non-positive ttl keeps entries until Forget.
func NewStore(ttl time.Duration, logger *slog.Logger) *Store {
	return &Store{
		sessions: make(map[string]*State),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// WithClock overrides the clock used for expiry.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Get returns a copy of the session state, creating it if needed.
func (s *Store) Get(id string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touch(id).clone()
}

// SelectBean records the bean the session is brewing.
func (s *Store) SelectBean(id string, beanID int64) (State, error) {
	if beanID <= 0 {
		return State{}, fmt.Errorf("%w: bean id must be positive", ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.touch(id)
	st.SelectedBeanID = &beanID
	return st.clone(), nil
}

// ClearBean forgets the selected bean.
func (s *Store) ClearBean(id string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.touch(id)
	st.SelectedBeanID = nil
	return st.clone()
}

// AddStep appends a pour 30 seconds after the last one.
func (s *Store) AddStep(id string, amount float64) (State, error) {
	return s.updateDraft(id, func(d pour.Schedule) (pour.Schedule, error) {
		return d.Append(amount)
	})
}

// EditStep replaces step i of the draft.
func (s *Store) EditStep(id string, i int, amount float64, label string) (State, error) {
	return s.updateDraft(id, func(d pour.Schedule) (pour.Schedule, error) {
		return d.Edit(i, amount, label)
	})
}

// RemoveStep drops step i of the draft.
func (s *Store) RemoveStep(id string, i int) (State, error) {
	return s.updateDraft(id, func(d pour.Schedule) (pour.Schedule, error) {
		return d.Remove(i)
	})
}

// ResetDraft restores the draft to a single bloom pour.
func (s *Store) ResetDraft(id string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.touch(id)
	st.Draft = pour.NewDraft()
	return st.clone()
}

// Forget drops a session.
func (s *Store) Forget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, normalizeID(id))
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
	return len(s.sessions)
}

func (s *Store) updateDraft(id string, edit func(pour.Schedule) (pour.Schedule, error)) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.touch(id)
	draft, err := edit(st.Draft)
	if err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	st.Draft = draft
	return st.clone(), nil
}

// touch prunes idle sessions and returns the live state for id. Callers hold mu.
func (s *Store) touch(id string) *State {
	s.prune()
	id = normalizeID(id)
	st, ok := s.sessions[id]
	if !ok {
		st = &State{SessionID: id, Draft: pour.NewDraft()}
		s.sessions[id] = st
		if s.logger != nil {
			s.logger.Debug("session started", "session_id", id)
		}
	}
	st.LastActivity = s.now()
	return st
}

func (s *Store) prune() {
	if s.ttl <= 0 {
		return
	}
	cutoff := s.now().Add(-s.ttl)
	for id, st := range s.sessions {
		if st.LastActivity.Before(cutoff) {
			delete(s.sessions, id)
			if s.logger != nil {
				s.logger.Debug("session expired", "session_id", id)
			}
		}
	}
}

func normalizeID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return DefaultID
	}
	return id
}
