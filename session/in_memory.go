package session

import (
	"sync"

	"github.com/hupe1980/scriptmesh/core"
)

// InMemoryStore is a volatile HistoryStore keeping each role's messages in a
// process local map. It is safe for concurrent access. Histories returned by
// Get are copies so callers cannot mutate internal state; the only in-place
// mutation path is Update.
type InMemoryStore struct {
	mu        sync.RWMutex
	histories map[core.Role][]core.Message
}

// NewInMemoryStore constructs an empty in‑memory history store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{histories: make(map[core.Role][]core.Message)}
}

// Get returns a copy of the role's history, creating an empty one lazily.
func (s *InMemoryStore) Get(role core.Role) ([]core.Message, error) {
	s.mu.RLock()
	msgs, ok := s.histories[role]
	if ok {
		out := make([]core.Message, len(msgs))
		copy(out, msgs)
		s.mu.RUnlock()
		return out, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.createHistoryLocked(role)
	return []core.Message{}, nil
}

// Append adds msgs to the end of the role's history in a single step.
func (s *InMemoryStore) Append(role core.Role, msgs ...core.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createHistoryLocked(role)
	s.histories[role] = append(s.histories[role], msgs...)
	return nil
}

// Exists reports whether a history was ever created for the role.
func (s *InMemoryStore) Exists(role core.Role) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.histories[role]
	return ok
}

// Update runs fn on the live history under the write lock. Changes fn makes
// to elements of the slice are kept; the slice length is not.
func (s *InMemoryStore) Update(role core.Role, fn func(msgs []core.Message) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs, ok := s.histories[role]
	if !ok {
		return core.ErrSessionNotFound
	}
	return fn(msgs)
}

// Len returns the number of messages recorded for the role.
func (s *InMemoryStore) Len(role core.Role) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.histories[role])
}

// createHistoryLocked allocates an empty history if none exists; caller must
// already hold the write lock.
func (s *InMemoryStore) createHistoryLocked(role core.Role) {
	if _, ok := s.histories[role]; !ok {
		s.histories[role] = []core.Message{}
	}
}
