package memory

import (
	"context"
	"sync"

	"github.com/aretw0/espalier/pkg/domain"
)

// Store implements ports.ProgressStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.Progress
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Progress),
	}
}

// Save persists the progress in memory. The snapshot is copied so the
// caller cannot mutate stored state through a shared reference.
func (s *Store) Save(ctx context.Context, sessionID string, progress domain.Progress) error {
	copied := progress.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = copied
	return nil
}

// Load retrieves the progress from memory, copied on read for the same
// isolation reason.
func (s *Store) Load(ctx context.Context, sessionID string) (domain.Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	progress, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return progress.Clone(), nil
}

// Delete removes the progress.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns active sessions.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.data))
	for id := range s.data {
		sessions = append(sessions, id)
	}
	return sessions, nil
}
