// Package storage provides session and blob persistence implementations.
package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/hammamikhairi/ottodough/internal/domain"
	"github.com/hammamikhairi/ottodough/internal/logger"
)

// Compile-time interface check.
var _ domain.SessionStore = (*MemoryStore)(nil)

// MemoryStore keeps calculator sessions in a map. Safe for concurrent
// access. Sessions are deep-copied on save and load: a loaded session
// shares no memory with the stored one.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	revision uint64
	log      *logger.Logger
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*domain.Session),
		log:      log,
	}
}

// Revision increases on every successful write. Readers polling the store
// can compare revisions to skip unchanged snapshots.
func (s *MemoryStore) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Save stores a copy of session, replacing any previous version.
func (s *MemoryStore) Save(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = cloneSession(session)
	s.revision++
	s.log.Debug("saved session %s rev=%d (flours=%d, %s)",
		session.ID, s.revision, len(session.Ingredients.Flours), session.Status)
	return nil
}

// Load returns a copy of the session with the given ID.
func (s *MemoryStore) Load(ctx context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		s.log.Debug("session not found: %s", id)
		return nil, domain.ErrNotFound
	}
	return cloneSession(sess), nil
}

// Delete removes a session.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.sessions, id)
	s.revision++
	s.log.Debug("deleted session %s", id)
	return nil
}

// ListActive returns copies of all active sessions ordered by start time,
// then ID.
func (s *MemoryStore) ListActive(ctx context.Context) ([]*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		if sess.Status == domain.SessionActive {
			out = append(out, cloneSession(sess))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StartedAt.Before(out[j].StartedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func cloneSession(in *domain.Session) *domain.Session {
	out := *in
	out.Ingredients.Flours = append([]domain.FlourLine(nil), in.Ingredients.Flours...)
	return &out
}
