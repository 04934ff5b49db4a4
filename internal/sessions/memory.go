package sessions

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory with lazy TTL eviction.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*Session
	now      func() time.Time
}

// NewMemoryStore constructs an in-memory session store. Sessions idle for
// longer than ttl are discarded on next access; ttl <= 0 disables eviction.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// GetOrCreate returns a copy of the live session for the identity, or a
// fresh welcome-state session when none exists or the stored one expired.
func (s *MemoryStore) GetOrCreate(_ context.Context, identity string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.sessions[identity]
	if ok && !s.expired(existing) {
		copied := *existing
		return &copied, nil
	}
	if ok {
		delete(s.sessions, identity)
	}
	return New(identity), nil
}

// Save stores the session and stamps UpdatedAt.
func (s *MemoryStore) Save(_ context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session.UpdatedAt = s.now()
	copied := *session
	s.sessions[session.Identity] = &copied
	return nil
}

// Delete removes the session for the identity.
func (s *MemoryStore) Delete(_ context.Context, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, identity)
	return nil
}

func (s *MemoryStore) expired(session *Session) bool {
	if s.ttl <= 0 {
		return false
	}
	return s.now().Sub(session.UpdatedAt) > s.ttl
}
