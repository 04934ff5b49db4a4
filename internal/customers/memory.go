package customers

import (
	"context"
	"sync"
	"time"

	"github.com/panesgr/chatbot-backend/internal/stores"
)

// MemoryStore keeps customer profiles in process memory. It is the default
// backend when no database is configured; profiles are lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]*Customer
	now      func() time.Time
}

// NewMemoryStore constructs an empty in-memory customer store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles: make(map[string]*Customer),
		now:      time.Now,
	}
}

// GetOrCreate returns a copy of the profile for the identity, creating one
// assigned to the default store on first contact.
func (s *MemoryStore) GetOrCreate(_ context.Context, identity string) (*Customer, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.profiles[identity]; ok {
		return clone(existing), false, nil
	}

	now := s.now()
	created := &Customer{
		Identity:   identity,
		StoreID:    stores.DefaultStoreID,
		CreatedAt:  now,
		LastSeenAt: now,
	}
	s.profiles[identity] = created
	return clone(created), true, nil
}

// Save overwrites the stored profile with the given one.
func (s *MemoryStore) Save(_ context.Context, customer *Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[customer.Identity] = clone(customer)
	return nil
}

// All returns copies of every stored profile.
func (s *MemoryStore) All(_ context.Context) ([]*Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Customer, 0, len(s.profiles))
	for _, c := range s.profiles {
		out = append(out, clone(c))
	}
	return out, nil
}

func clone(c *Customer) *Customer {
	copied := *c
	copied.Subscriptions = append([]Subscription(nil), c.Subscriptions...)
	return &copied
}
