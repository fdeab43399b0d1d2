package cache

import (
	"sync"
	"time"
)

// Store is the capability a read-through consumer needs. The service must
// behave identically when handed the no-op store: cache population and
// invalidation are advisory, never a correctness dependency.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
	Delete(key string)
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

// InMemoryStore is a thread-safe in-memory Store with lazy expiration.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// NewInMemoryStore creates an empty InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{entries: make(map[string]*entry)}
}

// Get returns the cached value, deleting and missing on expired entries.
func (s *InMemoryStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false
	}
	return e.data, true
}

func (s *InMemoryStore) Set(key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	s.mu.Lock()
	s.entries[key] = &entry{data: value, expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()
}

func (s *InMemoryStore) Delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// NoopStore never hits. It is what the service runs with when caching is
// disabled.
type NoopStore struct{}

func (NoopStore) Get(string) ([]byte, bool)         { return nil, false }
func (NoopStore) Set(string, []byte, time.Duration) {}
func (NoopStore) Delete(string)                     {}

var _ Store = (*InMemoryStore)(nil)
var _ Store = NoopStore{}
