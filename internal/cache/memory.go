package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MemoryStore is a mutex-guarded map from cache key to Entry. Stale entries
// stay resident until overwritten or cleared; there is no background sweep
// and no size bound.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]Entry),
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.items[key]
	return e, ok
}

func (s *MemoryStore) Set(ctx context.Context, key string, payload json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = Entry{
		Payload:  payload,
		StoredAt: time.Now(),
	}
}

func (s *MemoryStore) Clear(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]Entry)
	return 0
}

func (s *MemoryStore) Size(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
