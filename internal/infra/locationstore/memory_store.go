package locationstore

import (
	"context"
	"sync"
	"time"

	"github.com/Ahsan786123/solar-time-app/internal/domain/location"
)

type fixRecord struct {
	fix       location.Fix
	expiresAt time.Time
}

// MemoryStore keeps recent fixes in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	fixes map[string]fixRecord
	now   func() time.Time
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		fixes: make(map[string]fixRecord),
		now:   time.Now,
	}
}

// Get implements location.Store.
func (s *MemoryStore) Get(_ context.Context, key string) (location.Fix, bool, error) {
	s.mu.RLock()
	record, ok := s.fixes[key]
	s.mu.RUnlock()
	if !ok {
		return location.Fix{}, false, nil
	}
	if s.expired(record.expiresAt) {
		s.mu.Lock()
		delete(s.fixes, key)
		s.mu.Unlock()
		return location.Fix{}, false, nil
	}
	return record.fix, true, nil
}

// Save implements location.Store. A non-positive ttl keeps the fix until it
// is overwritten.
func (s *MemoryStore) Save(_ context.Context, key string, fix location.Fix, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.fixes[key] = fixRecord{fix: fix, expiresAt: exp}
	s.evictLocked()
	return nil
}

// Len reports how many fixes are held, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.fixes)
}

func (s *MemoryStore) evictLocked() {
	for key, record := range s.fixes {
		if s.expired(record.expiresAt) {
			delete(s.fixes, key)
		}
	}
}

func (s *MemoryStore) expired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(s.now())
}

var _ location.Store = (*MemoryStore)(nil)
