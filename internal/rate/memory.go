package rate

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	count       int
	windowStart time.Time
}

// MemoryStore is the in-process [Store]: one mutex-guarded map for the whole
// store. Call volume is low (a guardian solving a challenge), so a single lock
// is sufficient and keeps the read-decide-write sequence trivially atomic.
//
// Entries are logically expired when read after their window has elapsed.
// Physical eviction is opportunistic: once the map grows past evictThreshold,
// stale entries are swept during the next write so memory stays bounded without
// a background goroutine.
type MemoryStore struct {
	mu             sync.Mutex
	entries        map[string]*memoryEntry
	now            func() time.Time
	evictThreshold int
}

// NewMemoryStore creates a memory store. now is the clock (time.Now in
// production, a fake in tests). evictThreshold <= 0 disables sweeping.
func NewMemoryStore(now func() time.Time, evictThreshold int) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		entries:        make(map[string]*memoryEntry),
		now:            now,
		evictThreshold: evictThreshold,
	}
}

// CheckAndConsume implements [Store].
func (s *MemoryStore) CheckAndConsume(_ context.Context, identifier string, maxAttempts int, window time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	e, ok := s.entries[identifier]
	if !ok {
		s.sweepLocked(now, window)
		s.entries[identifier] = &memoryEntry{count: 1, windowStart: now}
		return true, nil
	}

	if now.Sub(e.windowStart) > window {
		e.count = 1
		e.windowStart = now
		return true, nil
	}

	if e.count >= maxAttempts {
		return false, nil
	}

	e.count++
	e.windowStart = now
	return true, nil
}

// Clear implements [Store].
func (s *MemoryStore) Clear(_ context.Context, identifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, identifier)
	return nil
}

// Len reports the number of live entries. Test hook.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

func (s *MemoryStore) sweepLocked(now time.Time, window time.Duration) {
	if s.evictThreshold <= 0 || len(s.entries) <= s.evictThreshold {
		return
	}
	for id, e := range s.entries {
		if now.Sub(e.windowStart) > window {
			delete(s.entries, id)
		}
	}
}
