package session

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	CartID    string
	ExpiresAt time.Time
}

type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemory returns a process-local Store. Entries expire ttl after their last
// write.
func NewMemory(ttl time.Duration) Store {
	return newMemory(ttl, time.Now)
}

func newMemory(ttl time.Duration, now func() time.Time) *memoryStore {
	return &memoryStore{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     now,
	}
}

func (m *memoryStore) CartID(_ context.Context, sessionID string) (string, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[sessionID]
	m.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if m.now().After(e.ExpiresAt) {
		m.mu.Lock()
		delete(m.entries, sessionID)
		m.mu.Unlock()
		return "", false, nil
	}
	return e.CartID, true, nil
}

func (m *memoryStore) SetCartID(_ context.Context, sessionID, cartID string) error {
	now := m.now()
	m.mu.Lock()
	m.entries[sessionID] = entry{CartID: cartID, ExpiresAt: now.Add(m.ttl)}
	m.sweepLocked(now)
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	delete(m.entries, sessionID)
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) sweepLocked(now time.Time) {
	for id, e := range m.entries {
		if now.After(e.ExpiresAt) {
			delete(m.entries, id)
		}
	}
}
