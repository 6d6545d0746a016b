package identity

import (
	"context"
	"sync"

	"github.com/njprem/ExploreNusa_BackEnd/internal/repository/ports"
)

// MemoryStore is a process-local SessionStore.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string]map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, clientID, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.slots[clientID][key]
	if !ok {
		return "", ports.ErrKeyNotFound
	}
	return value, nil
}

func (m *MemoryStore) Set(_ context.Context, clientID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	slot, ok := m.slots[clientID]
	if !ok {
		slot = make(map[string]string)
		m.slots[clientID] = slot
	}
	slot[key] = value
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, clientID string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	slot := m.slots[clientID]
	for _, key := range keys {
		delete(slot, key)
	}
	if len(slot) == 0 {
		delete(m.slots, clientID)
	}
	return nil
}

var _ ports.SessionStore = (*MemoryStore)(nil)
