package docstore

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore keeps documents in process memory. Used when no object storage
// is configured; documents then live only as long as the server does.
type MemoryStore struct {
	mu   sync.RWMutex
	byID map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string][]byte)}
}

func (m *MemoryStore) Put(_ context.Context, conversationID, name, _ string, data []byte) (string, error) {
	key := objectKey(conversationID, name)
	cp := make([]byte, len(data))
	copy(cp, data)
	m.mu.Lock()
	m.byID[key] = cp
	m.mu.Unlock()
	return key, nil
}

func (m *MemoryStore) Get(_ context.Context, ref string) ([]byte, error) {
	m.mu.RLock()
	data, ok := m.byID[strings.TrimSpace(ref)]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}
