package store

import (
	"context"
	"sync"
)

// MemoryBackend keeps the document in process memory. Used in tests and
// as a throwaway demo backend.
type MemoryBackend struct {
	mu      sync.RWMutex
	payload []byte
	ok      bool
}

func NewMemoryBackend() *MemoryBackend { return &MemoryBackend{} }

func (m *MemoryBackend) Load(ctx context.Context) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.ok {
		return nil, false, nil
	}
	cp := make([]byte, len(m.payload))
	copy(cp, m.payload)
	return cp, true, nil
}

func (m *MemoryBackend) Save(ctx context.Context, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload = make([]byte, len(payload))
	copy(m.payload, payload)
	m.ok = true
	return nil
}

func (m *MemoryBackend) Close() error { return nil }
