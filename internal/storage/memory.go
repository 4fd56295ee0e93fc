package storage

import (
	"context"
	"sync"
)

// MemoryKV is an in-memory KV used in tests and as a degraded fallback when
// no store file can be opened. WriteErr, when set, makes every Put fail with
// that error, which lets tests exercise quota-style failures.
type MemoryKV struct {
	mu       sync.Mutex
	data     map[string][]byte
	WriteErr error
}

// NewMemoryKV returns an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

// Get returns the value for key, or ok=false when absent.
func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

// Put writes or replaces the value for key.
func (m *MemoryKV) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

// Delete removes key; absent keys are a no-op.
func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryKV) Close() error { return nil }
