package store

import (
	"context"
	"sort"
	"sync"

	"reticlego/pkg/model"
)

// MemoryStore is a StateStore that lives only as long as the process.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]model.Value
}

// NewMemoryStore creates an empty in-memory medium.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]model.Value)}
}

func (m *MemoryStore) GetState(_ context.Context, key string) (model.Value, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) SetState(_ context.Context, key string, val model.Value) error {
	// Round-trip through the codec so both media hand back the same shapes.
	data, err := model.Encode(val)
	if err != nil {
		return err
	}
	decoded, err := model.Decode(data)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = decoded
	return nil
}

func (m *MemoryStore) DeleteState(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryStore) ListStateKeys(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryStore) CountState(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data), nil
}

func (m *MemoryStore) Close() error { return nil }
