package repo

import (
	"context"
	"sync"
)

// MemoryKV - хранилище в памяти процесса, для тестов и backend=memory
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ KVStore = (*MemoryKV)(nil)

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		data: make(map[string][]byte),
	}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, ErrorNotFound
	}

	// Отдаем копию, чтобы вызывающий не испортил содержимое
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

func (m *MemoryKV) Close() error {
	return nil
}
