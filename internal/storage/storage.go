// Package storage is the durable string-keyed blob store the year data
// persists into. Each write replaces the whole value for its key; there
// is no partial write and no batching.
package storage

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by Load when a key has never been stored.
var ErrNotFound = errors.New("storage: key not found")

// Backend is a string-keyed blob store.
type Backend interface {
	Load(key string) ([]byte, error)
	Store(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// MemoryBackend keeps blobs in memory. Used by tests and ephemeral runs.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

func (m *MemoryBackend) Load(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemoryBackend) Store(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

func (m *MemoryBackend) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryBackend) Close() error { return nil }
