// Package memstore implements the device key-value store in memory.
// It is used by tests and by ephemeral sessions that must not touch disk.
package memstore

import (
	"encoding/json"
	"sync"

	"github.com/hoyapp/hoygo/internal/store"
)

// MemStore is a map-backed store.KeyValue implementation.
type MemStore struct {
	mu    sync.RWMutex
	items map[string]json.RawMessage
}

// New creates an empty in-memory store.
func New() *MemStore {
	return &MemStore{items: map[string]json.RawMessage{}}
}

// Get decodes the value stored under key into out.
func (ms *MemStore) Get(key string, out any) error {
	ms.mu.RLock()
	raw, ok := ms.items[key]
	ms.mu.RUnlock()

	if !ok {
		return store.ErrNotFound
	}

	return json.Unmarshal(raw, out)
}

// Set stores value under key.
func (ms *MemStore) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	ms.mu.Lock()
	ms.items[key] = raw
	ms.mu.Unlock()

	return nil
}

// Delete removes key.
func (ms *MemStore) Delete(key string) error {
	ms.mu.Lock()
	delete(ms.items, key)
	ms.mu.Unlock()

	return nil
}

// Keys returns all stored keys.
func (ms *MemStore) Keys() []string {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	keys := make([]string, 0, len(ms.items))
	for k := range ms.items {
		keys = append(keys, k)
	}

	return keys
}

// Close is a no-op for the in-memory store.
func (ms *MemStore) Close() error {
	return nil
}
