package keyvalue

import (
	"context"
	"path"
	"sync"
	"time"
)

// MemoryStore is an in-process Store used by tests and local development.
// TTLs are honored lazily on read.
type MemoryStore struct {
	mu      sync.RWMutex
	values  map[string]string
	expires map[string]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values:  make(map[string]string),
		expires: make(map[string]time.Time),
	}
}

func (m *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	value, ok := m.values[key]
	deadline, hasDeadline := m.expires[key]
	m.mu.RUnlock()

	if !ok {
		return "", ErrNotFound
	}
	if hasDeadline && time.Now().After(deadline) {
		m.mu.Lock()
		delete(m.values, key)
		delete(m.expires, key)
		m.mu.Unlock()
		return "", ErrNotFound
	}
	return value, nil
}

func (m *MemoryStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	delete(m.expires, key)
	return nil
}

func (m *MemoryStore) SetTTL(ctx context.Context, key, value string, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	if expiration > 0 {
		m.expires[key] = time.Now().Add(expiration)
	} else {
		delete(m.expires, key)
	}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.values, key)
		delete(m.expires, key)
	}
	return nil
}

func (m *MemoryStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var keys []string
	for key := range m.values {
		matched, err := path.Match(pattern, key)
		if err != nil {
			return nil, err
		}
		if matched {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}
