// Package cache holds the rendered public content snapshot so page views
// do not rebuild it on every request.
package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Store is a byte cache with expiry.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is an in-process Store.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemory creates an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry), now: time.Now}
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		delete(m.entries, key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

// Set implements Store. ttl <= 0 keeps the value until deleted.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.entries[key] = entry
	return nil
}

// Delete implements Store.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// Snapshot caches the JSON encoding of one value produced by build.
type Snapshot[T any] struct {
	store Store
	key   string
	ttl   time.Duration
	build func(ctx context.Context) (T, error)
}

// NewSnapshot creates a snapshot cached under key.
func NewSnapshot[T any](store Store, key string, ttl time.Duration, build func(ctx context.Context) (T, error)) *Snapshot[T] {
	return &Snapshot[T]{store: store, key: key, ttl: ttl, build: build}
}

// Get returns the cached value, rebuilding it on a miss. Cache failures
// fall through to build.
func (s *Snapshot[T]) Get(ctx context.Context) (T, error) {
	if raw, ok, err := s.store.Get(ctx, s.key); err == nil && ok {
		var value T
		if err := json.Unmarshal(raw, &value); err == nil {
			return value, nil
		}
	}

	value, err := s.build(ctx)
	if err != nil {
		return value, err
	}
	if raw, err := json.Marshal(value); err == nil {
		_ = s.store.Set(ctx, s.key, raw, s.ttl)
	}
	return value, nil
}

// Invalidate drops the cached value.
func (s *Snapshot[T]) Invalidate(ctx context.Context) error {
	return s.store.Delete(ctx, s.key)
}
