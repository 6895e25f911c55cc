package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCache is an in-process Cache used when Redis is disabled and in tests.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *MemoryCache) lookup(key string) (memoryEntry, bool) {
	e, ok := m.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if e.expired(m.now()) {
		delete(m.entries, key)
		return memoryEntry{}, false
	}
	return e, true
}

func (m *MemoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	e, ok := m.lookup(key)
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(e.data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	e := memoryEntry{data: data}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

func (m *MemoryCache) Ping(context.Context) error { return nil }

func (m *MemoryCache) Increment(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	e, ok := m.lookup(key)
	if ok {
		parsed, err := strconv.ParseInt(string(e.data), 10, 64)
		if err != nil {
			return 0, err
		}
		n = parsed
	}
	n++
	e.data = []byte(strconv.FormatInt(n, 10))
	m.entries[key] = e
	return n, nil
}

func (m *MemoryCache) Expire(_ context.Context, key string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.lookup(key)
	if !ok {
		return nil
	}
	e.expiresAt = m.now().Add(ttl)
	m.entries[key] = e
	return nil
}

// TTL mirrors Redis semantics: -2 for a missing key, -1 for a key without expiry.
func (m *MemoryCache) TTL(_ context.Context, key string) (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.lookup(key)
	if !ok {
		return -2, nil
	}
	if e.expiresAt.IsZero() {
		return -1, nil
	}
	return e.expiresAt.Sub(m.now()), nil
}
