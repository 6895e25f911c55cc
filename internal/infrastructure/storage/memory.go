package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemoryStorage is the object store used when MinIO is disabled
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
	baseURL string
}

func NewMemoryStorage(baseURL string) *MemoryStorage {
	return &MemoryStorage{
		objects: make(map[string][]byte),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *MemoryStorage) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = append([]byte(nil), data...)
	return fmt.Sprintf("%s/%s", s.baseURL, key), nil
}

func (s *MemoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *MemoryStorage) DeleteByPrefix(_ context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.objects {
		if strings.HasPrefix(key, prefix) {
			delete(s.objects, key)
		}
	}
	return nil
}

// Keys lists stored keys in order
func (s *MemoryStorage) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.objects))
	for key := range s.objects {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
