package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"fashionmag-backend/internal/domains/content/model"
	"fashionmag-backend/internal/shared/apperror"
)

// MemoryRepository keeps entries in process, one map per kind
type MemoryRepository struct {
	mu      sync.RWMutex
	entries map[model.Kind]map[uuid.UUID]model.Entry
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	entries := make(map[model.Kind]map[uuid.UUID]model.Entry, len(model.Kinds))
	for _, k := range model.Kinds {
		entries[k] = make(map[uuid.UUID]model.Entry)
	}
	return &MemoryRepository{entries: entries}
}

func (m *MemoryRepository) Create(_ context.Context, e model.Entry, limit int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bucket := m.entries[e.Kind()]
	if limit > 0 && len(bucket) >= limit {
		return capacityError(e.Kind(), limit)
	}
	bucket[e.GetMeta().ID] = e.Clone()
	return nil
}

func (m *MemoryRepository) Get(_ context.Context, kind model.Kind, id uuid.UUID) (model.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[kind][id]
	if !ok {
		return nil, notFound(kind)
	}
	return e.Clone(), nil
}

func (m *MemoryRepository) Update(_ context.Context, e model.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bucket := m.entries[e.Kind()]
	if _, ok := bucket[e.GetMeta().ID]; !ok {
		return notFound(e.Kind())
	}
	bucket[e.GetMeta().ID] = e.Clone()
	return nil
}

func (m *MemoryRepository) Delete(_ context.Context, kind model.Kind, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[kind][id]; !ok {
		return notFound(kind)
	}
	delete(m.entries[kind], id)
	return nil
}

func (m *MemoryRepository) List(_ context.Context, kind model.Kind, activeOnly bool) ([]model.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Entry, 0, len(m.entries[kind]))
	for _, e := range m.entries[kind] {
		if activeOnly && !isActive(e) {
			continue
		}
		out = append(out, e.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return displayLess(out[i], out[j]) })
	return out, nil
}

func (m *MemoryRepository) Count(ctx context.Context, kind model.Kind, activeOnly bool) (int, error) {
	entries, err := m.List(ctx, kind, activeOnly)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

func isActive(e model.Entry) bool {
	a, ok := e.(model.Activatable)
	return !ok || a.Active()
}

func order(e model.Entry) int {
	switch v := e.(type) {
	case *model.HeroSlide:
		return v.Order
	case *model.Advertisement:
		return v.Order
	}
	return 0
}

// displayLess mirrors the ORDER BY clauses of the postgres repository
func displayLess(a, b model.Entry) bool {
	ma, mb := a.GetMeta(), b.GetMeta()
	if a.Kind().Orderable() {
		if oa, ob := order(a), order(b); oa != ob {
			return oa < ob
		}
		return ma.ID.String() < mb.ID.String()
	}
	if !ma.CreatedAt.Equal(mb.CreatedAt) {
		return ma.CreatedAt.After(mb.CreatedAt)
	}
	return ma.ID.String() < mb.ID.String()
}

func notFound(kind model.Kind) *apperror.Error {
	return apperror.NotFound(string(kind))
}

func capacityError(kind model.Kind, limit int) *apperror.Error {
	return apperror.Capacity(fmt.Sprintf("%s collection is full (max %d)", kind, limit), limit)
}
