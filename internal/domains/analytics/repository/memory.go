package repository

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"fashionmag-backend/internal/domains/analytics/model"
)

const dateLayout = "2006-01-02"

// MemoryRepository keeps events in insertion order
type MemoryRepository struct {
	mu     sync.RWMutex
	events []model.Event
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Insert(_ context.Context, e *model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *e)
	return nil
}

func (r *MemoryRepository) CountSince(_ context.Context, since time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for i := range r.events {
		if !r.events[i].CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepository) UniqueSessionsSince(_ context.Context, since time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for i := range r.events {
		if !r.events[i].CreatedAt.Before(since) {
			seen[r.events[i].SessionID] = struct{}{}
		}
	}
	return len(seen), nil
}

func (r *MemoryRepository) TopTargets(_ context.Context, t model.EventType, limit int) ([]model.TargetCount, error) {
	r.mu.RLock()
	counts := make(map[uuid.UUID]int)
	for i := range r.events {
		e := &r.events[i]
		if e.Type != t {
			continue
		}
		if id := e.Target(); id != nil {
			counts[*id]++
		}
	}
	r.mu.RUnlock()

	out := make([]model.TargetCount, 0, len(counts))
	for id, n := range counts {
		out = append(out, model.TargetCount{ID: id, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return bytes.Compare(out[i].ID[:], out[j].ID[:]) < 0
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepository) Recent(_ context.Context, limit int) ([]*model.Event, error) {
	r.mu.RLock()
	out := make([]*model.Event, 0, len(r.events))
	for i := len(r.events) - 1; i >= 0; i-- {
		e := r.events[i]
		out = append(out, &e)
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepository) DailyCounts(_ context.Context, since time.Time) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]int)
	for i := range r.events {
		if !r.events[i].CreatedAt.Before(since) {
			out[r.events[i].CreatedAt.UTC().Format(dateLayout)]++
		}
	}
	return out, nil
}

func (r *MemoryRepository) PurgeBefore(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.events[:0]
	var purged int64
	for _, e := range r.events {
		if e.CreatedAt.Before(before) {
			purged++
			continue
		}
		kept = append(kept, e)
	}
	r.events = kept
	return purged, nil
}
