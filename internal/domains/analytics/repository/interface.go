package repository

import (
	"context"
	"time"

	"fashionmag-backend/internal/domains/analytics/model"
)

// Repository is the append-only event log. A zero since means no lower bound.
type Repository interface {
	Insert(ctx context.Context, e *model.Event) error

	CountSince(ctx context.Context, since time.Time) (int, error)
	UniqueSessionsSince(ctx context.Context, since time.Time) (int, error)

	// TopTargets groups events of t by target id, most frequent first, ties
	// by id.
	TopTargets(ctx context.Context, t model.EventType, limit int) ([]model.TargetCount, error)
	// Recent returns the newest events first
	Recent(ctx context.Context, limit int) ([]*model.Event, error)
	// DailyCounts keys event counts by UTC date (YYYY-MM-DD)
	DailyCounts(ctx context.Context, since time.Time) (map[string]int, error)

	// PurgeBefore deletes events older than before and returns how many went
	PurgeBefore(ctx context.Context, before time.Time) (int64, error)
}
