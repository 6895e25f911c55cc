package repository

import (
	"context"

	"github.com/google/uuid"

	"fashionmag-backend/internal/domains/content/model"
)

// Repository stores promotional entries of every kind
type Repository interface {
	// Create inserts e. When limit > 0 the collection size is checked and the
	// insert happens atomically with respect to other creates of that kind.
	Create(ctx context.Context, e model.Entry, limit int) error
	Get(ctx context.Context, kind model.Kind, id uuid.UUID) (model.Entry, error)
	Update(ctx context.Context, e model.Entry) error
	Delete(ctx context.Context, kind model.Kind, id uuid.UUID) error

	// List returns entries in display order: by order then id for orderable
	// kinds, newest first otherwise.
	List(ctx context.Context, kind model.Kind, activeOnly bool) ([]model.Entry, error)
	Count(ctx context.Context, kind model.Kind, activeOnly bool) (int, error)
}
