package repository

import (
	"context"

	"github.com/google/uuid"

	"fashionmag-backend/internal/domains/talent/model"
)

// Repository is the talent store. Lookups of unknown ids return a
// NotFound error; Create returns a Conflict error for a taken email.
type Repository interface {
	Create(ctx context.Context, t *model.Talent) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Talent, error)
	GetByEmail(ctx context.Context, email string) (*model.Talent, error)

	// UpdateProfile persists profile and media fields only
	UpdateProfile(ctx context.Context, t *model.Talent) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) error
	UpdateRank(ctx context.Context, id uuid.UUID, rank int) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns matches in rank order (rank, created_at, id)
	List(ctx context.Context, filter model.Filter) ([]*model.Talent, error)
	// ListByStatus returns matches oldest first
	ListByStatus(ctx context.Context, status model.Status) ([]*model.Talent, error)
	CountByStatus(ctx context.Context) (map[model.Status]int, error)
}
