package repository

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the vote ledger
type Repository interface {
	// Record stores the vote and increments the talent's counter atomically,
	// returning the new count. A repeated pair yields a DuplicateVote error and
	// leaves the counter untouched.
	Record(ctx context.Context, talentID uuid.UUID, voterID string) (int, error)
	Count(ctx context.Context, talentID uuid.UUID) (int, error)
	Total(ctx context.Context) (int, error)
	PurgeTalent(ctx context.Context, talentID uuid.UUID) error

	// Reconcile rewrites each talent's counter from the ledger and returns how
	// many counters were corrected.
	Reconcile(ctx context.Context) (int, error)
}
