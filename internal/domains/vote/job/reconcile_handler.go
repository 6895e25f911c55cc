package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// Reconciler rebuilds talent vote counters from the vote ledger
type Reconciler interface {
	Reconcile(ctx context.Context) (int, error)
}

// ReconcileCountsHandler is the periodic counter repair job
type ReconcileCountsHandler struct {
	votes Reconciler
}

func NewReconcileCountsHandler(votes Reconciler) *ReconcileCountsHandler {
	return &ReconcileCountsHandler{votes: votes}
}

func (h *ReconcileCountsHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	fixed, err := h.votes.Reconcile(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to reconcile vote counts")
		return fmt.Errorf("reconcile vote counts: %w", err)
	}

	if fixed > 0 {
		log.Warn().Int("talents", fixed).Msg("Vote counters drifted from ledger and were corrected")
		return nil
	}
	log.Info().Msg("Vote counters match ledger")
	return nil
}
