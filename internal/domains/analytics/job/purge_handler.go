package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// Purger drops analytics events past their retention
type Purger interface {
	Purge(ctx context.Context, retentionDays int) (int64, error)
}

// PurgeEventsHandler is the periodic analytics retention job
type PurgeEventsHandler struct {
	analytics     Purger
	retentionDays int
}

func NewPurgeEventsHandler(analytics Purger, retentionDays int) *PurgeEventsHandler {
	return &PurgeEventsHandler{analytics: analytics, retentionDays: retentionDays}
}

func (h *PurgeEventsHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	purged, err := h.analytics.Purge(ctx, h.retentionDays)
	if err != nil {
		log.Error().Err(err).Int("retention_days", h.retentionDays).Msg("Failed to purge analytics events")
		return fmt.Errorf("purge analytics events: %w", err)
	}

	log.Info().Int64("purged", purged).Int("retention_days", h.retentionDays).Msg("Analytics retention applied")
	return nil
}
