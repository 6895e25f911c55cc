package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"fashionmag-backend/internal/shared"
)

// ObjectRemover deletes every stored object under a key prefix
type ObjectRemover interface {
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// MediaPrefix is the storage prefix of a talent's uploads
func MediaPrefix(talentID uuid.UUID) string {
	return fmt.Sprintf("talents/%s/", talentID)
}

// CleanupMediaHandler removes a deleted talent's uploads from object storage
type CleanupMediaHandler struct {
	storage ObjectRemover
}

func NewCleanupMediaHandler(storage ObjectRemover) *CleanupMediaHandler {
	return &CleanupMediaHandler{storage: storage}
}

func (h *CleanupMediaHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.CleanupTalentMediaPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal CleanupTalentMedia payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	talentID, err := uuid.Parse(payload.TalentID)
	if err != nil {
		return fmt.Errorf("invalid talent id %q: %w", payload.TalentID, asynq.SkipRetry)
	}

	if err := h.storage.DeleteByPrefix(ctx, MediaPrefix(talentID)); err != nil {
		log.Error().
			Err(err).
			Str("talent_id", payload.TalentID).
			Msg("Failed to delete talent media")
		return fmt.Errorf("delete media: %w", err)
	}

	log.Info().
		Str("talent_id", payload.TalentID).
		Msg("Talent media deleted")
	return nil
}
