package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"fashionmag-backend/internal/infrastructure/email"
)

// ============================================
// Reset Code Email Handler
// ============================================

type ResetCodeEmailHandler struct {
	emailService email.EmailService
}

func NewResetCodeEmailHandler(emailService email.EmailService) *ResetCodeEmailHandler {
	return &ResetCodeEmailHandler{emailService: emailService}
}

func (h *ResetCodeEmailHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload email.ResetCodeEmail
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal ResetCodeEmail payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	log.Info().Str("email", payload.Email).Msg("Processing reset code email")

	if err := h.emailService.SendResetCode(ctx, payload); err != nil {
		return fmt.Errorf("send reset code email: %w", err)
	}
	return nil
}
