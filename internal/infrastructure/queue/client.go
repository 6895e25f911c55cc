package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"fashionmag-backend/internal/infrastructure/email"
	"fashionmag-backend/internal/shared"
)

// Client enqueues background tasks for cmd/worker
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr string) *Client {
	return &Client{client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})}
}

// EnqueueTalentMediaCleanup schedules removal of a deleted talent's uploads
func (c *Client) EnqueueTalentMediaCleanup(ctx context.Context, talentID uuid.UUID) error {
	payload, err := json.Marshal(shared.CleanupTalentMediaPayload{TalentID: talentID.String()})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeCleanupTalentMedia, payload)
	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueMedia),
		asynq.MaxRetry(2),
		asynq.Timeout(2*time.Minute),
	)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", shared.TypeCleanupTalentMedia, err)
	}

	log.Debug().
		Str("task_id", info.ID).
		Str("talent_id", talentID.String()).
		Msg("Media cleanup enqueued")
	return nil
}

// SendResetCode hands a reset code email to the worker. The code expires
// quickly, so the task is only retried a few times.
func (c *Client) SendResetCode(ctx context.Context, data email.ResetCodeEmail) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeSendResetCode, payload)
	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueEmail),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", shared.TypeSendResetCode, err)
	}

	log.Debug().Str("task_id", info.ID).Msg("Reset code email enqueued")
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
