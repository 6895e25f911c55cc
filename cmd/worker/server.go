package main

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"fashionmag-backend/internal/config"
	"fashionmag-backend/internal/shared"
)

// asynqServer wraps asynq.Server with lifecycle logging
type asynqServer struct {
	*asynq.Server
}

func setupAsynqServer(cfg *config.Config, handlers *HandlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.Queue.RedisAddr},
		asynq.Config{
			Queues: map[string]int{
				shared.QueueMedia:       6,
				shared.QueueEmail:       4,
				shared.QueueMaintenance: 3,
				"default":               1,
			},
			Concurrency: cfg.Queue.Concurrency,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				retried, _ := asynq.GetRetryCount(ctx)
				maxRetry, _ := asynq.GetMaxRetry(ctx)
				log.Error().
					Err(err).
					Str("type", task.Type()).
					Int("retried", retried).
					Int("max_retry", maxRetry).
					Msg("[Asynq] Task failed")
			}),
		},
	)

	go func() {
		log.Info().Msg("[Worker] Starting")
		if err := srv.Run(mux); err != nil {
			log.Fatal().Err(err).Msg("[Worker] Failed")
		}
	}()

	return &asynqServer{Server: srv}
}

// Shutdown waits for in-flight tasks up to the server's shutdown timeout
func (s *asynqServer) Shutdown() {
	log.Info().Msg("[Worker] Shutting down")
	s.Server.Shutdown()
	log.Info().Msg("[Worker] Gracefully stopped")
}
