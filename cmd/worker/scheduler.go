package main

import (
	"github.com/rs/zerolog/log"

	"fashionmag-backend/internal/config"
	"fashionmag-backend/internal/infrastructure/queue"
)

// asynqScheduler wraps queue.Scheduler with lifecycle logging
type asynqScheduler struct {
	*queue.Scheduler
}

func setupScheduler(cfg *config.Config) *asynqScheduler {
	scheduler := queue.NewScheduler(cfg.Queue.RedisAddr, cfg.Queue.ReconcileSchedule, cfg.Analytics.PurgeSchedule)

	if err := scheduler.RegisterMaintenanceJobs(); err != nil {
		log.Fatal().Err(err).Msg("[Scheduler] Failed to register")
	}

	go func() {
		log.Info().Msg("[Scheduler] Starting")
		if err := scheduler.Start(); err != nil {
			log.Fatal().Err(err).Msg("[Scheduler] Failed")
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

func (s *asynqScheduler) Shutdown() {
	log.Info().Msg("[Scheduler] Shutting down")
	s.Scheduler.Shutdown()
	log.Info().Msg("[Scheduler] Stopped")
}
