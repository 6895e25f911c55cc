package queue

import (
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"fashionmag-backend/internal/shared"
)

const (
	// DefaultReconcileSchedule runs the vote counter repair daily at 3 AM UTC
	DefaultReconcileSchedule = "0 3 * * *"
	// DefaultPurgeSchedule runs analytics retention daily at 3:30 AM UTC
	DefaultPurgeSchedule = "30 3 * * *"
)

type Scheduler struct {
	scheduler         *asynq.Scheduler
	reconcileSchedule string
	purgeSchedule     string
}

func NewScheduler(redisAddress, reconcileSchedule, purgeSchedule string) *Scheduler {
	if reconcileSchedule == "" {
		reconcileSchedule = DefaultReconcileSchedule
	}
	if purgeSchedule == "" {
		purgeSchedule = DefaultPurgeSchedule
	}

	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler:         scheduler,
		reconcileSchedule: reconcileSchedule,
		purgeSchedule:     purgeSchedule,
	}
}

func (s *Scheduler) RegisterMaintenanceJobs() error {
	if err := s.registerReconcileVoteCountsJob(); err != nil {
		return err
	}
	return s.registerPurgeAnalyticsJob()
}

// ================================================
// JOB: Reconcile vote counters with the ledger
// ================================================
func (s *Scheduler) registerReconcileVoteCountsJob() error {
	task := asynq.NewTask(shared.TypeReconcileVoteCounts, nil)

	entryID, err := s.scheduler.Register(
		s.reconcileSchedule,
		task,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to register ReconcileVoteCounts job")
		return err
	}

	log.Info().
		Str("entry_id", entryID).
		Str("schedule", s.reconcileSchedule).
		Msg("Registered ReconcileVoteCounts job")
	return nil
}

// ================================================
// JOB: Drop analytics events past retention
// ================================================
func (s *Scheduler) registerPurgeAnalyticsJob() error {
	task := asynq.NewTask(shared.TypePurgeAnalytics, nil)

	entryID, err := s.scheduler.Register(
		s.purgeSchedule,
		task,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(1),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to register PurgeAnalytics job")
		return err
	}

	log.Info().
		Str("entry_id", entryID).
		Str("schedule", s.purgeSchedule).
		Msg("Registered PurgeAnalytics job")
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
