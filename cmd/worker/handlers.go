package main

import (
	"github.com/hibiken/asynq"

	analyticsJob "fashionmag-backend/internal/domains/analytics/job"
	talentJob "fashionmag-backend/internal/domains/talent/job"
	voteJob "fashionmag-backend/internal/domains/vote/job"
	"fashionmag-backend/internal/infrastructure/email"
	emailJob "fashionmag-backend/internal/infrastructure/email/job"
	"fashionmag-backend/internal/shared"
	"fashionmag-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	cleanupMedia    *talentJob.CleanupMediaHandler
	reconcileCounts *voteJob.ReconcileCountsHandler
	resetCodeEmail  *emailJob.ResetCodeEmailHandler
	purgeAnalytics  *analyticsJob.PurgeEventsHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		cleanupMedia:    talentJob.NewCleanupMediaHandler(c.Storage),
		reconcileCounts: voteJob.NewReconcileCountsHandler(c.VoteRepo),
		resetCodeEmail:  emailJob.NewResetCodeEmailHandler(email.NewEmailService(c.Config.SMTP)),
		purgeAnalytics:  analyticsJob.NewPurgeEventsHandler(c.AnalyticsService, c.Config.Analytics.RetentionDays),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Media
	mux.HandleFunc(shared.TypeCleanupTalentMedia, h.cleanupMedia.ProcessTask)

	// Email
	mux.HandleFunc(shared.TypeSendResetCode, h.resetCodeEmail.ProcessTask)

	// Maintenance
	mux.HandleFunc(shared.TypeReconcileVoteCounts, h.reconcileCounts.ProcessTask)
	mux.HandleFunc(shared.TypePurgeAnalytics, h.purgeAnalytics.ProcessTask)
}
