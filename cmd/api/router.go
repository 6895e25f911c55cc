package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	contentModel "fashionmag-backend/internal/domains/content/model"
	"fashionmag-backend/internal/shared"
	"fashionmag-backend/internal/shared/middleware"
	"fashionmag-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(c.Config.App.TrustedProxies); err != nil {
		log.Warn().Err(err).Msg("Invalid TRUSTED_PROXIES, forwarded headers ignored")
		_ = router.SetTrustedProxies(nil)
	}

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.ClientIPMiddleware(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(c.Config.App.CORSOrigins),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))
		v1.GET("/categories", c.ListingHandler.Categories)

		setupAuthRoutes(v1, c)
		setupTalentRoutes(v1, c)
		setupVoteRoutes(v1, c)
		setupContentRoutes(v1, c)
		setupMediaRoutes(v1, c)
		setupAnalyticsRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/talent/login", c.TalentHandler.Login)
		auth.POST("/talent/forgot-password", c.TalentHandler.ForgotPassword)
		auth.POST("/talent/reset-password", c.TalentHandler.ResetPasswordWithCode)
		auth.POST("/admin/login", c.AuthHandler.AdminLogin)
	}
}

// ========================================
// TALENT ROUTES
// ========================================
func setupTalentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	talents := v1.Group("/talents")
	{
		talents.POST("/register", c.TalentHandler.Register)
		talents.GET("", c.ListingHandler.ListTalents)
		talents.GET("/:id", middleware.OptionalAuth(c.JWTManager), c.TalentHandler.GetTalent)
		talents.PUT("/:id",
			middleware.AuthMiddleware(c.JWTManager),
			middleware.RequireRole(shared.RoleTalent, shared.RoleAdmin),
			c.TalentHandler.UpdateTalent,
		)
	}
}

// ========================================
// VOTE ROUTES
// ========================================
func setupVoteRoutes(v1 *gin.RouterGroup, c *container.Container) {
	votes := v1.Group("/votes")
	{
		votes.POST("", middleware.VoterIdentity(c.JWTManager), c.VoteHandler.CastVote)
		votes.GET("/:talent_id", c.VoteHandler.GetVotes)
	}
}

// ========================================
// PUBLIC CONTENT ROUTES
// ========================================
func setupContentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	content := v1.Group("/content")
	{
		content.GET("/hero-slides", c.ContentHandler.Public(contentModel.KindHero))
		content.GET("/advertisements", c.ContentHandler.Public(contentModel.KindAdvertisement))
		content.GET("/party-events", c.ContentHandler.Public(contentModel.KindPartyEvent))
		content.GET("/awards", c.ContentHandler.Public(contentModel.KindContestWinner))
	}
}

// ========================================
// MEDIA ROUTES
// ========================================
func setupMediaRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.POST("/media",
		middleware.AuthMiddleware(c.JWTManager),
		middleware.RequireRole(shared.RoleTalent, shared.RoleAdmin),
		c.MediaHandler.Upload,
	)
}

// ========================================
// ANALYTICS ROUTES
// ========================================
func setupAnalyticsRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.POST("/analytics/track", c.AnalyticsHandler.Track)
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		admin.GET("/dashboard", c.DashboardHandler.Summary)

		talents := admin.Group("/talents")
		{
			talents.GET("", c.ListingHandler.AdminListTalents)
			talents.GET("/pending", c.ListingHandler.ListPending)
			talents.GET("/export", c.TalentHandler.ExportRoster)
			talents.GET("/:id", c.TalentHandler.AdminGetTalent)
			talents.PUT("/:id/approve", c.TalentHandler.Approve)
			talents.PUT("/:id/reject", c.TalentHandler.Reject)
			talents.PUT("/:id/revoke", c.TalentHandler.Revoke)
			talents.PUT("/:id/rank", c.TalentHandler.SetRank)
			talents.PUT("/:id/password", c.TalentHandler.ResetPassword)
			talents.DELETE("/:id", c.TalentHandler.DeleteTalent)
		}

		content := admin.Group("/content")
		{
			content.GET("/:kind", c.ContentHandler.List)
			content.POST("/:kind", c.ContentHandler.Create)
			content.GET("/:kind/:id", c.ContentHandler.Get)
			content.PUT("/:kind/:id", c.ContentHandler.Update)
			content.DELETE("/:kind/:id", c.ContentHandler.Delete)
			content.PUT("/:kind/:id/order", c.ContentHandler.SetOrder)
			content.PUT("/:kind/:id/active", c.ContentHandler.SetActive)
		}

		analytics := admin.Group("/analytics")
		{
			analytics.GET("/summary", c.AnalyticsHandler.Traffic)
			analytics.GET("/popular-talents", c.AnalyticsHandler.PopularTalents)
			analytics.GET("/party-stats", c.AnalyticsHandler.PartyStats)
			analytics.GET("/ad-stats", c.AnalyticsHandler.AdStats)
			analytics.GET("/recent-activity", c.AnalyticsHandler.RecentActivity)
			analytics.GET("/daily-views", c.AnalyticsHandler.DailyViews)
		}
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		checks := appCtx.HealthCheck(ctx)

		status := "healthy"
		statusCode := http.StatusOK
		if checks["database"] == "down" {
			status = "unhealthy"
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, gin.H{
			"status":    status,
			"version":   appCtx.Config.App.Version,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"checks":    checks,
		})
	}
}
