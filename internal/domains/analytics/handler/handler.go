package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fashionmag-backend/internal/domains/analytics/model"
	"fashionmag-backend/internal/domains/analytics/service"
	"fashionmag-backend/internal/shared/middleware"
	"fashionmag-backend/internal/shared/response"
)

// =====================================================
// ANALYTICS HANDLER
// =====================================================

type AnalyticsHandler struct {
	analyticsService service.ServiceInterface
}

func NewAnalyticsHandler(analyticsService service.ServiceInterface) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Track records a visit. Without a session_id the caller's fingerprint is used.
// POST /api/v1/analytics/track
func (h *AnalyticsHandler) Track(c *gin.Context) {
	var req model.TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ua := c.GetHeader("User-Agent")
	visitor := service.Visitor{
		Fingerprint: middleware.Fingerprint(c.ClientIP(), ua),
		UserAgent:   ua,
	}
	if err := h.analyticsService.Track(c.Request.Context(), req, visitor); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Tracked"})
}

// =====================================================
// ADMIN REPORTS
// =====================================================

// Traffic GET /api/v1/admin/analytics/summary
func (h *AnalyticsHandler) Traffic(c *gin.Context) {
	respond(c, func() (interface{}, error) { return h.analyticsService.Traffic(c.Request.Context()) })
}

// PopularTalents GET /api/v1/admin/analytics/popular-talents
func (h *AnalyticsHandler) PopularTalents(c *gin.Context) {
	respond(c, func() (interface{}, error) { return h.analyticsService.PopularTalents(c.Request.Context()) })
}

// PartyStats GET /api/v1/admin/analytics/party-stats
func (h *AnalyticsHandler) PartyStats(c *gin.Context) {
	respond(c, func() (interface{}, error) { return h.analyticsService.PartyStats(c.Request.Context()) })
}

// AdStats GET /api/v1/admin/analytics/ad-stats
func (h *AnalyticsHandler) AdStats(c *gin.Context) {
	respond(c, func() (interface{}, error) { return h.analyticsService.AdStats(c.Request.Context()) })
}

// RecentActivity GET /api/v1/admin/analytics/recent-activity
func (h *AnalyticsHandler) RecentActivity(c *gin.Context) {
	respond(c, func() (interface{}, error) { return h.analyticsService.RecentActivity(c.Request.Context()) })
}

// DailyViews GET /api/v1/admin/analytics/daily-views
func (h *AnalyticsHandler) DailyViews(c *gin.Context) {
	respond(c, func() (interface{}, error) { return h.analyticsService.DailyViews(c.Request.Context()) })
}

func respond(c *gin.Context, load func() (interface{}, error)) {
	data, err := load()
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, data)
}
