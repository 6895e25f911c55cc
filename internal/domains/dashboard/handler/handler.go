package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fashionmag-backend/internal/domains/dashboard/service"
	"fashionmag-backend/internal/shared/response"
)

type DashboardHandler struct {
	dashboardService service.ServiceInterface
}

func NewDashboardHandler(dashboardService service.ServiceInterface) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Summary returns moderation counters for the admin dashboard
// GET /api/v1/admin/dashboard
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboardService.Summary(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, summary)
}
