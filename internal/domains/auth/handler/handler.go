package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fashionmag-backend/internal/domains/auth/service"
	"fashionmag-backend/internal/shared/response"
)

type AuthHandler struct {
	authService service.ServiceInterface
}

func NewAuthHandler(authService service.ServiceInterface) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// AdminLogin issues an admin token
// POST /api/v1/auth/admin/login
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req service.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.authService.AdminLogin(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}
