package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fashionmag-backend/internal/domains/talent/model"
	"fashionmag-backend/internal/domains/talent/service"
	"fashionmag-backend/internal/shared/middleware"
	"fashionmag-backend/internal/shared/response"
)

// =====================================================
// TALENT HANDLER
// =====================================================

type TalentHandler struct {
	talentService service.ServiceInterface
}

func NewTalentHandler(talentService service.ServiceInterface) *TalentHandler {
	return &TalentHandler{talentService: talentService}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid talent ID")
		return uuid.Nil, false
	}
	return id, true
}

// =====================================================
// PUBLIC ENDPOINTS
// =====================================================

// Register creates a pending talent
// POST /api/v1/talents/register
func (h *TalentHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	talent, err := h.talentService.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, talent)
}

// Login issues a talent token
// POST /api/v1/auth/talent/login
func (h *TalentHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.talentService.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ForgotPassword mails a one-time reset code. The reply is the same whether
// or not the email is registered.
// POST /api/v1/auth/talent/forgot-password
func (h *TalentHandler) ForgotPassword(c *gin.Context) {
	var req model.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.talentService.ForgotPassword(c.Request.Context(), req); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "If the email is registered, a reset code has been sent"})
}

// ResetPasswordWithCode POST /api/v1/auth/talent/reset-password
func (h *TalentHandler) ResetPasswordWithCode(c *gin.Context) {
	var req model.ResetWithCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.talentService.ResetPasswordWithCode(c.Request.Context(), req); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Password reset"})
}

// GetTalent returns an approved talent's public card; the owner and admins
// see the full record in any state.
// GET /api/v1/talents/:id
func (h *TalentHandler) GetTalent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	actor := middleware.ActorFromContext(c)
	talent, err := h.talentService.Get(c.Request.Context(), actor, id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	if actor.IsAdmin() || actor.Owns(id) {
		response.Success(c, http.StatusOK, talent)
		return
	}
	response.Success(c, http.StatusOK, talent.ToPublic())
}

// UpdateTalent patches profile and media fields
// PUT /api/v1/talents/:id
func (h *TalentHandler) UpdateTalent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateTalentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	talent, err := h.talentService.UpdateProfile(c.Request.Context(), middleware.ActorFromContext(c), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, talent)
}

// =====================================================
// ADMIN ENDPOINTS
// =====================================================

// AdminGetTalent GET /api/v1/admin/talents/:id
func (h *TalentHandler) AdminGetTalent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	talent, err := h.talentService.Get(c.Request.Context(), middleware.ActorFromContext(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, talent)
}

// Approve PUT /api/v1/admin/talents/:id/approve
func (h *TalentHandler) Approve(c *gin.Context) {
	h.moderate(c, h.talentService.Approve)
}

// Reject PUT /api/v1/admin/talents/:id/reject
func (h *TalentHandler) Reject(c *gin.Context) {
	h.moderate(c, h.talentService.Reject)
}

// Revoke PUT /api/v1/admin/talents/:id/revoke
func (h *TalentHandler) Revoke(c *gin.Context) {
	h.moderate(c, h.talentService.Revoke)
}

func (h *TalentHandler) moderate(
	c *gin.Context,
	op func(ctx context.Context, id uuid.UUID) (*model.Talent, error),
) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	talent, err := op(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, talent)
}

// SetRank PUT /api/v1/admin/talents/:id/rank
func (h *TalentHandler) SetRank(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.SetRankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.FromError(c, err)
		return
	}

	talent, err := h.talentService.SetRank(c.Request.Context(), id, *req.Rank)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, talent)
}

// ResetPassword PUT /api/v1/admin/talents/:id/password
func (h *TalentHandler) ResetPassword(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.talentService.ResetPassword(c.Request.Context(), id, req); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Password reset"})
}

// DeleteTalent DELETE /api/v1/admin/talents/:id
func (h *TalentHandler) DeleteTalent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.talentService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Talent deleted"})
}

// ExportRoster GET /api/v1/admin/talents/export?format=csv|xlsx
func (h *TalentHandler) ExportRoster(c *gin.Context) {
	format := model.ExportFormat(c.DefaultQuery("format", string(model.ExportCSV)))

	out, err := h.talentService.ExportRoster(c.Request.Context(), format)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, out.Filename))
	c.Data(http.StatusOK, out.ContentType, out.Data)
}
