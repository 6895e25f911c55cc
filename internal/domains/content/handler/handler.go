package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fashionmag-backend/internal/domains/content/model"
	"fashionmag-backend/internal/domains/content/service"
	"fashionmag-backend/internal/shared/response"
)

// =====================================================
// CONTENT HANDLER
// =====================================================

type ContentHandler struct {
	contentService service.ServiceInterface
}

func NewContentHandler(contentService service.ServiceInterface) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

type setOrderRequest struct {
	Order *int `json:"order" binding:"required"`
}

type setActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

func parseKind(c *gin.Context) (model.Kind, bool) {
	kind, err := model.ParseKind(c.Param("kind"))
	if err != nil {
		response.FromError(c, err)
		return "", false
	}
	return kind, true
}

func parseKindAndID(c *gin.Context) (model.Kind, uuid.UUID, bool) {
	kind, ok := parseKind(c)
	if !ok {
		return "", uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid content ID")
		return "", uuid.Nil, false
	}
	return kind, id, true
}

// =====================================================
// PUBLIC ENDPOINTS
// =====================================================

// Public returns the public listing of a fixed kind.
// GET /api/v1/content/hero-slides | advertisements | party-events | awards?active_only=
func (h *ContentHandler) Public(kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		activeOnly := true
		if raw := c.Query("active_only"); raw != "" && kind == model.KindContestWinner {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				response.BadRequest(c, "active_only must be a boolean")
				return
			}
			activeOnly = v
		}

		entries, err := h.contentService.ListPublic(c.Request.Context(), kind, activeOnly)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.SuccessWithMeta(c, http.StatusOK, entries, &response.Meta{Total: len(entries)})
	}
}

// =====================================================
// ADMIN ENDPOINTS
// =====================================================

// List GET /api/v1/admin/content/:kind
func (h *ContentHandler) List(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}

	entries, err := h.contentService.List(c.Request.Context(), kind)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, entries, &response.Meta{Total: len(entries)})
}

// Get GET /api/v1/admin/content/:kind/:id
func (h *ContentHandler) Get(c *gin.Context) {
	kind, id, ok := parseKindAndID(c)
	if !ok {
		return
	}

	entry, err := h.contentService.Get(c.Request.Context(), kind, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, entry)
}

// Create POST /api/v1/admin/content/:kind
func (h *ContentHandler) Create(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}

	entry, err := model.NewEntry(kind)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if err := c.ShouldBindJSON(entry); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created, err := h.contentService.Create(c.Request.Context(), entry)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// Update merges the body into the stored entry
// PUT /api/v1/admin/content/:kind/:id
func (h *ContentHandler) Update(c *gin.Context) {
	kind, id, ok := parseKindAndID(c)
	if !ok {
		return
	}

	var patch map[string]json.RawMessage
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, "request body must be a JSON object")
		return
	}
	raw, err := json.Marshal(patch)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.contentService.Update(c.Request.Context(), kind, id, raw)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// Delete DELETE /api/v1/admin/content/:kind/:id
func (h *ContentHandler) Delete(c *gin.Context) {
	kind, id, ok := parseKindAndID(c)
	if !ok {
		return
	}

	if err := h.contentService.Delete(c.Request.Context(), kind, id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Content deleted"})
}

// SetOrder PUT /api/v1/admin/content/:kind/:id/order
func (h *ContentHandler) SetOrder(c *gin.Context) {
	kind, id, ok := parseKindAndID(c)
	if !ok {
		return
	}

	var req setOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "order is required")
		return
	}

	entry, err := h.contentService.SetOrder(c.Request.Context(), kind, id, *req.Order)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, entry)
}

// SetActive PUT /api/v1/admin/content/:kind/:id/active
func (h *ContentHandler) SetActive(c *gin.Context) {
	kind, id, ok := parseKindAndID(c)
	if !ok {
		return
	}

	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "is_active is required")
		return
	}

	entry, err := h.contentService.SetActive(c.Request.Context(), kind, id, *req.IsActive)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, entry)
}
