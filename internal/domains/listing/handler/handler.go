package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	talentModel "fashionmag-backend/internal/domains/talent/model"
	"fashionmag-backend/internal/domains/listing/service"
	"fashionmag-backend/internal/shared/response"
)

type ListingHandler struct {
	listingService service.ServiceInterface
}

func NewListingHandler(listingService service.ServiceInterface) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

// ListTalents returns approved talents as public cards
// GET /api/v1/talents?category=
func (h *ListingHandler) ListTalents(c *gin.Context) {
	talents, err := h.listingService.ListByCategory(c.Request.Context(), c.Query("category"), true)
	if err != nil {
		response.FromError(c, err)
		return
	}

	cards := make([]talentModel.PublicTalent, len(talents))
	for i, t := range talents {
		cards[i] = t.ToPublic()
	}
	response.SuccessWithMeta(c, http.StatusOK, cards, &response.Meta{Total: len(cards)})
}

// AdminListTalents GET /api/v1/admin/talents?category=&approved_only=
func (h *ListingHandler) AdminListTalents(c *gin.Context) {
	approvedOnly := false
	if raw := c.Query("approved_only"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(c, "approved_only must be a boolean")
			return
		}
		approvedOnly = v
	}

	talents, err := h.listingService.ListByCategory(c.Request.Context(), c.Query("category"), approvedOnly)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, talents, &response.Meta{Total: len(talents)})
}

// ListPending GET /api/v1/admin/talents/pending
func (h *ListingHandler) ListPending(c *gin.Context) {
	talents, err := h.listingService.ListPending(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, talents, &response.Meta{Total: len(talents)})
}

// Categories GET /api/v1/categories
func (h *ListingHandler) Categories(c *gin.Context) {
	response.Success(c, http.StatusOK, h.listingService.Categories())
}
