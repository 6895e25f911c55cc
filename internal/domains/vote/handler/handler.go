package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fashionmag-backend/internal/domains/vote/model"
	"fashionmag-backend/internal/domains/vote/service"
	"fashionmag-backend/internal/shared/middleware"
	"fashionmag-backend/internal/shared/response"
)

type VoteHandler struct {
	voteService service.ServiceInterface
}

func NewVoteHandler(voteService service.ServiceInterface) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// CastVote records the caller's vote; the voter id comes from VoterIdentity.
// POST /api/v1/votes
func (h *VoteHandler) CastVote(c *gin.Context) {
	var req model.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.FromError(c, err)
		return
	}

	result, err := h.voteService.CastVote(
		c.Request.Context(),
		uuid.MustParse(req.TalentID),
		middleware.VoterIDFromContext(c),
	)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// GetVotes GET /api/v1/votes/:talent_id
func (h *VoteHandler) GetVotes(c *gin.Context) {
	talentID, err := uuid.Parse(c.Param("talent_id"))
	if err != nil {
		response.BadRequest(c, "Invalid talent ID")
		return
	}

	result, err := h.voteService.GetVoteCount(c.Request.Context(), talentID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}
