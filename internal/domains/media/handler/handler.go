package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"fashionmag-backend/internal/domains/media/service"
	"fashionmag-backend/internal/infrastructure/storage"
	"fashionmag-backend/internal/shared/middleware"
	"fashionmag-backend/internal/shared/response"
)

type MediaHandler struct {
	mediaService service.ServiceInterface
}

func NewMediaHandler(mediaService service.ServiceInterface) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Upload stores one image from the multipart "file" field
// POST /api/v1/media
func (h *MediaHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, storage.DefaultMaxImageSize+1<<20)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "cannot read file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, storage.DefaultMaxImageSize+1))
	if err != nil {
		response.BadRequest(c, "cannot read file")
		return
	}

	result, err := h.mediaService.Upload(c.Request.Context(), middleware.ActorFromContext(c), service.UploadRequest{
		Data:     data,
		Kind:     c.PostForm("kind"),
		TalentID: c.PostForm("talent_id"),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}
