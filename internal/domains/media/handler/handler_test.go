package handler

import (
	"bytes"
	"encoding/json"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fashionmag-backend/internal/domains/media/service"
	"fashionmag-backend/internal/infrastructure/storage"
	"fashionmag-backend/internal/shared/middleware"
	"fashionmag-backend/pkg/jwt"
)

func multipartBody(t *testing.T, fields map[string]string, withFile bool) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if withFile {
		part, err := w.CreateFormFile("file", "look.png")
		require.NoError(t, err)
		require.NoError(t, png.Encode(part, imaging.New(4, 4, color.Black)))
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestUploadEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := jwt.NewManager("test-secret", time.Hour)
	store := storage.NewMemoryStorage("http://media.local")

	r := gin.New()
	r.POST("/media", middleware.AuthMiddleware(tokens), NewMediaHandler(service.NewService(store, nil)).Upload)

	talentID := uuid.New()
	token, _, err := tokens.GenerateToken(talentID.String(), "ava@example.com", jwt.RoleTalent)
	require.NoError(t, err)

	body, contentType := multipartBody(t, nil, true)
	req := httptest.NewRequest(http.MethodPost, "/media", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var env struct {
		Data service.UploadResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Contains(t, env.Data.Key, "talents/"+talentID.String()+"/")
	assert.Len(t, store.Keys(), 1)

	body, contentType = multipartBody(t, map[string]string{"kind": "hero"}, false)
	req = httptest.NewRequest(http.MethodPost, "/media", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/media", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
