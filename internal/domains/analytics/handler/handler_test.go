package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fashionmag-backend/internal/domains/analytics/repository"
	"fashionmag-backend/internal/domains/analytics/service"
	contentRepo "fashionmag-backend/internal/domains/content/repository"
	talentRepo "fashionmag-backend/internal/domains/talent/repository"
)

func setup() *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := service.NewService(repository.NewMemoryRepository(), talentRepo.NewMemoryRepository(), contentRepo.NewMemoryRepository())
	h := NewAnalyticsHandler(svc)

	r := gin.New()
	_ = r.SetTrustedProxies(nil)
	r.POST("/analytics/track", h.Track)
	r.GET("/admin/analytics/summary", h.Traffic)
	r.GET("/admin/analytics/daily-views", h.DailyViews)
	return r
}

func track(r *gin.Engine, body string, ua string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/analytics/track", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", ua)
	req.RemoteAddr = "203.0.113.7:4000"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTrackAndSummary(t *testing.T) {
	r := setup()

	assert.Equal(t, http.StatusOK, track(r, `{"page":"/"}`, "browser-a").Code)
	assert.Equal(t, http.StatusOK, track(r, `{"page":"/gallery"}`, "browser-a").Code)
	assert.Equal(t, http.StatusOK, track(r, `{"page":"/","session_id":"tab-1"}`, "browser-b").Code)

	w := track(r, `{"event_type":"ad_click"}`, "browser-a")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = track(r, `not json`, "browser-a")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/admin/analytics/summary", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data struct {
			Total  int `json:"total_page_views"`
			Unique int `json:"unique_visitors"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, 3, env.Data.Total)
	assert.Equal(t, 2, env.Data.Unique)
}

func TestDailyViewsWindow(t *testing.T) {
	r := setup()
	track(r, `{}`, "browser")

	req := httptest.NewRequest(http.MethodGet, "/admin/analytics/daily-views", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data []struct {
			Date  string `json:"date"`
			Views int    `json:"views"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Len(t, env.Data, 30)
	assert.Equal(t, 1, env.Data[29].Views)
}
