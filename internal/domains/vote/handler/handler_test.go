package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	talentModel "fashionmag-backend/internal/domains/talent/model"
	talentRepo "fashionmag-backend/internal/domains/talent/repository"
	"fashionmag-backend/internal/domains/vote/repository"
	"fashionmag-backend/internal/domains/vote/service"
	"fashionmag-backend/internal/shared/middleware"
	"fashionmag-backend/pkg/jwt"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func setup(t *testing.T) (*gin.Engine, uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	talents := talentRepo.NewMemoryRepository()
	now := time.Now()
	id := uuid.New()
	require.NoError(t, talents.Create(context.Background(), &talentModel.Talent{
		ID:        id,
		Name:      "Ava",
		Email:     "ava@example.com",
		Category:  talentModel.CategoryModelFemale,
		Status:    talentModel.StatusApproved,
		Rank:      1,
		CreatedAt: now,
		UpdatedAt: now,
	}))

	h := NewVoteHandler(service.NewService(repository.NewMemoryRepository(talents), talents))
	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(nil))
	r.POST("/votes", middleware.VoterIdentity(jwt.NewManager("test-secret", time.Hour)), h.CastVote)
	r.GET("/votes/:talent_id", h.GetVotes)
	return r, id
}

// vote posts from a browser identified by its User-Agent
func vote(r http.Handler, talentID, browser string) (*httptest.ResponseRecorder, envelope) {
	return voteWith(r, talentID, browser, nil)
}

func voteWith(r http.Handler, talentID, browser string, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	body, _ := json.Marshal(map[string]string{"talent_id": talentID})
	req := httptest.NewRequest(http.MethodPost, "/votes", bytes.NewReader(body))
	req.RemoteAddr = "203.0.113.7:4000"
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", browser)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestCastVoteEndpoint(t *testing.T) {
	r, id := setup(t)

	w, env := vote(r, id.String(), "device-1")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)

	w, env = vote(r, id.String(), "device-1")
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "DUPLICATE_VOTE", env.Error.Code)

	w, _ = vote(r, uuid.NewString(), "device-1")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = vote(r, "not-a-uuid", "device-1")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/votes/"+id.String(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"vote_count":1`)
}

func TestCastVoteIgnoresClientSuppliedIdentity(t *testing.T) {
	r, id := setup(t)

	w, _ := vote(r, id.String(), "Mozilla/5.0")
	require.Equal(t, http.StatusCreated, w.Code)

	for _, forged := range []string{"voter-a", "voter-b", "voter-c", "voter-d"} {
		w, env := voteWith(r, id.String(), "Mozilla/5.0", map[string]string{
			"X-Voter-ID":      forged,
			"X-Forwarded-For": "198.51.100.20",
			"Cookie":          middleware.VoterCookie + "=" + forged,
		})
		assert.Equal(t, http.StatusConflict, w.Code, "forged id %q", forged)
		require.NotNil(t, env.Error)
		assert.Equal(t, "DUPLICATE_VOTE", env.Error.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/votes/"+id.String(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), `"vote_count":1`)
}
