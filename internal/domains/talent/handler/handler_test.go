package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fashionmag-backend/internal/domains/talent/repository"
	"fashionmag-backend/internal/domains/talent/service"
	"fashionmag-backend/internal/infrastructure/email"
	"fashionmag-backend/internal/shared/middleware"
	"fashionmag-backend/pkg/cache"
	"fashionmag-backend/pkg/jwt"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

type captureMailer struct{ codes map[string]string }

func (m *captureMailer) SendResetCode(_ context.Context, data email.ResetCodeEmail) error {
	m.codes[data.Email] = data.Code
	return nil
}

type fixture struct {
	router *gin.Engine
	tokens *jwt.Manager
	mailer *captureMailer
}

func setup() *fixture {
	gin.SetMode(gin.TestMode)

	tokens := jwt.NewManager("test-secret", time.Hour)
	mailer := &captureMailer{codes: map[string]string{}}
	svc := service.NewService(
		repository.NewMemoryRepository(),
		nil,
		nil,
		mailer,
		cache.NewMemoryCache(),
		tokens,
		service.Config{BcryptCost: bcrypt.MinCost},
	)
	h := NewTalentHandler(svc)

	r := gin.New()
	r.POST("/talents/register", h.Register)
	r.POST("/auth/talent/login", h.Login)
	r.POST("/auth/talent/forgot-password", h.ForgotPassword)
	r.POST("/auth/talent/reset-password", h.ResetPasswordWithCode)
	r.GET("/talents/:id", middleware.OptionalAuth(tokens), h.GetTalent)
	r.PUT("/talents/:id", middleware.AuthMiddleware(tokens), h.UpdateTalent)
	r.PUT("/admin/talents/:id/approve", h.Approve)
	r.PUT("/admin/talents/:id/rank", h.SetRank)
	r.GET("/admin/talents/export", h.ExportRoster)

	return &fixture{router: r, tokens: tokens, mailer: mailer}
}

func (f *fixture) do(method, path string, body interface{}, token string) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func (f *fixture) register(t *testing.T, email string) string {
	t.Helper()
	w, env := f.do(http.MethodPost, "/talents/register", map[string]interface{}{
		"name":            "Ava",
		"email":           email,
		"password":        "secret1",
		"phone":           "+1 555 0100",
		"category":        "Photography",
		"profile_image":   "https://cdn.example.com/ava.jpg",
		"agreed_to_terms": true,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	return created.ID
}

func (f *fixture) login(t *testing.T, email string) string {
	t.Helper()
	w, env := f.do(http.MethodPost, "/auth/talent/login", map[string]string{"email": email, "password": "secret1"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	return resp.AccessToken
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	f := setup()
	f.register(t, "ava@x.com")

	w, env := f.do(http.MethodPost, "/talents/register", map[string]interface{}{
		"name": "Ava Two", "email": "AVA@x.com", "password": "secret1", "phone": "+1 555 0199",
		"category": "Photography", "profile_image": "https://cdn.example.com/a.jpg", "agreed_to_terms": true,
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CONFLICT", env.Error.Code)
}

func TestGetTalentVisibility(t *testing.T) {
	f := setup()
	id := f.register(t, "ava@x.com")
	token := f.login(t, "ava@x.com")

	w, _ := f.do(http.MethodGet, "/talents/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code, "pending talent is hidden")

	w, _ = f.do(http.MethodGet, "/talents/"+id, nil, token)
	require.Equal(t, http.StatusOK, w.Code, "owner sees own pending profile")
	assert.Contains(t, w.Body.String(), `"email":"ava@x.com"`)

	w, _ = f.do(http.MethodPut, "/admin/talents/"+id+"/approve", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = f.do(http.MethodGet, "/talents/"+id, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "ava@x.com", "public card hides contact details")

	w, _ = f.do(http.MethodGet, "/talents/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTalentOwnershipAndCapacity(t *testing.T) {
	f := setup()
	id := f.register(t, "ava@x.com")
	f.register(t, "ben@x.com")
	avaToken := f.login(t, "ava@x.com")
	benToken := f.login(t, "ben@x.com")

	w, _ := f.do(http.MethodPut, "/talents/"+id, map[string]interface{}{"bio": "Street style"}, avaToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Street style")

	w, _ = f.do(http.MethodPut, "/talents/"+id, map[string]interface{}{"bio": "hijacked"}, benToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	images := make([]string, 8)
	for i := range images {
		images[i] = fmt.Sprintf("https://cdn.example.com/%d.jpg", i)
	}
	w, env := f.do(http.MethodPut, "/talents/"+id, map[string]interface{}{"portfolio_images": images}, avaToken)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CAPACITY_EXCEEDED", env.Error.Code)

	w, _ = f.do(http.MethodPut, "/talents/"+id, map[string]interface{}{"bio": "anon"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSetRankRequiresValue(t *testing.T) {
	f := setup()
	id := f.register(t, "ava@x.com")

	w, _ := f.do(http.MethodPut, "/admin/talents/"+id+"/rank", map[string]interface{}{}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = f.do(http.MethodPut, "/admin/talents/"+id+"/rank", map[string]interface{}{"rank": 1}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rank":1`)
}

func TestExportRosterCSV(t *testing.T) {
	f := setup()
	f.register(t, "ava@x.com")

	w, _ := f.do(http.MethodGet, "/admin/talents/export?format=csv", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Name,Email"))

	w, _ = f.do(http.MethodGet, "/admin/talents/export?format=pdf", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestForgotAndResetPasswordWithCode(t *testing.T) {
	f := setup()
	f.register(t, "ava@example.com")

	w, known := f.do(http.MethodPost, "/auth/talent/forgot-password", map[string]string{"email": "ava@example.com"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w, unknown := f.do(http.MethodPost, "/auth/talent/forgot-password", map[string]string{"email": "ghost@example.com"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, string(known.Data), string(unknown.Data))

	code := f.mailer.codes["ava@example.com"]
	require.Len(t, code, 6)
	assert.NotContains(t, string(known.Data), code)

	w, _ = f.do(http.MethodPost, "/auth/talent/reset-password", map[string]string{
		"email": "ava@example.com", "reset_code": "abc", "new_password": "brand-new",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = f.do(http.MethodPost, "/auth/talent/reset-password", map[string]string{
		"email": "ava@example.com", "reset_code": code, "new_password": "brand-new",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, _ = f.do(http.MethodPost, "/auth/talent/login", map[string]string{"email": "ava@example.com", "password": "brand-new"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
