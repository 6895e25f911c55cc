package service

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"fashionmag-backend/internal/shared/apperror"
	"fashionmag-backend/internal/shared/utils"
	"fashionmag-backend/pkg/cache"
	"fashionmag-backend/pkg/jwt"
)

// ========================================
// REQUEST / RESPONSE
// ========================================

type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r AdminLoginRequest) Validate() error {
	return apperror.FromValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required),
	))
}

type AdminLoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   int64     `json:"expires_at"`
	AdminID     uuid.UUID `json:"admin_id"`
}

// ========================================
// SERVICE
// ========================================

type ServiceInterface interface {
	AdminLogin(ctx context.Context, req AdminLoginRequest) (*AdminLoginResponse, error)
}

// Config describes the single admin account
type Config struct {
	Email            string
	PasswordHash     string
	MaxLoginAttempts int
	LoginLockout     time.Duration
}

type authService struct {
	email        string
	passwordHash []byte
	adminID      uuid.UUID
	tokens       *jwt.Manager
	limiter      *utils.LoginLimiter
}

func NewService(c cache.Cache, tokens *jwt.Manager, cfg Config) ServiceInterface {
	email := strings.ToLower(strings.TrimSpace(cfg.Email))
	return &authService{
		email:        email,
		passwordHash: []byte(cfg.PasswordHash),
		adminID:      AdminID(email),
		tokens:       tokens,
		limiter:      utils.NewLoginLimiter(c, "admin", cfg.MaxLoginAttempts, cfg.LoginLockout),
	}
}

// AdminID derives a stable subject ID for the configured admin email
func AdminID(email string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("fashionmag:admin:"+strings.ToLower(email)))
}

func invalidCredentials() error {
	return apperror.Unauthorized("invalid email or password")
}

func (s *authService) AdminLogin(ctx context.Context, req AdminLoginRequest) (*AdminLoginResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := req.Validate(); err != nil {
		return nil, err
	}

	locked, err := s.limiter.Locked(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, apperror.Unauthorized("too many failed attempts, try again later")
	}

	if len(s.passwordHash) == 0 {
		log.Warn().Msg("Admin login attempted but no admin password hash is configured")
		return nil, invalidCredentials()
	}

	// the hash is compared even for a wrong email so both paths cost the same
	err = bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password))
	if err != nil && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		log.Error().Err(err).Msg("Configured admin password hash is unreadable")
	}
	if err != nil || req.Email != s.email {
		if ferr := s.limiter.Fail(ctx, req.Email); ferr != nil {
			log.Warn().Err(ferr).Msg("Failed to record login attempt")
		}
		return nil, invalidCredentials()
	}

	if err := s.limiter.Reset(ctx, req.Email); err != nil {
		log.Warn().Err(err).Msg("Failed to reset login attempts")
	}

	token, expiresAt, err := s.tokens.GenerateToken(s.adminID.String(), s.email, jwt.RoleAdmin)
	if err != nil {
		return nil, err
	}

	log.Info().Str("admin_id", s.adminID.String()).Msg("Admin signed in")

	return &AdminLoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt.Unix(),
		AdminID:     s.adminID,
	}, nil
}
