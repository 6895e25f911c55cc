package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"fashionmag-backend/internal/domains/talent/model"
	"fashionmag-backend/internal/shared/apperror"
	"fashionmag-backend/pkg/jwt"
)

// Login verifies a talent's password and issues a talent-role token.
// Talents can sign in in any moderation state to manage their profile.
func (s *talentService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	req.Email = model.NormalizeEmail(req.Email)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	locked, err := s.limiter.Locked(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, model.NewAccountLockedError()
	}

	talent, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if !apperror.IsKind(err, apperror.KindNotFound) {
			return nil, err
		}
		return nil, s.failLogin(ctx, req.Email)
	}

	err = bcrypt.CompareHashAndPassword([]byte(talent.PasswordHash), []byte(req.Password))
	if err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			log.Error().Err(err).Str("talent_id", talent.ID.String()).Msg("Stored password hash is unreadable")
		}
		return nil, s.failLogin(ctx, req.Email)
	}

	if err := s.limiter.Reset(ctx, req.Email); err != nil {
		log.Warn().Err(err).Msg("Failed to reset login attempts")
	}

	token, expiresAt, err := s.tokens.GenerateToken(talent.ID.String(), talent.Email, jwt.RoleTalent)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt.Unix(),
		TalentID:    talent.ID,
		Talent:      talent,
	}, nil
}

func (s *talentService) failLogin(ctx context.Context, email string) error {
	if err := s.limiter.Fail(ctx, email); err != nil {
		log.Warn().Err(err).Msg("Failed to record login attempt")
	}
	return model.NewInvalidCredentialsError()
}
