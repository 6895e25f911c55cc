package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"fashionmag-backend/internal/domains/talent/model"
	"fashionmag-backend/internal/infrastructure/email"
	"fashionmag-backend/internal/shared/apperror"
)

func resetCodeKey(email string) string {
	return "talent:reset_code:" + email
}

// ForgotPassword stores a hashed one-time code under a TTL and mails it.
// A new request replaces any earlier code.
func (s *talentService) ForgotPassword(ctx context.Context, req model.ForgotPasswordRequest) error {
	req.Email = model.NormalizeEmail(req.Email)
	if err := req.Validate(); err != nil {
		return err
	}

	talent, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			log.Info().Msg("Password reset requested for unknown email")
			return nil
		}
		return err
	}
	if s.mailer == nil {
		return fmt.Errorf("password reset mail is not configured")
	}

	code, err := generateResetCode()
	if err != nil {
		return fmt.Errorf("generate reset code: %w", err)
	}
	if err := s.cache.Set(ctx, resetCodeKey(req.Email), hashResetCode(code), s.resetTTL); err != nil {
		return fmt.Errorf("store reset code: %w", err)
	}
	if err := s.resetLimiter.Reset(ctx, req.Email); err != nil {
		log.Warn().Err(err).Msg("Failed to reset reset-code attempts")
	}

	err = s.mailer.SendResetCode(ctx, email.ResetCodeEmail{
		Email:     talent.Email,
		Name:      talent.Name,
		Code:      code,
		ExpiresIn: fmt.Sprintf("%d minutes", int(s.resetTTL.Minutes())),
	})
	if err != nil {
		return fmt.Errorf("send reset code: %w", err)
	}

	log.Info().Str("talent_id", talent.ID.String()).Msg("Password reset code issued")
	return nil
}

// ResetPasswordWithCode sets a new password when the code matches. Wrong
// guesses are counted; after too many the code is burned.
func (s *talentService) ResetPasswordWithCode(ctx context.Context, req model.ResetWithCodeRequest) error {
	req.Email = model.NormalizeEmail(req.Email)
	if err := req.Validate(); err != nil {
		return err
	}

	key := resetCodeKey(req.Email)

	locked, err := s.resetLimiter.Locked(ctx, req.Email)
	if err != nil {
		return err
	}
	if locked {
		_ = s.cache.Delete(ctx, key)
		return model.NewInvalidResetCodeError()
	}

	var stored string
	found, err := s.cache.Get(ctx, key, &stored)
	if err != nil {
		return fmt.Errorf("read reset code: %w", err)
	}
	if !found {
		return model.NewInvalidResetCodeError()
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(hashResetCode(req.Code))) != 1 {
		if err := s.resetLimiter.Fail(ctx, req.Email); err != nil {
			log.Warn().Err(err).Msg("Failed to record reset code attempt")
		}
		return model.NewInvalidResetCodeError()
	}

	talent, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			return model.NewInvalidResetCodeError()
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, talent.ID, string(hash)); err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Msg("Failed to delete used reset code")
	}
	_ = s.resetLimiter.Reset(ctx, req.Email)
	_ = s.limiter.Reset(ctx, req.Email)

	log.Info().Str("talent_id", talent.ID.String()).Msg("Talent password reset with code")
	return nil
}

func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func hashResetCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
