package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"fashionmag-backend/internal/domains/talent/model"
	"fashionmag-backend/internal/domains/talent/repository"
	"fashionmag-backend/internal/shared"
	"fashionmag-backend/internal/shared/apperror"
	"fashionmag-backend/internal/shared/utils"
	"fashionmag-backend/pkg/cache"
	"fashionmag-backend/pkg/jwt"
)

const (
	defaultBcryptCost   = 12
	defaultResetCodeTTL = 15 * time.Minute
	maxResetCodeGuesses = 5
)

// Config tunes password hashing, login lockout and reset codes
type Config struct {
	BcryptCost       int
	MaxLoginAttempts int
	LoginLockout     time.Duration
	ResetCodeTTL     time.Duration
}

type talentService struct {
	repo         repository.Repository
	purger       VotePurger
	cleaner      MediaCleaner
	mailer       ResetCodeSender
	cache        cache.Cache
	tokens       *jwt.Manager
	limiter      *utils.LoginLimiter
	resetLimiter *utils.LoginLimiter
	resetTTL     time.Duration
	cost         int
	now          func() time.Time
}

// NewService wires the registry. purger and cleaner may be nil; without a
// mailer, forgot-password requests fail.
func NewService(
	repo repository.Repository,
	purger VotePurger,
	cleaner MediaCleaner,
	mailer ResetCodeSender,
	c cache.Cache,
	tokens *jwt.Manager,
	cfg Config,
) ServiceInterface {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = defaultBcryptCost
	}
	resetTTL := cfg.ResetCodeTTL
	if resetTTL <= 0 {
		resetTTL = defaultResetCodeTTL
	}
	return &talentService{
		repo:         repo,
		purger:       purger,
		cleaner:      cleaner,
		mailer:       mailer,
		cache:        c,
		tokens:       tokens,
		limiter:      utils.NewLoginLimiter(c, "talent", cfg.MaxLoginAttempts, cfg.LoginLockout),
		resetLimiter: utils.NewLoginLimiter(c, "talent_reset", maxResetCodeGuesses, resetTTL),
		resetTTL:     resetTTL,
		cost:         cost,
		now:          time.Now,
	}
}

// =====================================================
// REGISTER
// =====================================================

func (s *talentService) Register(ctx context.Context, req model.RegisterRequest) (*model.Talent, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := model.CheckMedia(req.PortfolioImages, req.PortfolioVideo); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	images := append([]string{}, req.PortfolioImages...)
	talent := &model.Talent{
		ID:              uuid.New(),
		Name:            req.Name,
		Email:           req.Email,
		PasswordHash:    string(hash),
		Phone:           req.Phone,
		InstagramID:     req.InstagramID,
		Category:        req.Category,
		Bio:             req.Bio,
		ProfileImage:    req.ProfileImage,
		PortfolioImages: images,
		PortfolioVideo:  req.PortfolioVideo,
		Status:          model.StatusPending,
		Rank:            model.RankSentinel,
		AgreedToTerms:   true,
		AgreedAt:        &now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, talent); err != nil {
		return nil, err
	}

	log.Info().
		Str("talent_id", talent.ID.String()).
		Str("category", string(talent.Category)).
		Msg("Talent registered")

	return talent, nil
}

// =====================================================
// READ
// =====================================================

func (s *talentService) Get(ctx context.Context, actor *shared.Actor, id uuid.UUID) (*model.Talent, error) {
	talent, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !talent.IsApproved() && !actor.IsAdmin() && !actor.Owns(id) {
		return nil, model.NewTalentNotFoundError()
	}
	return talent, nil
}

// =====================================================
// UPDATE PROFILE
// =====================================================

func (s *talentService) UpdateProfile(
	ctx context.Context,
	actor *shared.Actor,
	id uuid.UUID,
	req model.UpdateTalentRequest,
) (*model.Talent, error) {
	if !actor.IsAdmin() && !actor.Owns(id) {
		return nil, apperror.Forbidden("only the talent or an admin can edit this profile")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	talent, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyUpdate(talent, req)
	if err := model.CheckMedia(talent.PortfolioImages, talent.PortfolioVideo); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateProfile(ctx, talent); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func applyUpdate(t *model.Talent, req model.UpdateTalentRequest) {
	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Phone != nil {
		t.Phone = *req.Phone
	}
	if req.InstagramID != nil {
		t.InstagramID = *req.InstagramID
	}
	if req.Category != nil {
		t.Category = *req.Category
	}
	if req.Bio != nil {
		t.Bio = *req.Bio
	}
	if req.ProfileImage != nil {
		t.ProfileImage = *req.ProfileImage
	}
	if req.PortfolioImages != nil {
		t.PortfolioImages = append([]string{}, (*req.PortfolioImages)...)
	}
	if req.RemoveVideo {
		t.PortfolioVideo = nil
	} else if req.PortfolioVideo != nil {
		v := *req.PortfolioVideo
		t.PortfolioVideo = &v
	}
}

// =====================================================
// MODERATION
// =====================================================

func (s *talentService) Approve(ctx context.Context, id uuid.UUID) (*model.Talent, error) {
	return s.transition(ctx, id, func(current model.Status) (model.Status, bool) {
		return model.StatusApproved, current != model.StatusApproved
	})
}

func (s *talentService) Reject(ctx context.Context, id uuid.UUID) (*model.Talent, error) {
	return s.transition(ctx, id, func(current model.Status) (model.Status, bool) {
		return model.StatusRejected, current != model.StatusRejected
	})
}

// Revoke hides an approved talent again; any other state is left as is.
func (s *talentService) Revoke(ctx context.Context, id uuid.UUID) (*model.Talent, error) {
	return s.transition(ctx, id, func(current model.Status) (model.Status, bool) {
		return model.StatusPending, current == model.StatusApproved
	})
}

func (s *talentService) transition(
	ctx context.Context,
	id uuid.UUID,
	next func(model.Status) (model.Status, bool),
) (*model.Talent, error) {
	talent, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status, changed := next(talent.Status)
	if !changed {
		return talent, nil
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	log.Info().
		Str("talent_id", id.String()).
		Str("from", string(talent.Status)).
		Str("to", string(status)).
		Msg("Talent status changed")

	return s.repo.GetByID(ctx, id)
}

func (s *talentService) SetRank(ctx context.Context, id uuid.UUID, rank int) (*model.Talent, error) {
	if err := s.repo.UpdateRank(ctx, id, rank); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *talentService) ResetPassword(ctx context.Context, id uuid.UUID, req model.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, id, string(hash)); err != nil {
		return err
	}

	log.Info().Str("talent_id", id.String()).Msg("Talent password reset by admin")
	return nil
}

// =====================================================
// DELETE
// =====================================================

// Delete removes the talent and its votes. Awards that reference the talent
// keep the dangling id.
func (s *talentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.purger != nil {
		if err := s.purger.PurgeTalent(ctx, id); err != nil {
			return fmt.Errorf("failed to purge votes: %w", err)
		}
	}

	if s.cleaner != nil {
		if err := s.cleaner.EnqueueTalentMediaCleanup(ctx, id); err != nil {
			log.Warn().Err(err).Str("talent_id", id.String()).Msg("Failed to enqueue media cleanup")
		}
	}

	log.Info().Str("talent_id", id.String()).Msg("Talent deleted")
	return nil
}
