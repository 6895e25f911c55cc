package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"fashionmag-backend/internal/domains/content/model"
	"fashionmag-backend/internal/domains/content/repository"
	talentModel "fashionmag-backend/internal/domains/talent/model"
	"fashionmag-backend/internal/shared/apperror"
	"fashionmag-backend/pkg/cache"
)

const publicCacheTTL = 10 * time.Minute

// ServiceInterface is the promotional content store
type ServiceInterface interface {
	// Admin
	Create(ctx context.Context, entry model.Entry) (model.Entry, error)
	Get(ctx context.Context, kind model.Kind, id uuid.UUID) (model.Entry, error)
	// Update merges a JSON patch into the stored entry
	Update(ctx context.Context, kind model.Kind, id uuid.UUID, patch json.RawMessage) (model.Entry, error)
	Delete(ctx context.Context, kind model.Kind, id uuid.UUID) error
	SetOrder(ctx context.Context, kind model.Kind, id uuid.UUID, order int) (model.Entry, error)
	SetActive(ctx context.Context, kind model.Kind, id uuid.UUID, active bool) (model.Entry, error)
	List(ctx context.Context, kind model.Kind) ([]model.Entry, error)

	// Public, cached
	ListPublic(ctx context.Context, kind model.Kind, activeOnly bool) ([]model.Entry, error)
}

// TalentReader resolves contest winner talent references
type TalentReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*talentModel.Talent, error)
}

type contentService struct {
	repo    repository.Repository
	talents TalentReader
	cache   cache.Cache
	now     func() time.Time
}

func NewService(repo repository.Repository, talents TalentReader, c cache.Cache) ServiceInterface {
	return &contentService{
		repo:    repo,
		talents: talents,
		cache:   c,
		now:     time.Now,
	}
}

// =====================================================
// WRITE
// =====================================================

func (s *contentService) Create(ctx context.Context, entry model.Entry) (model.Entry, error) {
	if err := s.prepare(ctx, entry, nil); err != nil {
		return nil, err
	}

	now := s.now()
	meta := entry.GetMeta()
	meta.ID = uuid.New()
	meta.CreatedAt = now
	meta.UpdatedAt = now

	if err := s.repo.Create(ctx, entry, entry.Kind().CollectionLimit()); err != nil {
		return nil, err
	}
	s.invalidate(ctx, entry.Kind())

	log.Info().
		Str("kind", string(entry.Kind())).
		Str("id", meta.ID.String()).
		Msg("Content entry created")

	return s.resolve(ctx, entry), nil
}

func (s *contentService) Update(
	ctx context.Context,
	kind model.Kind,
	id uuid.UUID,
	patch json.RawMessage,
) (model.Entry, error) {
	entry, err := s.repo.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	meta := *entry.GetMeta()
	linked := linkedTalent(entry)
	if err := json.Unmarshal(patch, entry); err != nil {
		return nil, apperror.Validation("invalid request body", err.Error())
	}
	*entry.GetMeta() = meta

	if err := s.prepare(ctx, entry, linked); err != nil {
		return nil, err
	}
	return s.save(ctx, entry)
}

func (s *contentService) Delete(ctx context.Context, kind model.Kind, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, kind, id); err != nil {
		return err
	}
	s.invalidate(ctx, kind)

	log.Info().Str("kind", string(kind)).Str("id", id.String()).Msg("Content entry deleted")
	return nil
}

func (s *contentService) SetOrder(ctx context.Context, kind model.Kind, id uuid.UUID, order int) (model.Entry, error) {
	if !kind.Orderable() {
		return nil, apperror.Validation(fmt.Sprintf("%s entries cannot be reordered", kind), nil)
	}

	entry, err := s.repo.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	orderable, ok := entry.(model.Orderable)
	if !ok {
		return nil, fmt.Errorf("%s entry does not support ordering", kind)
	}
	orderable.SetOrder(order)
	return s.save(ctx, entry)
}

func (s *contentService) SetActive(ctx context.Context, kind model.Kind, id uuid.UUID, active bool) (model.Entry, error) {
	if !kind.Activatable() {
		return nil, apperror.Validation(fmt.Sprintf("%s entries have no active flag", kind), nil)
	}

	entry, err := s.repo.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	activatable, ok := entry.(model.Activatable)
	if !ok {
		return nil, fmt.Errorf("%s entry does not support activation", kind)
	}
	activatable.SetActive(active)
	return s.save(ctx, entry)
}

func (s *contentService) save(ctx context.Context, entry model.Entry) (model.Entry, error) {
	entry.GetMeta().UpdatedAt = s.now()
	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	s.invalidate(ctx, entry.Kind())
	return s.resolve(ctx, entry), nil
}

// prepare normalizes and validates an entry before it is written. A winner's
// talent reference is checked only when it differs from the stored one, so a
// dangling link left by a deleted talent does not block later edits.
func (s *contentService) prepare(ctx context.Context, entry model.Entry, stored *uuid.UUID) error {
	entry.Normalize()
	if err := entry.Validate(); err != nil {
		return err
	}

	talentID := linkedTalent(entry)
	if talentID == nil || (stored != nil && *stored == *talentID) {
		return nil
	}
	if _, err := s.talents.GetByID(ctx, *talentID); err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			return apperror.Validation("referenced talent does not exist", map[string]string{
				"talent_id": talentID.String(),
			})
		}
		return err
	}
	return nil
}

func linkedTalent(entry model.Entry) *uuid.UUID {
	winner, ok := entry.(*model.ContestWinner)
	if !ok || winner.TalentID == nil {
		return nil
	}
	id := *winner.TalentID
	return &id
}

// =====================================================
// READ
// =====================================================

func (s *contentService) Get(ctx context.Context, kind model.Kind, id uuid.UUID) (model.Entry, error) {
	entry, err := s.repo.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, entry), nil
}

func (s *contentService) List(ctx context.Context, kind model.Kind) ([]model.Entry, error) {
	entries, err := s.repo.List(ctx, kind, false)
	if err != nil {
		return nil, err
	}
	return s.resolveAll(ctx, entries), nil
}

// ListPublic serves the public pages. Hero slides are always listed in full;
// activatable kinds honour activeOnly.
func (s *contentService) ListPublic(ctx context.Context, kind model.Kind, activeOnly bool) ([]model.Entry, error) {
	key := kind.CacheKey(activeOnly)

	if entries, ok := s.fromCache(ctx, kind, key); ok {
		return s.resolveAll(ctx, entries), nil
	}

	entries, err := s.repo.List(ctx, kind, activeOnly)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, entries, publicCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to cache content")
	}
	return s.resolveAll(ctx, entries), nil
}

func (s *contentService) fromCache(ctx context.Context, kind model.Kind, key string) ([]model.Entry, bool) {
	var raw []json.RawMessage
	found, err := s.cache.Get(ctx, key, &raw)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to read content cache")
		return nil, false
	}
	if !found {
		return nil, false
	}

	entries := make([]model.Entry, 0, len(raw))
	for _, item := range raw {
		entry, err := model.NewEntry(kind)
		if err != nil {
			return nil, false
		}
		if err := json.Unmarshal(item, entry); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Discarding malformed content cache")
			return nil, false
		}
		entries = append(entries, entry)
	}
	return entries, true
}

func (s *contentService) invalidate(ctx context.Context, kind model.Kind) {
	if err := s.cache.Delete(ctx, kind.CacheKey(true), kind.CacheKey(false)); err != nil {
		log.Warn().Err(err).Str("kind", string(kind)).Msg("Failed to invalidate content cache")
	}
}

// resolve fills TalentLinked on contest winners. A missing talent is not an error.
func (s *contentService) resolve(ctx context.Context, entry model.Entry) model.Entry {
	winner, ok := entry.(*model.ContestWinner)
	if !ok {
		return entry
	}
	winner.TalentLinked = false
	if winner.TalentID == nil {
		return entry
	}

	_, err := s.talents.GetByID(ctx, *winner.TalentID)
	switch {
	case err == nil:
		winner.TalentLinked = true
	case !apperror.IsKind(err, apperror.KindNotFound):
		log.Warn().Err(err).Str("talent_id", winner.TalentID.String()).Msg("Failed to resolve winner talent")
	}
	return entry
}

func (s *contentService) resolveAll(ctx context.Context, entries []model.Entry) []model.Entry {
	for _, e := range entries {
		s.resolve(ctx, e)
	}
	return entries
}
