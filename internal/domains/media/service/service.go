package service

import (
	"context"
	"fmt"
	"path"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	contentModel "fashionmag-backend/internal/domains/content/model"
	"fashionmag-backend/internal/infrastructure/storage"
	"fashionmag-backend/internal/shared"
	"fashionmag-backend/internal/shared/apperror"
)

// Uploader is the object store
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// UploadRequest is one image upload. Kind routes admin uploads into
// content/<kind>/; TalentID lets an admin upload on behalf of a talent.
type UploadRequest struct {
	Data     []byte
	Kind     string
	TalentID string
}

type UploadResult struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	SizeBytes   int    `json:"size_bytes"`
}

type ServiceInterface interface {
	Upload(ctx context.Context, actor *shared.Actor, req UploadRequest) (*UploadResult, error)
}

type mediaService struct {
	uploader  Uploader
	processor *storage.ImageProcessor
}

func NewService(uploader Uploader, processor *storage.ImageProcessor) ServiceInterface {
	if processor == nil {
		processor = storage.NewImageProcessor()
	}
	return &mediaService{uploader: uploader, processor: processor}
}

func (s *mediaService) Upload(ctx context.Context, actor *shared.Actor, req UploadRequest) (*UploadResult, error) {
	prefix, err := s.prefixFor(actor, req)
	if err != nil {
		return nil, err
	}

	img, err := s.processor.Process(req.Data)
	if err != nil {
		return nil, apperror.Validation(err.Error(), nil)
	}

	key := path.Join(prefix, uuid.NewString()+img.Extension)
	url, err := s.uploader.Upload(ctx, key, img.Data, img.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	log.Info().
		Str("actor_id", actor.ID.String()).
		Str("key", key).
		Int("size", len(img.Data)).
		Msg("Media uploaded")

	return &UploadResult{
		URL:         url,
		Key:         key,
		ContentType: img.ContentType,
		SizeBytes:   len(img.Data),
	}, nil
}

// prefixFor picks talents/<id>/ or content/<kind>/ for the caller
func (s *mediaService) prefixFor(actor *shared.Actor, req UploadRequest) (string, error) {
	switch {
	case actor == nil:
		return "", apperror.Unauthorized("authentication required")

	case actor.IsAdmin():
		if req.TalentID != "" {
			id, err := uuid.Parse(req.TalentID)
			if err != nil {
				return "", apperror.Validation("talent_id must be a valid UUID", nil)
			}
			return talentPrefix(id), nil
		}
		kind, err := contentModel.ParseKind(req.Kind)
		if err != nil {
			return "", err
		}
		return path.Join("content", string(kind)) + "/", nil

	case actor.Role == shared.RoleTalent:
		if req.TalentID != "" && req.TalentID != actor.ID.String() {
			return "", apperror.Forbidden("talents can only upload their own media")
		}
		return talentPrefix(actor.ID), nil
	}

	return "", apperror.Forbidden("role cannot upload media")
}

func talentPrefix(id uuid.UUID) string {
	return "talents/" + id.String() + "/"
}
