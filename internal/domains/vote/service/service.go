package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	talentModel "fashionmag-backend/internal/domains/talent/model"
	"fashionmag-backend/internal/domains/vote/model"
	"fashionmag-backend/internal/domains/vote/repository"
	"fashionmag-backend/internal/shared/apperror"
)

// ServiceInterface is the voting ledger
type ServiceInterface interface {
	CastVote(ctx context.Context, talentID uuid.UUID, voterID string) (*model.VoteResult, error)
	GetVoteCount(ctx context.Context, talentID uuid.UUID) (*model.VoteResult, error)
}

// TalentReader looks up talents in the registry
type TalentReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*talentModel.Talent, error)
}

type voteService struct {
	repo    repository.Repository
	talents TalentReader
}

func NewService(repo repository.Repository, talents TalentReader) ServiceInterface {
	return &voteService{repo: repo, talents: talents}
}

// CastVote records one vote per (talent, voter). Only approved talents accept votes.
func (s *voteService) CastVote(ctx context.Context, talentID uuid.UUID, voterID string) (*model.VoteResult, error) {
	voterID = strings.TrimSpace(voterID)
	if voterID == "" {
		return nil, apperror.Validation("voter identity is required", nil)
	}

	if _, err := s.approvedTalent(ctx, talentID); err != nil {
		return nil, err
	}

	count, err := s.repo.Record(ctx, talentID, voterID)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("talent_id", talentID.String()).
		Int("vote_count", count).
		Msg("Vote recorded")

	return &model.VoteResult{TalentID: talentID, VoteCount: count}, nil
}

func (s *voteService) GetVoteCount(ctx context.Context, talentID uuid.UUID) (*model.VoteResult, error) {
	if _, err := s.approvedTalent(ctx, talentID); err != nil {
		return nil, err
	}

	count, err := s.repo.Count(ctx, talentID)
	if err != nil {
		return nil, err
	}
	return &model.VoteResult{TalentID: talentID, VoteCount: count}, nil
}

func (s *voteService) approvedTalent(ctx context.Context, talentID uuid.UUID) (*talentModel.Talent, error) {
	talent, err := s.talents.GetByID(ctx, talentID)
	if err != nil {
		return nil, err
	}
	if !talent.IsApproved() {
		return nil, talentModel.NewTalentNotFoundError()
	}
	return talent, nil
}
