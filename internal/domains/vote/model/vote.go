package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"fashionmag-backend/internal/shared/apperror"
)

// Vote is one ledger row; a (talent, voter) pair appears at most once
type Vote struct {
	TalentID  uuid.UUID `json:"talent_id"`
	VoterID   string    `json:"voter_id"`
	CreatedAt time.Time `json:"created_at"`
}

type CastVoteRequest struct {
	TalentID string `json:"talent_id"`
}

func (r CastVoteRequest) Validate() error {
	return apperror.FromValidation(validation.ValidateStruct(&r,
		validation.Field(&r.TalentID, validation.Required.Error("talent_id is required"), is.UUID),
	))
}

// VoteResult is returned after a vote and by the count lookup
type VoteResult struct {
	TalentID  uuid.UUID `json:"talent_id"`
	VoteCount int       `json:"vote_count"`
}

func NewDuplicateVoteError() *apperror.Error {
	return apperror.DuplicateVote("you have already voted for this talent")
}
