package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	talentModel "fashionmag-backend/internal/domains/talent/model"
	talentRepo "fashionmag-backend/internal/domains/talent/repository"
	"fashionmag-backend/internal/shared/apperror"
)

func seedTalent(t *testing.T, talents *talentRepo.MemoryRepository, status talentModel.Status) uuid.UUID {
	t.Helper()
	now := time.Now()
	id := uuid.New()
	require.NoError(t, talents.Create(context.Background(), &talentModel.Talent{
		ID:        id,
		Name:      "Ava",
		Email:     id.String() + "@example.com",
		Category:  talentModel.CategoryPhotography,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}))
	return id
}

func TestMemoryRecordRefusesUnapprovedTalent(t *testing.T) {
	ctx := context.Background()
	talents := talentRepo.NewMemoryRepository()
	votes := NewMemoryRepository(talents)

	id := seedTalent(t, talents, talentModel.StatusPending)

	_, err := votes.Record(ctx, id, "voter-1")
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound), "got %v", err)

	count, err := votes.Count(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, count)

	stored, err := talents.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, stored.VoteCount)
}

func TestMemoryRecordRacingRevokeKeepsCountConsistent(t *testing.T) {
	ctx := context.Background()
	talents := talentRepo.NewMemoryRepository()
	votes := NewMemoryRepository(talents)

	id := seedTalent(t, talents, talentModel.StatusApproved)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = votes.Record(ctx, id, fmt.Sprintf("voter-%d", i))
		}(i)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = talents.UpdateStatus(ctx, id, talentModel.StatusPending)
	}()
	wg.Wait()

	// Votes after the revoke are refused outright
	_, err := votes.Record(ctx, id, "late-voter")
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound), "got %v", err)

	count, err := votes.Count(ctx, id)
	require.NoError(t, err)
	stored, err := talents.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, count, stored.VoteCount)
}
