package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"fashionmag-backend/internal/domains/vote/model"
	"fashionmag-backend/internal/shared/apperror"
)

// VoteCounter owns the talent-side vote_count
type VoteCounter interface {
	// AdjustVotes fails with NotFound when approvedOnly is set and the talent
	// is not approved
	AdjustVotes(talentID uuid.UUID, delta int, approvedOnly bool) (int, error)
	// SyncVotes sets the counter to n and reports whether it changed
	SyncVotes(talentID uuid.UUID, n int) (bool, error)
}

// MemoryRepository keeps the ledger in process. One mutex covers the insert
// and the counter update so the count always equals the number of rows.
type MemoryRepository struct {
	mu sync.Mutex

	votes   map[uuid.UUID]map[string]time.Time
	counter VoteCounter
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository(counter VoteCounter) *MemoryRepository {
	return &MemoryRepository{
		votes:   make(map[uuid.UUID]map[string]time.Time),
		counter: counter,
	}
}

func (m *MemoryRepository) Record(_ context.Context, talentID uuid.UUID, voterID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	voters := m.votes[talentID]
	if _, voted := voters[voterID]; voted {
		return 0, model.NewDuplicateVoteError()
	}

	count, err := m.counter.AdjustVotes(talentID, 1, true)
	if err != nil {
		return 0, err
	}

	if voters == nil {
		voters = make(map[string]time.Time)
		m.votes[talentID] = voters
	}
	voters[voterID] = time.Now()
	return count, nil
}

func (m *MemoryRepository) Count(_ context.Context, talentID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.votes[talentID]), nil
}

func (m *MemoryRepository) Total(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0
	for _, voters := range m.votes {
		total += len(voters)
	}
	return total, nil
}

func (m *MemoryRepository) PurgeTalent(_ context.Context, talentID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.votes, talentID)
	return nil
}

func (m *MemoryRepository) Reconcile(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fixed := 0
	for talentID, voters := range m.votes {
		changed, err := m.counter.SyncVotes(talentID, len(voters))
		if err != nil {
			if apperror.IsKind(err, apperror.KindNotFound) {
				continue
			}
			return fixed, err
		}
		if changed {
			fixed++
		}
	}
	return fixed, nil
}
