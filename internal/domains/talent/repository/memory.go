package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"fashionmag-backend/internal/domains/talent/model"
)

// MemoryRepository is a process-local Repository used by STORAGE_DRIVER=memory and tests.
type MemoryRepository struct {
	mu sync.RWMutex

	talents map[uuid.UUID]*model.Talent
	emails  map[string]uuid.UUID
	now     func() time.Time
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		talents: make(map[uuid.UUID]*model.Talent),
		emails:  make(map[string]uuid.UUID),
		now:     time.Now,
	}
}

func (m *MemoryRepository) Create(_ context.Context, t *model.Talent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	email := model.NormalizeEmail(t.Email)
	if _, taken := m.emails[email]; taken {
		return model.NewEmailTakenError()
	}
	m.emails[email] = t.ID
	m.talents[t.ID] = t.Clone()
	return nil
}

func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Talent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.talents[id]
	if !ok {
		return nil, model.NewTalentNotFoundError()
	}
	return t.Clone(), nil
}

func (m *MemoryRepository) GetByEmail(ctx context.Context, email string) (*model.Talent, error) {
	m.mu.RLock()
	id, ok := m.emails[model.NormalizeEmail(email)]
	m.mu.RUnlock()
	if !ok {
		return nil, model.NewTalentNotFoundError()
	}
	return m.GetByID(ctx, id)
}

func (m *MemoryRepository) UpdateProfile(_ context.Context, t *model.Talent) error {
	return m.mutate(t.ID, func(stored *model.Talent) {
		stored.Name = t.Name
		stored.Phone = t.Phone
		stored.InstagramID = t.InstagramID
		stored.Category = t.Category
		stored.Bio = t.Bio
		stored.ProfileImage = t.ProfileImage
		cp := t.Clone()
		stored.PortfolioImages = cp.PortfolioImages
		stored.PortfolioVideo = cp.PortfolioVideo
	})
}

func (m *MemoryRepository) UpdateStatus(_ context.Context, id uuid.UUID, status model.Status) error {
	return m.mutate(id, func(stored *model.Talent) { stored.Status = status })
}

func (m *MemoryRepository) UpdateRank(_ context.Context, id uuid.UUID, rank int) error {
	return m.mutate(id, func(stored *model.Talent) { stored.Rank = rank })
}

func (m *MemoryRepository) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	return m.mutate(id, func(stored *model.Talent) { stored.PasswordHash = passwordHash })
}

func (m *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.talents[id]
	if !ok {
		return model.NewTalentNotFoundError()
	}
	delete(m.emails, model.NormalizeEmail(t.Email))
	delete(m.talents, id)
	return nil
}

func (m *MemoryRepository) List(_ context.Context, filter model.Filter) ([]*model.Talent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*model.Talent, 0, len(m.talents))
	for _, t := range m.talents {
		if filter.Category != nil && t.Category != *filter.Category {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		out = append(out, t.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return model.Less(out[i], out[j]) })
	return out, nil
}

func (m *MemoryRepository) ListByStatus(_ context.Context, status model.Status) ([]*model.Talent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*model.Talent, 0)
	for _, t := range m.talents {
		if t.Status == status {
			out = append(out, t.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (m *MemoryRepository) CountByStatus(context.Context) (map[model.Status]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[model.Status]int)
	for _, t := range m.talents {
		counts[t.Status]++
	}
	return counts, nil
}

// AdjustVotes changes the vote counter by delta and returns the new value.
// With approvedOnly set, talents that are not approved are reported as not
// found, which is how the vote ledger refuses votes racing a moderation change.
func (m *MemoryRepository) AdjustVotes(id uuid.UUID, delta int, approvedOnly bool) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.talents[id]
	if !ok || (approvedOnly && t.Status != model.StatusApproved) {
		return 0, model.NewTalentNotFoundError()
	}
	t.VoteCount += delta
	if t.VoteCount < 0 {
		t.VoteCount = 0
	}
	return t.VoteCount, nil
}

func (m *MemoryRepository) SyncVotes(id uuid.UUID, n int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.talents[id]
	if !ok {
		return false, model.NewTalentNotFoundError()
	}
	if t.VoteCount == n {
		return false, nil
	}
	t.VoteCount = n
	return true, nil
}

func (m *MemoryRepository) mutate(id uuid.UUID, fn func(*model.Talent)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.talents[id]
	if !ok {
		return model.NewTalentNotFoundError()
	}
	fn(t)
	t.UpdatedAt = m.now()
	return nil
}
