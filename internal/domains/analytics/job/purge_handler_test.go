package job

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fashionmag-backend/internal/domains/analytics/model"
	"fashionmag-backend/internal/domains/analytics/repository"
	"fashionmag-backend/internal/domains/analytics/service"
	contentRepo "fashionmag-backend/internal/domains/content/repository"
	talentRepo "fashionmag-backend/internal/domains/talent/repository"
	"fashionmag-backend/internal/shared"
)

func TestPurgeDropsExpiredEvents(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	svc := service.NewService(repo, talentRepo.NewMemoryRepository(), contentRepo.NewMemoryRepository())

	now := time.Now().UTC()
	for _, at := range []time.Time{now.AddDate(0, 0, -100), now.AddDate(0, 0, -10), now} {
		require.NoError(t, repo.Insert(ctx, &model.Event{ID: uuid.New(), Type: model.EventPageView, CreatedAt: at}))
	}

	h := NewPurgeEventsHandler(svc, 30)
	require.NoError(t, h.ProcessTask(ctx, asynq.NewTask(shared.TypePurgeAnalytics, nil)))

	n, err := repo.CountSince(ctx, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestPurgeRejectsBadRetention(t *testing.T) {
	svc := service.NewService(repository.NewMemoryRepository(), talentRepo.NewMemoryRepository(), contentRepo.NewMemoryRepository())

	err := NewPurgeEventsHandler(svc, 0).ProcessTask(context.Background(), asynq.NewTask(shared.TypePurgeAnalytics, nil))
	assert.Error(t, err)
}
