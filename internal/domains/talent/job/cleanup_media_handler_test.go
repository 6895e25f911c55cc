package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fashionmag-backend/internal/shared"
)

type fakeRemover struct {
	prefixes []string
	err      error
}

func (f *fakeRemover) DeleteByPrefix(_ context.Context, prefix string) error {
	f.prefixes = append(f.prefixes, prefix)
	return f.err
}

func task(t *testing.T, talentID string) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(shared.CleanupTalentMediaPayload{TalentID: talentID})
	require.NoError(t, err)
	return asynq.NewTask(shared.TypeCleanupTalentMedia, payload)
}

func TestCleanupMediaDeletesTalentPrefix(t *testing.T) {
	remover := &fakeRemover{}
	id := uuid.New()

	err := NewCleanupMediaHandler(remover).ProcessTask(context.Background(), task(t, id.String()))
	require.NoError(t, err)
	assert.Equal(t, []string{"talents/" + id.String() + "/"}, remover.prefixes)
}

func TestCleanupMediaBadPayloadSkipsRetry(t *testing.T) {
	remover := &fakeRemover{}

	err := NewCleanupMediaHandler(remover).ProcessTask(context.Background(), task(t, "not-a-uuid"))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, remover.prefixes)
}

func TestCleanupMediaStorageErrorRetries(t *testing.T) {
	remover := &fakeRemover{err: errors.New("minio down")}

	err := NewCleanupMediaHandler(remover).ProcessTask(context.Background(), task(t, uuid.NewString()))
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}
