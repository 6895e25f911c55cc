package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fashionmag-backend/internal/domains/talent/model"
	"fashionmag-backend/internal/domains/talent/repository"
	"fashionmag-backend/internal/infrastructure/email"
	"fashionmag-backend/internal/shared"
	"fashionmag-backend/internal/shared/apperror"
	"fashionmag-backend/pkg/cache"
	"fashionmag-backend/pkg/jwt"
)

type recordingPurger struct{ purged []uuid.UUID }

func (p *recordingPurger) PurgeTalent(_ context.Context, id uuid.UUID) error {
	p.purged = append(p.purged, id)
	return nil
}

type recordingCleaner struct{ queued []uuid.UUID }

func (c *recordingCleaner) EnqueueTalentMediaCleanup(_ context.Context, id uuid.UUID) error {
	c.queued = append(c.queued, id)
	return nil
}

type recordingMailer struct{ sent []email.ResetCodeEmail }

func (m *recordingMailer) SendResetCode(_ context.Context, data email.ResetCodeEmail) error {
	m.sent = append(m.sent, data)
	return nil
}

type fixture struct {
	svc     ServiceInterface
	repo    *repository.MemoryRepository
	purger  *recordingPurger
	cleaner *recordingCleaner
	mailer  *recordingMailer
	tokens  *jwt.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:    repository.NewMemoryRepository(),
		purger:  &recordingPurger{},
		cleaner: &recordingCleaner{},
		mailer:  &recordingMailer{},
		tokens:  jwt.NewManager("test-secret", time.Hour),
	}
	f.svc = NewService(f.repo, f.purger, f.cleaner, f.mailer, cache.NewMemoryCache(), f.tokens, Config{
		BcryptCost:       bcrypt.MinCost,
		MaxLoginAttempts: 5,
		LoginLockout:     15 * time.Minute,
	})
	return f
}

func registerRequest(name string) model.RegisterRequest {
	return model.RegisterRequest{
		Name:          name,
		Email:         strings.ToLower(name) + "@example.com",
		Password:      "secret1",
		Phone:         "+15550100",
		InstagramID:   "@" + strings.ToLower(name),
		Category:      model.CategoryModelFemale,
		ProfileImage:  "https://cdn.example.com/" + name + ".jpg",
		AgreedToTerms: true,
	}
}

func images(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("https://cdn.example.com/p%d.jpg", i)
	}
	return out
}

func admin() *shared.Actor {
	return &shared.Actor{ID: uuid.New(), Role: shared.RoleAdmin}
}

func owner(id uuid.UUID) *shared.Actor {
	return &shared.Actor{ID: id, Role: shared.RoleTalent}
}

// =====================================================
// REGISTER
// =====================================================

func TestRegisterCreatesPendingTalent(t *testing.T) {
	f := newFixture(t)
	req := registerRequest("Ava")
	req.Email = "  Ava@Example.COM "

	talent, err := f.svc.Register(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, model.StatusPending, talent.Status)
	assert.Equal(t, model.RankSentinel, talent.Rank)
	assert.Equal(t, 0, talent.VoteCount)
	assert.Equal(t, "ava@example.com", talent.Email)
	assert.True(t, talent.AgreedToTerms)
	require.NotNil(t, talent.AgreedAt)
	assert.NotEqual(t, "secret1", talent.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.RegisterRequest)
	}{
		{"missing name", func(r *model.RegisterRequest) { r.Name = "" }},
		{"bad email", func(r *model.RegisterRequest) { r.Email = "not-an-email" }},
		{"short password", func(r *model.RegisterRequest) { r.Password = "12345" }},
		{"missing phone", func(r *model.RegisterRequest) { r.Phone = "" }},
		{"unknown category", func(r *model.RegisterRequest) { r.Category = "Astronaut" }},
		{"missing profile image", func(r *model.RegisterRequest) { r.ProfileImage = "" }},
		{"no consent", func(r *model.RegisterRequest) { r.AgreedToTerms = false }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := registerRequest("Ava")
			tt.mutate(&req)

			_, err := f.svc.Register(context.Background(), req)
			require.Error(t, err)
			assert.True(t, apperror.IsKind(err, apperror.KindValidation), "got %v", err)
		})
	}
}

func TestRegisterPasswordMinimumAccepted(t *testing.T) {
	f := newFixture(t)
	req := registerRequest("Ava")
	req.Password = "123456"

	_, err := f.svc.Register(context.Background(), req)
	assert.NoError(t, err)
}

func TestRegisterDuplicateEmailIsCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerRequest("Ava"))
	require.NoError(t, err)

	dup := registerRequest("Ava")
	dup.Email = "AVA@example.com"
	_, err = f.svc.Register(ctx, dup)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict), "got %v", err)
}

func TestRegisterPortfolioCapacity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ok := registerRequest("Seven")
	ok.PortfolioImages = images(model.MaxPortfolioImages)
	talent, err := f.svc.Register(ctx, ok)
	require.NoError(t, err)
	assert.Len(t, talent.PortfolioImages, 7)

	tooMany := registerRequest("Eight")
	tooMany.PortfolioImages = images(model.MaxPortfolioImages + 1)
	_, err = f.svc.Register(ctx, tooMany)
	assert.True(t, apperror.IsKind(err, apperror.KindCapacity), "got %v", err)
}

func TestRegisterVideoBounds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ok := registerRequest("Clip")
	ok.PortfolioVideo = &model.Video{URL: "https://cdn.example.com/v.mp4", DurationSeconds: 45, SizeBytes: 1 << 20}
	_, err := f.svc.Register(ctx, ok)
	require.NoError(t, err)

	long := registerRequest("Long")
	long.PortfolioVideo = &model.Video{URL: "https://cdn.example.com/v.mp4", DurationSeconds: 46}
	_, err = f.svc.Register(ctx, long)
	assert.True(t, apperror.IsKind(err, apperror.KindCapacity), "got %v", err)

	big := registerRequest("Big")
	big.PortfolioVideo = &model.Video{URL: "https://cdn.example.com/v.mp4", DurationSeconds: 10, SizeBytes: model.MaxVideoBytes + 1}
	_, err = f.svc.Register(ctx, big)
	assert.True(t, apperror.IsKind(err, apperror.KindCapacity), "got %v", err)
}

// =====================================================
// UPDATE PROFILE
// =====================================================

func TestUpdateProfileOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ava, err := f.svc.Register(ctx, registerRequest("Ava"))
	require.NoError(t, err)
	bea, err := f.svc.Register(ctx, registerRequest("Bea"))
	require.NoError(t, err)

	bio := "Runway since 2019"
	req := model.UpdateTalentRequest{Bio: &bio}

	updated, err := f.svc.UpdateProfile(ctx, owner(ava.ID), ava.ID, req)
	require.NoError(t, err)
	assert.Equal(t, bio, updated.Bio)

	_, err = f.svc.UpdateProfile(ctx, owner(bea.ID), ava.ID, req)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden), "got %v", err)

	_, err = f.svc.UpdateProfile(ctx, nil, ava.ID, req)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden), "got %v", err)

	_, err = f.svc.UpdateProfile(ctx, admin(), ava.ID, req)
	assert.NoError(t, err)

	_, err = f.svc.UpdateProfile(ctx, admin(), uuid.New(), req)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound), "got %v", err)
}

func TestUpdateProfileRejectsBlankOrUnknownCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ava, err := f.svc.Register(ctx, registerRequest("Ava"))
	require.NoError(t, err)

	for _, category := range []model.Category{"", "  ", "Astronaut"} {
		c := category
		_, err = f.svc.UpdateProfile(ctx, admin(), ava.ID, model.UpdateTalentRequest{Category: &c})
		assert.True(t, apperror.IsKind(err, apperror.KindValidation), "category %q: got %v", c, err)
	}

	stored, err := f.repo.GetByID(ctx, ava.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryModelFemale, stored.Category)

	photography := model.CategoryPhotography
	updated, err := f.svc.UpdateProfile(ctx, owner(ava.ID), ava.ID, model.UpdateTalentRequest{Category: &photography})
	require.NoError(t, err)
	assert.Equal(t, model.CategoryPhotography, updated.Category)
}

func TestUpdateProfilePortfolioCapacity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := registerRequest("Ava")
	req.PortfolioImages = images(6)
	ava, err := f.svc.Register(ctx, req)
	require.NoError(t, err)

	seven := images(7)
	updated, err := f.svc.UpdateProfile(ctx, owner(ava.ID), ava.ID, model.UpdateTalentRequest{PortfolioImages: &seven})
	require.NoError(t, err)
	assert.Len(t, updated.PortfolioImages, 7)

	eight := images(8)
	_, err = f.svc.UpdateProfile(ctx, owner(ava.ID), ava.ID, model.UpdateTalentRequest{PortfolioImages: &eight})
	assert.True(t, apperror.IsKind(err, apperror.KindCapacity), "got %v", err)

	stored, err := f.repo.GetByID(ctx, ava.ID)
	require.NoError(t, err)
	assert.Len(t, stored.PortfolioImages, 7)
}

func TestUpdateProfileRemovesVideo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := registerRequest("Ava")
	req.PortfolioVideo = &model.Video{URL: "https://cdn.example.com/v.mp4", DurationSeconds: 30}
	ava, err := f.svc.Register(ctx, req)
	require.NoError(t, err)

	updated, err := f.svc.UpdateProfile(ctx, owner(ava.ID), ava.ID, model.UpdateTalentRequest{RemoveVideo: true})
	require.NoError(t, err)
	assert.Nil(t, updated.PortfolioVideo)
}

// =====================================================
// MODERATION
// =====================================================

func TestModerationTransitionsAreIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ava, err := f.svc.Register(ctx, registerRequest("Ava"))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		got, err := f.svc.Approve(ctx, ava.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusApproved, got.Status)
	}

	got, err := f.svc.Reject(ctx, ava.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, got.Status)

	// Revoke on a rejected talent leaves it rejected
	got, err = f.svc.Revoke(ctx, ava.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, got.Status)

	_, err = f.svc.Approve(ctx, ava.ID)
	require.NoError(t, err)
	got, err = f.svc.Revoke(ctx, ava.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Status)

	_, err = f.svc.Approve(ctx, uuid.New())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestGetHidesUnapprovedFromPublic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ava, err := f.svc.Register(ctx, registerRequest("Ava"))
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, nil, ava.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	_, err = f.svc.Get(ctx, owner(ava.ID), ava.ID)
	assert.NoError(t, err)

	_, err = f.svc.Get(ctx, admin(), ava.ID)
	assert.NoError(t, err)

	_, err = f.svc.Approve(ctx, ava.ID)
	require.NoError(t, err)
	_, err = f.svc.Get(ctx, nil, ava.ID)
	assert.NoError(t, err)
}

func TestSetRankLastWriteWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ava, err := f.svc.Register(ctx, registerRequest("Ava"))
	require.NoError(t, err)

	_, err = f.svc.SetRank(ctx, ava.ID, 3)
	require.NoError(t, err)
	got, err := f.svc.SetRank(ctx, ava.ID, -2)
	require.NoError(t, err)
	assert.Equal(t, -2, got.Rank)

	_, err = f.svc.SetRank(ctx, uuid.New(), 1)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestDeletePurgesVotesAndQueuesCleanup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ava, err := f.svc.Register(ctx, registerRequest("Ava"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, ava.ID))
	assert.Equal(t, []uuid.UUID{ava.ID}, f.purger.purged)
	assert.Equal(t, []uuid.UUID{ava.ID}, f.cleaner.queued)

	_, err = f.svc.Get(ctx, admin(), ava.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	err = f.svc.Delete(ctx, ava.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	// Email is free again
	_, err = f.svc.Register(ctx, registerRequest("Ava"))
	assert.NoError(t, err)
}

// =====================================================
// AUTH
// =====================================================

func TestLoginIssuesTalentToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ava, err := f.svc.Register(ctx, registerRequest("Ava"))
	require.NoError(t, err)

	resp, err := f.svc.Login(ctx, model.LoginRequest{Email: "AVA@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, ava.ID, resp.TalentID)

	claims, err := f.tokens.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, jwt.RoleTalent, claims.Role)
	assert.Equal(t, ava.ID.String(), claims.SubjectID)
}

func TestLoginLocksAfterRepeatedFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerRequest("Ava"))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := f.svc.Login(ctx, model.LoginRequest{Email: "ava@example.com", Password: "wrong-pass"})
		assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))
	}

	_, err = f.svc.Login(ctx, model.LoginRequest{Email: "ava@example.com", Password: "secret1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many failed attempts")
}

func TestResetPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ava, err := f.svc.Register(ctx, registerRequest("Ava"))
	require.NoError(t, err)

	err = f.svc.ResetPassword(ctx, ava.ID, model.ResetPasswordRequest{NewPassword: "short"})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	require.NoError(t, f.svc.ResetPassword(ctx, ava.ID, model.ResetPasswordRequest{NewPassword: "brand-new"}))

	_, err = f.svc.Login(ctx, model.LoginRequest{Email: "ava@example.com", Password: "brand-new"})
	assert.NoError(t, err)
}
