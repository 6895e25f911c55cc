package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fashionmag-backend/internal/domains/analytics/model"
	"fashionmag-backend/internal/domains/analytics/repository"
	contentModel "fashionmag-backend/internal/domains/content/model"
	contentRepo "fashionmag-backend/internal/domains/content/repository"
	talentModel "fashionmag-backend/internal/domains/talent/model"
	talentRepo "fashionmag-backend/internal/domains/talent/repository"
	"fashionmag-backend/internal/shared/apperror"
)

type fixture struct {
	svc     *analyticsService
	repo    *repository.MemoryRepository
	talents *talentRepo.MemoryRepository
	content *contentRepo.MemoryRepository
	clock   time.Time
}

func newFixture() *fixture {
	f := &fixture{
		repo:    repository.NewMemoryRepository(),
		talents: talentRepo.NewMemoryRepository(),
		content: contentRepo.NewMemoryRepository(),
		clock:   time.Date(2026, 10, 17, 15, 0, 0, 0, time.UTC),
	}
	f.svc = NewService(f.repo, f.talents, f.content).(*analyticsService)
	f.svc.now = func() time.Time { return f.clock }
	return f
}

func (f *fixture) track(t *testing.T, req model.TrackRequest) {
	t.Helper()
	require.NoError(t, f.svc.Track(context.Background(), req, Visitor{Fingerprint: "fp_visitor", UserAgent: "browser"}))
}

func (f *fixture) seedTalent(t *testing.T, name string) uuid.UUID {
	t.Helper()
	talent := &talentModel.Talent{
		ID:           uuid.New(),
		Name:         name,
		Email:        uuid.NewString() + "@example.com",
		Category:     talentModel.CategoryPhotography,
		ProfileImage: "https://cdn.example.com/" + name + ".jpg",
		Status:       talentModel.StatusApproved,
		CreatedAt:    f.clock,
		UpdatedAt:    f.clock,
	}
	require.NoError(t, f.talents.Create(context.Background(), talent))
	return talent.ID
}

func TestTrackDefaultsAndValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.track(t, model.TrackRequest{Page: " /home "})

	events, err := f.repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, model.EventPageView, events[0].Type)
	assert.Equal(t, "/home", events[0].Page)
	assert.Equal(t, "fp_visitor", events[0].SessionID)
	assert.Equal(t, "browser", events[0].UserAgent)

	err = f.svc.Track(ctx, model.TrackRequest{EventType: "scroll"}, Visitor{})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation), "got %v", err)

	err = f.svc.Track(ctx, model.TrackRequest{EventType: model.EventTalentView}, Visitor{})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation), "got %v", err)
}

func TestTrackKeepsOnlyMatchingTarget(t *testing.T) {
	f := newFixture()
	talentID, adID := uuid.New(), uuid.New()

	f.track(t, model.TrackRequest{EventType: model.EventTalentView, TalentID: &talentID, AdID: &adID, SessionID: "s1"})

	events, err := f.repo.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, &talentID, events[0].TalentID)
	assert.Nil(t, events[0].AdID)
	assert.Equal(t, "s1", events[0].SessionID)
}

func TestTraffic(t *testing.T) {
	f := newFixture()
	now := f.clock

	f.clock = now.AddDate(0, 0, -40)
	f.track(t, model.TrackRequest{SessionID: "old"})
	f.clock = now.AddDate(0, 0, -10)
	f.track(t, model.TrackRequest{SessionID: "a"})
	f.clock = now.AddDate(0, 0, -3)
	f.track(t, model.TrackRequest{SessionID: "a"})
	f.clock = now.Add(-time.Hour)
	f.track(t, model.TrackRequest{SessionID: "b"})
	f.track(t, model.TrackRequest{SessionID: "b"})
	f.clock = now

	traffic, err := f.svc.Traffic(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.Traffic{
		TotalViews:         5,
		TodayViews:         2,
		WeekViews:          3,
		MonthViews:         4,
		UniqueVisitors:     3,
		UniqueVisitorsWeek: 2,
	}, *traffic)
}

func TestPopularTalentsSkipsDeleted(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ava := f.seedTalent(t, "Ava")
	bea := f.seedTalent(t, "Bea")
	for i := 0; i < 3; i++ {
		f.track(t, model.TrackRequest{EventType: model.EventTalentView, TalentID: &bea})
	}
	f.track(t, model.TrackRequest{EventType: model.EventTalentView, TalentID: &ava})
	gone := uuid.New()
	for i := 0; i < 5; i++ {
		f.track(t, model.TrackRequest{EventType: model.EventTalentView, TalentID: &gone})
	}

	popular, err := f.svc.PopularTalents(ctx)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, "Bea", popular[0].Name)
	assert.Equal(t, 3, popular[0].Views)
	assert.Equal(t, string(talentModel.CategoryPhotography), popular[0].Category)
	assert.Equal(t, "Ava", popular[1].Name)
}

func TestPartyAndAdStats(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	party := &contentModel.PartyEvent{Title: "Gala", Venue: "Hall", EventDate: "2026-12-01", IsActive: true}
	party.ID = uuid.New()
	require.NoError(t, f.content.Create(ctx, party, 0))
	ad := &contentModel.Advertisement{Title: "Spring", Link: "https://shop.example.com", Image: "a.jpg", IsActive: true}
	ad.ID = uuid.New()
	require.NoError(t, f.content.Create(ctx, ad, 0))

	f.track(t, model.TrackRequest{EventType: model.EventPartyView, PartyID: &party.ID})
	f.track(t, model.TrackRequest{EventType: model.EventPartyView, PartyID: &party.ID})
	f.track(t, model.TrackRequest{EventType: model.EventAdClick, AdID: &ad.ID})
	missing := uuid.New()
	f.track(t, model.TrackRequest{EventType: model.EventAdClick, AdID: &missing})

	parties, err := f.svc.PartyStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.PartyStat{{PartyID: party.ID, Title: "Gala", Venue: "Hall", EventDate: "2026-12-01", Views: 2}}, parties)

	ads, err := f.svc.AdStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.AdStat{{AdID: ad.ID, Title: "Spring", Link: "https://shop.example.com", Clicks: 1}}, ads)
}

func TestRecentActivityResolvesNames(t *testing.T) {
	f := newFixture()
	ava := f.seedTalent(t, "Ava")
	gone := uuid.New()

	f.track(t, model.TrackRequest{EventType: model.EventTalentView, TalentID: &gone})
	f.clock = f.clock.Add(time.Minute)
	f.track(t, model.TrackRequest{EventType: model.EventTalentView, TalentID: &ava, Page: "/talents/ava"})

	activity, err := f.svc.RecentActivity(context.Background())
	require.NoError(t, err)
	require.Len(t, activity, 2)
	assert.Equal(t, "Ava", activity[0].TalentName)
	assert.Equal(t, "/talents/ava", activity[0].Page)
	assert.Equal(t, "Unknown", activity[1].TalentName)
}

func TestDailyViewsFillsEmptyDays(t *testing.T) {
	f := newFixture()
	now := f.clock

	f.clock = now.AddDate(0, 0, -2)
	f.track(t, model.TrackRequest{})
	f.clock = now
	f.track(t, model.TrackRequest{})
	f.track(t, model.TrackRequest{})

	days, err := f.svc.DailyViews(context.Background())
	require.NoError(t, err)
	require.Len(t, days, model.DailyWindow)
	assert.Equal(t, "2026-09-18", days[0].Date)
	assert.Equal(t, model.DailyViews{Date: "2026-10-15", Views: 1}, days[27])
	assert.Equal(t, model.DailyViews{Date: "2026-10-16", Views: 0}, days[28])
	assert.Equal(t, model.DailyViews{Date: "2026-10-17", Views: 2}, days[29])
}

func TestPurge(t *testing.T) {
	f := newFixture()
	now := f.clock

	f.clock = now.AddDate(0, 0, -200)
	f.track(t, model.TrackRequest{})
	f.clock = now
	f.track(t, model.TrackRequest{})

	purged, err := f.svc.Purge(context.Background(), 180)
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)

	_, err = f.svc.Purge(context.Background(), 0)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation), "got %v", err)
}
