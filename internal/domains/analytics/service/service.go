package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"fashionmag-backend/internal/domains/analytics/model"
	"fashionmag-backend/internal/domains/analytics/repository"
	contentModel "fashionmag-backend/internal/domains/content/model"
	talentModel "fashionmag-backend/internal/domains/talent/model"
	"fashionmag-backend/internal/shared/apperror"
)

// =====================================================
// DEPENDENCIES
// =====================================================

type TalentLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*talentModel.Talent, error)
}

type ContentLookup interface {
	Get(ctx context.Context, kind contentModel.Kind, id uuid.UUID) (contentModel.Entry, error)
}

// Visitor is what the transport knows about the caller
type Visitor struct {
	Fingerprint string
	UserAgent   string
}

type ServiceInterface interface {
	Track(ctx context.Context, req model.TrackRequest, visitor Visitor) error

	Traffic(ctx context.Context) (*model.Traffic, error)
	PopularTalents(ctx context.Context) ([]model.PopularTalent, error)
	PartyStats(ctx context.Context) ([]model.PartyStat, error)
	AdStats(ctx context.Context) ([]model.AdStat, error)
	RecentActivity(ctx context.Context) ([]model.Activity, error)
	DailyViews(ctx context.Context) ([]model.DailyViews, error)

	// Purge drops events older than retentionDays
	Purge(ctx context.Context, retentionDays int) (int64, error)
}

type analyticsService struct {
	repo    repository.Repository
	talents TalentLookup
	content ContentLookup
	now     func() time.Time
}

func NewService(repo repository.Repository, talents TalentLookup, content ContentLookup) ServiceInterface {
	return &analyticsService{
		repo:    repo,
		talents: talents,
		content: content,
		now:     time.Now,
	}
}

// =====================================================
// TRACKING
// =====================================================

func (s *analyticsService) Track(ctx context.Context, req model.TrackRequest, visitor Visitor) error {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}

	event := &model.Event{
		ID:        uuid.New(),
		Type:      req.EventType,
		Page:      req.Page,
		SessionID: req.SessionID,
		UserAgent: req.UserAgent,
		Referrer:  req.Referrer,
		CreatedAt: s.now().UTC(),
	}
	// only the id matching the event type is kept
	switch req.EventType {
	case model.EventTalentView:
		event.TalentID = req.TalentID
	case model.EventPartyView:
		event.PartyID = req.PartyID
	case model.EventAdClick:
		event.AdID = req.AdID
	}
	if event.SessionID == "" {
		event.SessionID = visitor.Fingerprint
	}
	if event.UserAgent == "" {
		event.UserAgent = visitor.UserAgent
	}

	return s.repo.Insert(ctx, event)
}

// =====================================================
// REPORTS
// =====================================================

func (s *analyticsService) Traffic(ctx context.Context) (*model.Traffic, error) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	week := now.AddDate(0, 0, -7)
	month := now.AddDate(0, 0, -30)

	var (
		t   model.Traffic
		err error
	)
	counts := []struct {
		dst   *int
		since time.Time
	}{
		{&t.TotalViews, time.Time{}},
		{&t.TodayViews, today},
		{&t.WeekViews, week},
		{&t.MonthViews, month},
	}
	for _, c := range counts {
		if *c.dst, err = s.repo.CountSince(ctx, c.since); err != nil {
			return nil, err
		}
	}

	if t.UniqueVisitors, err = s.repo.UniqueSessionsSince(ctx, time.Time{}); err != nil {
		return nil, err
	}
	if t.UniqueVisitorsWeek, err = s.repo.UniqueSessionsSince(ctx, week); err != nil {
		return nil, err
	}
	return &t, nil
}

// PopularTalents ranks talents by profile views. Deleted talents are skipped.
func (s *analyticsService) PopularTalents(ctx context.Context) ([]model.PopularTalent, error) {
	top, err := s.repo.TopTargets(ctx, model.EventTalentView, model.PopularLimit)
	if err != nil {
		return nil, err
	}

	out := make([]model.PopularTalent, 0, len(top))
	for _, tc := range top {
		talent, err := s.talents.GetByID(ctx, tc.ID)
		if err != nil {
			if apperror.IsKind(err, apperror.KindNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to resolve talent %s: %w", tc.ID, err)
		}
		out = append(out, model.PopularTalent{
			TalentID:     tc.ID,
			Name:         talent.Name,
			Category:     string(talent.Category),
			ProfileImage: talent.ProfileImage,
			Views:        tc.Count,
		})
	}
	return out, nil
}

func (s *analyticsService) PartyStats(ctx context.Context) ([]model.PartyStat, error) {
	top, err := s.repo.TopTargets(ctx, model.EventPartyView, model.PopularLimit)
	if err != nil {
		return nil, err
	}

	out := make([]model.PartyStat, 0, len(top))
	for _, tc := range top {
		entry, err := s.lookupContent(ctx, contentModel.KindPartyEvent, tc.ID)
		if err != nil {
			return nil, err
		}
		party, ok := entry.(*contentModel.PartyEvent)
		if !ok {
			continue
		}
		out = append(out, model.PartyStat{
			PartyID:   tc.ID,
			Title:     party.Title,
			Venue:     party.Venue,
			EventDate: party.EventDate,
			Views:     tc.Count,
		})
	}
	return out, nil
}

func (s *analyticsService) AdStats(ctx context.Context) ([]model.AdStat, error) {
	top, err := s.repo.TopTargets(ctx, model.EventAdClick, model.PopularLimit)
	if err != nil {
		return nil, err
	}

	out := make([]model.AdStat, 0, len(top))
	for _, tc := range top {
		entry, err := s.lookupContent(ctx, contentModel.KindAdvertisement, tc.ID)
		if err != nil {
			return nil, err
		}
		ad, ok := entry.(*contentModel.Advertisement)
		if !ok {
			continue
		}
		out = append(out, model.AdStat{AdID: tc.ID, Title: ad.Title, Link: ad.Link, Clicks: tc.Count})
	}
	return out, nil
}

// lookupContent returns nil without error for deleted entries
func (s *analyticsService) lookupContent(ctx context.Context, kind contentModel.Kind, id uuid.UUID) (contentModel.Entry, error) {
	entry, err := s.content.Get(ctx, kind, id)
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve %s %s: %w", kind, id, err)
	}
	return entry, nil
}

// RecentActivity lists the newest events with target names. Targets that no
// longer exist show as "Unknown".
func (s *analyticsService) RecentActivity(ctx context.Context) ([]model.Activity, error) {
	events, err := s.repo.Recent(ctx, model.RecentLimit)
	if err != nil {
		return nil, err
	}

	out := make([]model.Activity, 0, len(events))
	for _, e := range events {
		item := model.Activity{EventType: e.Type, Page: e.Page, CreatedAt: e.CreatedAt}

		if e.TalentID != nil {
			item.TalentName = unknownName
			if talent, err := s.talents.GetByID(ctx, *e.TalentID); err == nil {
				item.TalentName = talent.Name
			}
		}
		if e.PartyID != nil {
			item.PartyTitle = s.contentTitle(ctx, contentModel.KindPartyEvent, *e.PartyID)
		}
		if e.AdID != nil {
			item.AdTitle = s.contentTitle(ctx, contentModel.KindAdvertisement, *e.AdID)
		}
		out = append(out, item)
	}
	return out, nil
}

const unknownName = "Unknown"

func (s *analyticsService) contentTitle(ctx context.Context, kind contentModel.Kind, id uuid.UUID) string {
	entry, err := s.content.Get(ctx, kind, id)
	if err != nil {
		return unknownName
	}
	switch e := entry.(type) {
	case *contentModel.PartyEvent:
		return e.Title
	case *contentModel.Advertisement:
		return e.Title
	}
	return unknownName
}

// DailyViews returns one point per UTC day for the last DailyWindow days,
// oldest first, with empty days as zero.
func (s *analyticsService) DailyViews(ctx context.Context) ([]model.DailyViews, error) {
	now := s.now().UTC()
	first := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -(model.DailyWindow - 1))

	counts, err := s.repo.DailyCounts(ctx, first)
	if err != nil {
		return nil, err
	}

	out := make([]model.DailyViews, 0, model.DailyWindow)
	for i := 0; i < model.DailyWindow; i++ {
		day := first.AddDate(0, 0, i).Format("2006-01-02")
		out = append(out, model.DailyViews{Date: day, Views: counts[day]})
	}
	return out, nil
}

// =====================================================
// RETENTION
// =====================================================

func (s *analyticsService) Purge(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays < 1 {
		return 0, apperror.Validation("retention must be at least one day", nil)
	}

	cutoff := s.now().UTC().AddDate(0, 0, -retentionDays)
	purged, err := s.repo.PurgeBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	log.Info().
		Int64("purged", purged).
		Time("cutoff", cutoff).
		Msg("Analytics events purged")
	return purged, nil
}
