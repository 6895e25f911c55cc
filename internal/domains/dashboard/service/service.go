package service

import (
	"context"
	"fmt"

	analyticsModel "fashionmag-backend/internal/domains/analytics/model"
	contentModel "fashionmag-backend/internal/domains/content/model"
	talentModel "fashionmag-backend/internal/domains/talent/model"
)

// =====================================================
// DEPENDENCIES
// =====================================================

type TalentCounter interface {
	CountByStatus(ctx context.Context) (map[talentModel.Status]int, error)
}

type VoteCounter interface {
	Total(ctx context.Context) (int, error)
}

type ContentCounter interface {
	Count(ctx context.Context, kind contentModel.Kind, activeOnly bool) (int, error)
}

type TrafficReader interface {
	Traffic(ctx context.Context) (*analyticsModel.Traffic, error)
}

// =====================================================
// SUMMARY
// =====================================================

type TalentSummary struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
	Rejected int `json:"rejected"`
}

type PartySummary struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

type Summary struct {
	Talents     TalentSummary          `json:"talents"`
	TotalVotes  int                    `json:"total_votes"`
	PartyEvents PartySummary           `json:"party_events"`
	Ads         int                    `json:"advertisements"`
	Traffic     analyticsModel.Traffic `json:"traffic"`
}

type ServiceInterface interface {
	Summary(ctx context.Context) (*Summary, error)
}

type dashboardService struct {
	talents TalentCounter
	votes   VoteCounter
	content ContentCounter
	traffic TrafficReader
}

func NewService(talents TalentCounter, votes VoteCounter, content ContentCounter, traffic TrafficReader) ServiceInterface {
	return &dashboardService{talents: talents, votes: votes, content: content, traffic: traffic}
}

func (s *dashboardService) Summary(ctx context.Context) (*Summary, error) {
	byStatus, err := s.talents.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count talents: %w", err)
	}

	totalVotes, err := s.votes.Total(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}

	parties, err := s.content.Count(ctx, contentModel.KindPartyEvent, false)
	if err != nil {
		return nil, fmt.Errorf("failed to count party events: %w", err)
	}
	activeParties, err := s.content.Count(ctx, contentModel.KindPartyEvent, true)
	if err != nil {
		return nil, fmt.Errorf("failed to count active party events: %w", err)
	}
	ads, err := s.content.Count(ctx, contentModel.KindAdvertisement, false)
	if err != nil {
		return nil, fmt.Errorf("failed to count advertisements: %w", err)
	}

	traffic, err := s.traffic.Traffic(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read traffic: %w", err)
	}

	talents := TalentSummary{
		Approved: byStatus[talentModel.StatusApproved],
		Pending:  byStatus[talentModel.StatusPending],
		Rejected: byStatus[talentModel.StatusRejected],
	}
	talents.Total = talents.Approved + talents.Pending + talents.Rejected

	return &Summary{
		Talents:     talents,
		TotalVotes:  totalVotes,
		PartyEvents: PartySummary{Total: parties, Active: activeParties},
		Ads:         ads,
		Traffic:     *traffic,
	}, nil
}
