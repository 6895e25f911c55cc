package service

import (
	"context"
	"strings"

	talentModel "fashionmag-backend/internal/domains/talent/model"
	"fashionmag-backend/internal/shared/apperror"
)

// ServiceInterface orders talents for display. Results are recomputed on
// every call so rank edits show up immediately.
type ServiceInterface interface {
	ListByCategory(ctx context.Context, category string, approvedOnly bool) ([]*talentModel.Talent, error)
	ListPending(ctx context.Context) ([]*talentModel.Talent, error)
	Categories() []talentModel.Category
}

// TalentLister is the read side of the talent registry
type TalentLister interface {
	List(ctx context.Context, filter talentModel.Filter) ([]*talentModel.Talent, error)
	ListByStatus(ctx context.Context, status talentModel.Status) ([]*talentModel.Talent, error)
}

type listingService struct {
	talents TalentLister
}

func NewService(talents TalentLister) ServiceInterface {
	return &listingService{talents: talents}
}

// ListByCategory returns talents in rank order. An empty category lists every category.
func (s *listingService) ListByCategory(ctx context.Context, category string, approvedOnly bool) ([]*talentModel.Talent, error) {
	var filter talentModel.Filter

	if category = strings.TrimSpace(category); category != "" {
		c := talentModel.Category(category)
		if !c.Valid() {
			return nil, apperror.Validation("unknown category", map[string]interface{}{
				"category": category,
				"allowed":  talentModel.Categories(),
			})
		}
		filter.Category = &c
	}
	if approvedOnly {
		approved := talentModel.StatusApproved
		filter.Status = &approved
	}

	return s.talents.List(ctx, filter)
}

// ListPending is the moderation queue, oldest registration first.
func (s *listingService) ListPending(ctx context.Context) ([]*talentModel.Talent, error) {
	return s.talents.ListByStatus(ctx, talentModel.StatusPending)
}

func (s *listingService) Categories() []talentModel.Category {
	return talentModel.Categories()
}
