package model

import (
	"time"

	"github.com/google/uuid"
)

// Video is an optional portfolio clip
type Video struct {
	URL             string `json:"url"`
	DurationSeconds int    `json:"duration_seconds"`
	SizeBytes       int64  `json:"size_bytes"`
}

// Talent is a self-registered profile moderated by an administrator
type Talent struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone"`
	InstagramID  string    `json:"instagram_id"`
	Category     Category  `json:"category"`
	Bio          string    `json:"bio"`

	// Media
	ProfileImage    string   `json:"profile_image"`
	PortfolioImages []string `json:"portfolio_images"`
	PortfolioVideo  *Video   `json:"portfolio_video,omitempty"`

	// Moderation & ranking
	Status    Status `json:"status"`
	Rank      int    `json:"rank"`
	VoteCount int    `json:"vote_count"`

	// Consent; AgreedAt is nil for legacy records
	AgreedToTerms bool       `json:"agreed_to_terms"`
	AgreedAt      *time.Time `json:"agreed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Talent) IsApproved() bool {
	return t.Status == StatusApproved
}

// Clone returns a deep copy so stores never hand out shared slices.
func (t *Talent) Clone() *Talent {
	cp := *t
	cp.PortfolioImages = append([]string(nil), t.PortfolioImages...)
	if t.PortfolioVideo != nil {
		v := *t.PortfolioVideo
		cp.PortfolioVideo = &v
	}
	if t.AgreedAt != nil {
		at := *t.AgreedAt
		cp.AgreedAt = &at
	}
	return &cp
}

// Less is the listing order: rank, then registration time, then id.
func Less(a, b *Talent) bool {
	if a.Rank != b.Rank {
		return a.Rank < b.Rank
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID.String() < b.ID.String()
}

// PublicTalent is the card shown to anonymous visitors; contact details stay private.
type PublicTalent struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	InstagramID     string    `json:"instagram_id"`
	Category        Category  `json:"category"`
	Bio             string    `json:"bio"`
	ProfileImage    string    `json:"profile_image"`
	PortfolioImages []string  `json:"portfolio_images"`
	PortfolioVideo  *Video    `json:"portfolio_video,omitempty"`
	Rank            int       `json:"rank"`
	VoteCount       int       `json:"vote_count"`
	CreatedAt       time.Time `json:"created_at"`
}

func (t *Talent) ToPublic() PublicTalent {
	images := t.PortfolioImages
	if images == nil {
		images = []string{}
	}
	return PublicTalent{
		ID:              t.ID,
		Name:            t.Name,
		InstagramID:     t.InstagramID,
		Category:        t.Category,
		Bio:             t.Bio,
		ProfileImage:    t.ProfileImage,
		PortfolioImages: images,
		PortfolioVideo:  t.PortfolioVideo,
		Rank:            t.Rank,
		VoteCount:       t.VoteCount,
		CreatedAt:       t.CreatedAt,
	}
}

// Filter selects talents for listing
type Filter struct {
	Category *Category
	Status   *Status
}
