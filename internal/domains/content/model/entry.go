package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"fashionmag-backend/internal/shared/apperror"
)

// Entry is the contract every promotional variant satisfies
type Entry interface {
	Kind() Kind
	GetMeta() *Meta
	// Normalize trims input and folds legacy fields
	Normalize()
	// Validate reports missing fields as Validation and overflowing
	// per-entry collections as Capacity
	Validate() error
	Clone() Entry
}

// Orderable entries have an explicit display order
type Orderable interface {
	Entry
	SetOrder(order int)
}

// Activatable entries can be hidden from public reads
type Activatable interface {
	Entry
	SetActive(active bool)
	Active() bool
}

// Meta is shared by every variant
type Meta struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Meta) GetMeta() *Meta { return m }

// NewEntry returns an empty entry of kind with its defaults applied, ready to
// be decoded into.
func NewEntry(kind Kind) (Entry, error) {
	switch kind {
	case KindHero:
		return &HeroSlide{}, nil
	case KindAdvertisement:
		return &Advertisement{IsActive: true}, nil
	case KindPartyEvent:
		return &PartyEvent{IsActive: true}, nil
	case KindContestWinner:
		return &ContestWinner{IsActive: true}, nil
	}
	return nil, apperror.Validation("unknown content kind", nil)
}

// ========================================
// HERO SLIDE
// ========================================

type HeroSlide struct {
	Meta
	Title         string `json:"title"`
	Subtitle      string `json:"subtitle"`
	CategoryLabel string `json:"category"`
	Image         string `json:"image"`
	Order         int    `json:"order"`
}

func (h *HeroSlide) Kind() Kind         { return KindHero }
func (h *HeroSlide) SetOrder(order int) { h.Order = order }

func (h *HeroSlide) Normalize() {
	h.Title = strings.TrimSpace(h.Title)
	h.Image = strings.TrimSpace(h.Image)
}

func (h *HeroSlide) Validate() error {
	return apperror.FromValidation(validation.ValidateStruct(h,
		validation.Field(&h.Title, validation.Required.Error("title is required")),
		validation.Field(&h.Image, validation.Required.Error("image is required")),
	))
}

func (h *HeroSlide) Clone() Entry {
	cp := *h
	return &cp
}

// ========================================
// ADVERTISEMENT
// ========================================

type Advertisement struct {
	Meta
	Title    string `json:"title"`
	Link     string `json:"link"`
	Image    string `json:"image"`
	Order    int    `json:"order"`
	IsActive bool   `json:"is_active"`
}

func (a *Advertisement) Kind() Kind            { return KindAdvertisement }
func (a *Advertisement) SetOrder(order int)    { a.Order = order }
func (a *Advertisement) SetActive(active bool) { a.IsActive = active }
func (a *Advertisement) Active() bool          { return a.IsActive }

func (a *Advertisement) Normalize() {
	a.Title = strings.TrimSpace(a.Title)
	a.Link = strings.TrimSpace(a.Link)
	a.Image = strings.TrimSpace(a.Image)
}

func (a *Advertisement) Validate() error {
	return apperror.FromValidation(validation.ValidateStruct(a,
		validation.Field(&a.Title, validation.Required.Error("title is required")),
		validation.Field(&a.Image, validation.Required.Error("image is required")),
		validation.Field(&a.Link, is.URL),
	))
}

func (a *Advertisement) Clone() Entry {
	cp := *a
	return &cp
}

// ========================================
// PARTY EVENT
// ========================================

type PartyEvent struct {
	Meta
	Title       string `json:"title"`
	Venue       string `json:"venue"`
	EventDate   string `json:"event_date"`
	Description string `json:"description"`
	Image       string `json:"image"`
	EntryCode   string `json:"entry_code"`
	BookingInfo string `json:"booking_info"`
	Contact     string `json:"contact"`
	IsActive    bool   `json:"is_active"`
}

func (p *PartyEvent) Kind() Kind            { return KindPartyEvent }
func (p *PartyEvent) SetActive(active bool) { p.IsActive = active }
func (p *PartyEvent) Active() bool          { return p.IsActive }

func (p *PartyEvent) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Venue = strings.TrimSpace(p.Venue)
	p.EventDate = strings.TrimSpace(p.EventDate)
}

func (p *PartyEvent) Validate() error {
	return apperror.FromValidation(validation.ValidateStruct(p,
		validation.Field(&p.Title, validation.Required.Error("title is required")),
		validation.Field(&p.Venue, validation.Required.Error("venue is required")),
		validation.Field(&p.EventDate, validation.Required.Error("event date is required")),
	))
}

func (p *PartyEvent) Clone() Entry {
	cp := *p
	return &cp
}

// ========================================
// CONTEST WINNER
// ========================================

// ContestWinner is an award entry. TalentID is a weak reference: the talent
// may be deleted later, in which case TalentLinked reads false.
type ContestWinner struct {
	Meta
	Title       string     `json:"title"`
	WinnerName  string     `json:"winner_name"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Images      []string   `json:"images"`
	TalentID    *uuid.UUID `json:"talent_id,omitempty"`
	IsActive    bool       `json:"is_active"`

	// TalentLinked is resolved on read
	TalentLinked bool `json:"talent_linked"`
	// WinnerImage is the legacy single-image field, accepted on input only
	WinnerImage string `json:"winner_image,omitempty"`
}

func (w *ContestWinner) Kind() Kind            { return KindContestWinner }
func (w *ContestWinner) SetActive(active bool) { w.IsActive = active }
func (w *ContestWinner) Active() bool          { return w.IsActive }

// Normalize folds a legacy winner_image into the front of Images, dropping
// blanks and duplicates.
func (w *ContestWinner) Normalize() {
	w.Title = strings.TrimSpace(w.Title)
	w.WinnerName = strings.TrimSpace(w.WinnerName)

	images := w.Images
	if legacy := strings.TrimSpace(w.WinnerImage); legacy != "" {
		images = append([]string{legacy}, images...)
	}
	w.WinnerImage = ""

	seen := make(map[string]bool, len(images))
	out := make([]string, 0, len(images))
	for _, img := range images {
		img = strings.TrimSpace(img)
		if img == "" || seen[img] {
			continue
		}
		seen[img] = true
		out = append(out, img)
	}
	w.Images = out
}

func (w *ContestWinner) Validate() error {
	err := validation.ValidateStruct(w,
		validation.Field(&w.Title, validation.Required.Error("title is required")),
		validation.Field(&w.WinnerName, validation.Required.Error("winner name is required")),
		validation.Field(&w.Images, validation.Required.Error("at least one image is required")),
	)
	if err != nil {
		return apperror.FromValidation(err)
	}
	if len(w.Images) > MaxWinnerImages {
		return apperror.Capacity("a contest winner accepts at most 5 images", MaxWinnerImages)
	}
	return nil
}

func (w *ContestWinner) Clone() Entry {
	cp := *w
	cp.Images = append([]string(nil), w.Images...)
	if w.TalentID != nil {
		id := *w.TalentID
		cp.TalentID = &id
	}
	return &cp
}
