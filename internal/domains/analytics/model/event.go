package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"fashionmag-backend/internal/shared/apperror"
)

// EventType classifies a tracked visit
type EventType string

const (
	EventPageView   EventType = "page_view"
	EventTalentView EventType = "talent_view"
	EventPartyView  EventType = "party_view"
	EventAdClick    EventType = "ad_click"
)

const (
	// PopularLimit caps the per-target leaderboards
	PopularLimit = 20
	// RecentLimit caps the activity feed
	RecentLimit = 50
	// DailyWindow is the number of days in the views chart
	DailyWindow = 30

	maxFieldLength = 512
)

var eventTypes = []interface{}{EventPageView, EventTalentView, EventPartyView, EventAdClick}

// Event is one tracked visit. At most one target id is set, matching Type.
type Event struct {
	ID        uuid.UUID  `json:"id"`
	Type      EventType  `json:"event_type"`
	Page      string     `json:"page"`
	TalentID  *uuid.UUID `json:"talent_id,omitempty"`
	PartyID   *uuid.UUID `json:"party_id,omitempty"`
	AdID      *uuid.UUID `json:"ad_id,omitempty"`
	SessionID string     `json:"session_id"`
	UserAgent string     `json:"user_agent"`
	Referrer  string     `json:"referrer"`
	CreatedAt time.Time  `json:"created_at"`
}

// Target returns the id the event points at, if its type has one
func (e *Event) Target() *uuid.UUID {
	switch e.Type {
	case EventTalentView:
		return e.TalentID
	case EventPartyView:
		return e.PartyID
	case EventAdClick:
		return e.AdID
	}
	return nil
}

// ========================================
// REQUESTS
// ========================================

// TrackRequest is the public tracking payload. event_type defaults to page_view.
type TrackRequest struct {
	EventType EventType  `json:"event_type"`
	Page      string     `json:"page"`
	TalentID  *uuid.UUID `json:"talent_id"`
	PartyID   *uuid.UUID `json:"party_id"`
	AdID      *uuid.UUID `json:"ad_id"`
	SessionID string     `json:"session_id"`
	UserAgent string     `json:"user_agent"`
	Referrer  string     `json:"referrer"`
}

func (r *TrackRequest) Normalize() {
	r.EventType = EventType(strings.ToLower(strings.TrimSpace(string(r.EventType))))
	if r.EventType == "" {
		r.EventType = EventPageView
	}
	r.Page = strings.TrimSpace(r.Page)
	r.SessionID = strings.TrimSpace(r.SessionID)
	r.UserAgent = strings.TrimSpace(r.UserAgent)
	r.Referrer = strings.TrimSpace(r.Referrer)
}

func (r TrackRequest) Validate() error {
	return apperror.FromValidation(validation.ValidateStruct(&r,
		validation.Field(&r.EventType, validation.In(eventTypes...).Error("unknown event type")),
		validation.Field(&r.TalentID, validation.When(r.EventType == EventTalentView,
			validation.Required.Error("talent_id is required for talent_view"))),
		validation.Field(&r.PartyID, validation.When(r.EventType == EventPartyView,
			validation.Required.Error("party_id is required for party_view"))),
		validation.Field(&r.AdID, validation.When(r.EventType == EventAdClick,
			validation.Required.Error("ad_id is required for ad_click"))),
		validation.Field(&r.Page, validation.Length(0, maxFieldLength)),
		validation.Field(&r.SessionID, validation.Length(0, maxFieldLength)),
		validation.Field(&r.UserAgent, validation.Length(0, maxFieldLength)),
		validation.Field(&r.Referrer, validation.Length(0, maxFieldLength)),
	))
}

// ========================================
// REPORTS
// ========================================

// Traffic counts events over fixed windows. Unique visitors are distinct
// session ids.
type Traffic struct {
	TotalViews         int `json:"total_page_views"`
	TodayViews         int `json:"today_views"`
	WeekViews          int `json:"week_views"`
	MonthViews         int `json:"month_views"`
	UniqueVisitors     int `json:"unique_visitors"`
	UniqueVisitorsWeek int `json:"unique_visitors_week"`
}

// TargetCount is the number of events pointing at one id
type TargetCount struct {
	ID    uuid.UUID
	Count int
}

type DailyViews struct {
	Date  string `json:"date"`
	Views int    `json:"views"`
}

type PopularTalent struct {
	TalentID     uuid.UUID `json:"talent_id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	ProfileImage string    `json:"profile_image"`
	Views        int       `json:"views"`
}

type PartyStat struct {
	PartyID   uuid.UUID `json:"party_id"`
	Title     string    `json:"title"`
	Venue     string    `json:"venue"`
	EventDate string    `json:"event_date"`
	Views     int       `json:"views"`
}

type AdStat struct {
	AdID   uuid.UUID `json:"ad_id"`
	Title  string    `json:"title"`
	Link   string    `json:"link"`
	Clicks int       `json:"clicks"`
}

// Activity is an event with its target's display name resolved
type Activity struct {
	EventType  EventType `json:"event_type"`
	Page       string    `json:"page"`
	TalentName string    `json:"talent_name,omitempty"`
	PartyTitle string    `json:"party_title,omitempty"`
	AdTitle    string    `json:"ad_title,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
