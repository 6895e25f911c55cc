package model

import (
	"fmt"
	"strings"

	"fashionmag-backend/internal/shared/apperror"
)

// Kind tags a promotional entry variant
type Kind string

const (
	KindHero          Kind = "hero"
	KindAdvertisement Kind = "advertisement"
	KindPartyEvent    Kind = "party_event"
	KindContestWinner Kind = "contest_winner"
)

const (
	MaxHeroSlides   = 10
	MaxWinnerImages = 5
)

// Kinds lists every variant
var Kinds = []Kind{KindHero, KindAdvertisement, KindPartyEvent, KindContestWinner}

// route segments accepted for each kind
var kindAliases = map[string]Kind{
	"hero":           KindHero,
	"hero-slides":    KindHero,
	"advertisement":  KindAdvertisement,
	"advertisements": KindAdvertisement,
	"ads":            KindAdvertisement,
	"party_event":    KindPartyEvent,
	"party-events":   KindPartyEvent,
	"contest_winner": KindContestWinner,
	"awards":         KindContestWinner,
}

// ParseKind accepts a kind name or its route segment.
func ParseKind(s string) (Kind, error) {
	if k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return "", apperror.Validation(fmt.Sprintf("unknown content kind %q", s), nil)
}

// CollectionLimit is the maximum number of entries of a kind; 0 means unbounded.
func (k Kind) CollectionLimit() int {
	if k == KindHero {
		return MaxHeroSlides
	}
	return 0
}

// Orderable kinds accept SetOrder
func (k Kind) Orderable() bool {
	return k == KindHero || k == KindAdvertisement
}

// Activatable kinds carry an is_active flag and hide inactive entries publicly
func (k Kind) Activatable() bool {
	return k == KindAdvertisement || k == KindPartyEvent || k == KindContestWinner
}

// CacheKey is where the public listing of a kind is cached
func (k Kind) CacheKey(activeOnly bool) string {
	if k.Activatable() && !activeOnly {
		return "content:public:" + string(k) + ":all"
	}
	return "content:public:" + string(k)
}
