package shared

import (
	"github.com/google/uuid"

	"fashionmag-backend/pkg/jwt"
)

const (
	RoleAdmin  = jwt.RoleAdmin
	RoleTalent = jwt.RoleTalent
)

// Task types handled by cmd/worker
const (
	TypeCleanupTalentMedia  = "talent:cleanup_media"
	TypeReconcileVoteCounts = "vote:reconcile_counts"
	TypeSendResetCode       = "email:reset_code"
	TypePurgeAnalytics      = "analytics:purge_events"
)

// Queue names
const (
	QueueMedia       = "media"
	QueueEmail       = "email"
	QueueMaintenance = "maintenance"
)

// Actor is the authenticated caller, resolved from the bearer token by the
// auth middleware. A nil *Actor means an anonymous visitor.
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  string
}

func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

// Owns reports whether the actor is the talent with the given id.
func (a *Actor) Owns(talentID uuid.UUID) bool {
	return a != nil && a.Role == RoleTalent && a.ID == talentID
}

// CleanupTalentMediaPayload is the payload of TypeCleanupTalentMedia
type CleanupTalentMediaPayload struct {
	TalentID string `json:"talent_id"`
}
