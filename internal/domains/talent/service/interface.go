package service

import (
	"context"

	"github.com/google/uuid"

	"fashionmag-backend/internal/domains/talent/model"
	"fashionmag-backend/internal/infrastructure/email"
	"fashionmag-backend/internal/shared"
)

// ServiceInterface is the Talent Registry
type ServiceInterface interface {
	// Public
	Register(ctx context.Context, req model.RegisterRequest) (*model.Talent, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	// ForgotPassword mails a one-time reset code; unknown emails succeed silently
	ForgotPassword(ctx context.Context, req model.ForgotPasswordRequest) error
	ResetPasswordWithCode(ctx context.Context, req model.ResetWithCodeRequest) error
	// Get hides non-approved talents from anyone but an admin or the owner
	Get(ctx context.Context, actor *shared.Actor, id uuid.UUID) (*model.Talent, error)

	// Owner or admin
	UpdateProfile(ctx context.Context, actor *shared.Actor, id uuid.UUID, req model.UpdateTalentRequest) (*model.Talent, error)

	// Admin
	Approve(ctx context.Context, id uuid.UUID) (*model.Talent, error)
	Reject(ctx context.Context, id uuid.UUID) (*model.Talent, error)
	Revoke(ctx context.Context, id uuid.UUID) (*model.Talent, error)
	SetRank(ctx context.Context, id uuid.UUID, rank int) (*model.Talent, error)
	ResetPassword(ctx context.Context, id uuid.UUID, req model.ResetPasswordRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExportRoster(ctx context.Context, format model.ExportFormat) (*model.RosterExport, error)
}

// VotePurger drops the vote ledger rows of a deleted talent
type VotePurger interface {
	PurgeTalent(ctx context.Context, talentID uuid.UUID) error
}

// MediaCleaner schedules removal of a deleted talent's uploaded media
type MediaCleaner interface {
	EnqueueTalentMediaCleanup(ctx context.Context, talentID uuid.UUID) error
}

// ResetCodeSender delivers reset codes: directly over SMTP, or through the
// worker queue
type ResetCodeSender interface {
	SendResetCode(ctx context.Context, data email.ResetCodeEmail) error
}
