package model

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"fashionmag-backend/internal/shared/apperror"
)

// ========================================
// REQUEST DTOs
// ========================================

type RegisterRequest struct {
	Name            string   `json:"name" binding:"required"`
	Email           string   `json:"email" binding:"required"`
	Password        string   `json:"password" binding:"required"`
	Phone           string   `json:"phone" binding:"required"`
	InstagramID     string   `json:"instagram_id"`
	Category        Category `json:"category" binding:"required"`
	Bio             string   `json:"bio"`
	ProfileImage    string   `json:"profile_image" binding:"required"`
	PortfolioImages []string `json:"portfolio_images"`
	PortfolioVideo  *Video   `json:"portfolio_video"`
	AgreedToTerms   bool     `json:"agreed_to_terms"`
}

// Normalize trims whitespace and lower-cases the email
func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.InstagramID = strings.TrimSpace(r.InstagramID)
	r.ProfileImage = strings.TrimSpace(r.ProfileImage)
}

func (r RegisterRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 120),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.EmailFormat,
			validation.Length(3, 255),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(MinPasswordLength, MaxPasswordLength).
				Error(fmt.Sprintf("password must be at least %d characters", MinPasswordLength)),
		),
		validation.Field(&r.Phone,
			validation.Required.Error("phone is required"),
			validation.Length(5, 30),
		),
		validation.Field(&r.Category,
			validation.Required.Error("category is required"),
			validation.In(categoryValues()...).Error("unknown category"),
		),
		validation.Field(&r.ProfileImage,
			validation.Required.Error("profile image is required"),
		),
		validation.Field(&r.AgreedToTerms,
			validation.Required.Error("terms must be accepted"),
		),
	)
	return apperror.FromValidation(err)
}

// UpdateTalentRequest patches profile and media fields; nil means unchanged.
type UpdateTalentRequest struct {
	Name            *string   `json:"name"`
	Phone           *string   `json:"phone"`
	InstagramID     *string   `json:"instagram_id"`
	Category        *Category `json:"category"`
	Bio             *string   `json:"bio"`
	ProfileImage    *string   `json:"profile_image"`
	PortfolioImages *[]string `json:"portfolio_images"`
	PortfolioVideo  *Video    `json:"portfolio_video"`
	RemoveVideo     bool      `json:"remove_video"`
}

func (r UpdateTalentRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.When(r.Name != nil, validation.Required.Error("name cannot be empty"), validation.Length(1, 120)),
		),
		validation.Field(&r.Phone,
			validation.When(r.Phone != nil, validation.Required.Error("phone cannot be empty"), validation.Length(5, 30)),
		),
		validation.Field(&r.Category,
			validation.When(r.Category != nil,
				validation.Required.Error("category cannot be empty"),
				validation.In(categoryValues()...).Error("unknown category"),
			),
		),
		validation.Field(&r.ProfileImage,
			validation.When(r.ProfileImage != nil, validation.Required.Error("profile image cannot be empty")),
		),
	)
	return apperror.FromValidation(err)
}

type SetRankRequest struct {
	Rank *int `json:"rank"`
}

func (r SetRankRequest) Validate() error {
	return apperror.FromValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Rank, validation.NotNil.Error("rank is required")),
	))
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

func (r ResetPasswordRequest) Validate() error {
	return apperror.FromValidation(validation.ValidateStruct(&r,
		validation.Field(&r.NewPassword,
			validation.Required.Error("new password is required"),
			validation.Length(MinPasswordLength, MaxPasswordLength).
				Error(fmt.Sprintf("password must be at least %d characters", MinPasswordLength)),
		),
	))
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r ForgotPasswordRequest) Validate() error {
	return apperror.FromValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error("email is required"), is.EmailFormat),
	))
}

// ResetWithCodeRequest completes a self-service reset with the mailed code
type ResetWithCodeRequest struct {
	Email       string `json:"email"`
	Code        string `json:"reset_code"`
	NewPassword string `json:"new_password"`
}

func (r ResetWithCodeRequest) Validate() error {
	return apperror.FromValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error("email is required"), is.EmailFormat),
		validation.Field(&r.Code,
			validation.Required.Error("reset code is required"),
			validation.Match(resetCodePattern).Error(fmt.Sprintf("reset code must be %d digits", ResetCodeLength)),
		),
		validation.Field(&r.NewPassword,
			validation.Required.Error("new password is required"),
			validation.Length(MinPasswordLength, MaxPasswordLength).
				Error(fmt.Sprintf("password must be at least %d characters", MinPasswordLength)),
		),
	))
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return apperror.FromValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required),
	))
}

// ========================================
// RESPONSE DTOs
// ========================================

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   int64     `json:"expires_at"`
	TalentID    uuid.UUID `json:"talent_id"`
	Talent      *Talent   `json:"talent"`
}

// ========================================
// HELPERS
// ========================================

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CheckMedia enforces the portfolio capacity bounds.
func CheckMedia(images []string, video *Video) error {
	if len(images) > MaxPortfolioImages {
		return apperror.Capacity(
			fmt.Sprintf("portfolio accepts at most %d images", MaxPortfolioImages),
			MaxPortfolioImages,
		)
	}
	for i, img := range images {
		if strings.TrimSpace(img) == "" {
			return apperror.Validation(fmt.Sprintf("portfolio image %d is empty", i+1), nil)
		}
	}
	if video == nil {
		return nil
	}
	if strings.TrimSpace(video.URL) == "" {
		return apperror.Validation("portfolio video url is required", nil)
	}
	if video.DurationSeconds <= 0 {
		return apperror.Validation("portfolio video duration is required", nil)
	}
	if video.DurationSeconds > MaxVideoSeconds {
		return apperror.Capacity(
			fmt.Sprintf("portfolio video must be at most %d seconds", MaxVideoSeconds),
			MaxVideoSeconds,
		)
	}
	if video.SizeBytes < 0 || video.SizeBytes > MaxVideoBytes {
		return apperror.Capacity("portfolio video must be at most 50MB", MaxVideoBytes)
	}
	return nil
}

// ========================================
// EXPORT
// ========================================

type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

// RosterExport is a rendered roster file
type RosterExport struct {
	Filename    string
	ContentType string
	Data        []byte
}

// RosterHeaders are the export columns in order
var RosterHeaders = []string{"Name", "Email", "Phone", "Instagram", "Category", "Status", "Rank", "Votes"}
