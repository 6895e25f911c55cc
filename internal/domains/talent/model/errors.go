package model

import "fashionmag-backend/internal/shared/apperror"

func NewTalentNotFoundError() *apperror.Error {
	return apperror.NotFound("talent")
}

func NewEmailTakenError() *apperror.Error {
	return apperror.Conflict("email is already registered")
}

func NewInvalidCredentialsError() *apperror.Error {
	return apperror.Unauthorized("invalid email or password")
}

func NewAccountLockedError() *apperror.Error {
	return apperror.Unauthorized("too many failed attempts, try again later")
}

func NewInvalidResetCodeError() *apperror.Error {
	return apperror.Validation("invalid or expired reset code", nil)
}
