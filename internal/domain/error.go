package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrAlreadyExists      = errors.New("entity already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOTP         = errors.New("invalid or expired otp")
	ErrPhoneInUse         = errors.New("phone number already in use")
	ErrInvalidSignature   = errors.New("invalid payment signature")
	ErrPaymentNotCaptured = errors.New("payment not captured")
	ErrNoPlanDuration     = errors.New("plan has no duration")
	ErrInvalidPrice       = errors.New("invalid price value")

	// Infra-level errors surfaced by repositories
	ErrOperationFailed    = errors.New("operation failed")
	ErrReadDatabaseRow    = errors.New("failed to read database row")
	ErrInvalidExecContext = errors.New("invalid executor context")
)
