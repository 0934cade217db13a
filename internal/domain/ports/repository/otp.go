package repository

import (
	"context"
	"time"
)

// OTPPurpose namespaces stored codes so a registration OTP can never be
// replayed against the password-reset flow (and vice versa).
type OTPPurpose string

const (
	OTPPurposeRegister      OTPPurpose = "register"
	OTPPurposePasswordReset OTPPurpose = "password_reset"
	OTPPurposeAdminReset    OTPPurpose = "admin_reset"
)

// OTPStore holds short-lived one-time codes and the "verified" marker that a
// successful check leaves behind. Backed by Redis with TTL-based expiry.
type OTPStore interface {
	Put(ctx context.Context, purpose OTPPurpose, email, code string, ttl time.Duration) error
	// Check consumes the code when it matches; a mismatch leaves it in place.
	Check(ctx context.Context, purpose OTPPurpose, email, code string) (bool, error)
	MarkVerified(ctx context.Context, purpose OTPPurpose, email string, ttl time.Duration) error
	// ConsumeVerified reports and clears the verified marker.
	ConsumeVerified(ctx context.Context, purpose OTPPurpose, email string) (bool, error)
}
