package adapter

import "context"

// Mailer delivers transactional mail (OTP codes). Delivery failures surface
// as errors; the caller decides whether they are fatal to the request.
type Mailer interface {
	SendOTP(ctx context.Context, to, subject, code string) error
}
