package service

import "context"

// Mailer delivers account lifecycle mail. Callers treat sends as
// fire-and-forget; delivery failures never fail the triggering request.
type Mailer interface {
	SendVerificationLink(ctx context.Context, to, url string) error
	SendPasswordResetLink(ctx context.Context, to, url string) error
}
