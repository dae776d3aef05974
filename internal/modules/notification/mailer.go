package notification

import (
	"context"
	"log"
)

// LogMailer satisfies the auth module's Mailer port by writing codes to
// the server log. Swap for an SMTP mailer in production.
type LogMailer struct{}

func (LogMailer) SendPasswordResetCode(_ context.Context, email, code string) error {
	log.Printf("mailer: password reset code for %s: %s", email, code)
	return nil
}
