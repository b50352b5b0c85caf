package mail

import (
	"context"
)

// MailService defines the interface for email operations
type MailService interface {
	// Send delivers one email with both HTML and plain-text bodies
	Send(ctx context.Context, from, to, subject, htmlBody, textBody string) error
}
