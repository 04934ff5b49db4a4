// Package notify delivers operational email: drive-through holds, completed
// contact forms, franchise and wholesale leads. Delivery is best-effort; the
// conversation never blocks on a failed notification.
package notify

import "context"

// Mailer sends a plain-text notification email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Noop discards every notification. Used when no provider is configured.
type Noop struct{}

func (Noop) Send(context.Context, string, string, string) error { return nil }
