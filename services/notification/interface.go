package notification

import "context"

// Email is one outbound message.
type Email struct {
	From     string
	FromName string
	To       string
	Subject  string
	Text     string
	HTML     string
}

// Mailer sends email. Implementations do not retry; the caller decides
// what a failed send means.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}
