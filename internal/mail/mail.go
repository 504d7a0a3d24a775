package mail

import "context"

// Message is the payload for an expiry warning email. The receiving
// template variables mirror what the notification agent expects.
type Message struct {
	To            string
	RecipientName string
	Subject       string
	ExpiryDate    string
	DaysRemaining int
	AppTitle      string
	AppURL        string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}
