package providers

import "context"

// EmailProvider is a single delivery backend.
type EmailProvider interface {
	Send(ctx context.Context, data *EmailData) (*EmailResult, error)
	Name() string
}

type EmailData struct {
	To      []string
	From    string
	Subject string
	HTML    string
	Text    string
}

type EmailResult struct {
	Success   bool
	MessageID string
	Provider  string
	Error     string
}
