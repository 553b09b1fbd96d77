package mailer

import (
	"context"
	"errors"
	"net/mail"

	"auth-gateway/pkg/mailer/providers"
)

var (
	ErrProviderRequired    = errors.New("email provider is required")
	ErrAtLeastOneRecipient = errors.New("at least one recipient is required")
	ErrInvalidFromAddress  = errors.New("invalid from address")
	ErrSubjectRequired     = errors.New("subject is required")
	ErrBodyRequired        = errors.New("html body is required")
)

func ValidateEmail(email string) error {
	_, err := mail.ParseAddress(email)
	return err
}

// EmailService validates outgoing messages and hands them to a provider.
type EmailService struct {
	provider    providers.EmailProvider
	defaultFrom string
}

func NewEmailService(provider providers.EmailProvider, defaultFrom string) (*EmailService, error) {
	if provider == nil {
		return nil, ErrProviderRequired
	}

	if defaultFrom != "" {
		if err := ValidateEmail(defaultFrom); err != nil {
			return nil, ErrInvalidFromAddress
		}
	}

	return &EmailService{
		provider:    provider,
		defaultFrom: defaultFrom,
	}, nil
}

func (s *EmailService) Send(ctx context.Context, data *providers.EmailData) (*providers.EmailResult, error) {
	clone := *data
	if clone.From == "" {
		clone.From = s.defaultFrom
	}

	if err := validateEmailData(&clone); err != nil {
		return &providers.EmailResult{
			Success:  false,
			Provider: "validation",
			Error:    err.Error(),
		}, err
	}

	return s.provider.Send(ctx, &clone)
}

func validateEmailData(data *providers.EmailData) error {
	if len(data.To) == 0 {
		return ErrAtLeastOneRecipient
	}

	for _, to := range data.To {
		if err := ValidateEmail(to); err != nil {
			return err
		}
	}

	if err := ValidateEmail(data.From); err != nil {
		return ErrInvalidFromAddress
	}

	if data.Subject == "" {
		return ErrSubjectRequired
	}

	if data.HTML == "" {
		return ErrBodyRequired
	}

	return nil
}
