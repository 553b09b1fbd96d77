package mailer

import (
	"context"
	"fmt"

	"auth-gateway/internal/domain/account"
	"auth-gateway/pkg/mailer"
	"auth-gateway/pkg/mailer/providers"
	"auth-gateway/pkg/mailer/templates"
)

// PasswordMailer renders and dispatches the new-password email. It
// satisfies the reset flow's mailer interface.
type PasswordMailer struct {
	svc      *mailer.EmailService
	template *templates.TypedTemplate[templates.NewPasswordContext]
	company  string
}

func NewPasswordMailer(svc *mailer.EmailService, company string) (*PasswordMailer, error) {
	tmpl, err := templates.NewPasswordTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to build new-password template: %w", err)
	}

	return &PasswordMailer{
		svc:      svc,
		template: tmpl,
		company:  company,
	}, nil
}

func (m *PasswordMailer) SendNewPassword(ctx context.Context, acct *account.Account, tempSecret string) error {
	html, text, err := m.template.Render(templates.NewPasswordContext{
		Company:      m.company,
		UserName:     acct.Name,
		TempPassword: tempSecret,
	})
	if err != nil {
		return fmt.Errorf("failed to render new-password email: %w", err)
	}

	_, err = m.svc.Send(ctx, &providers.EmailData{
		To:      []string{acct.Email},
		Subject: m.company + ": your new password",
		HTML:    html,
		Text:    text,
	})
	return err
}
