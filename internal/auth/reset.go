package auth

import (
	"context"
	"log"
	"strings"

	"auth-gateway/internal/domain/account"
	"auth-gateway/internal/repository"
	apperrors "auth-gateway/pkg/errors"
	"auth-gateway/pkg/password"
)

// PasswordMailer dispatches a freshly generated temporary password to an
// account's registered email address.
type PasswordMailer interface {
	SendNewPassword(ctx context.Context, acct *account.Account, tempSecret string) error
}

// PasswordResetService replaces an account's password with a random
// temporary one and emails it to the account holder. Single pass, no
// intermediate state: lookup, generate, hash, persist, notify.
//
// Two concurrent resets for the same email race on the directory write;
// last write wins and only that password verifies afterwards. If dispatch
// fails after the hash was persisted, the account is left holding the new
// password with no email in flight — logged, not rolled back.
type PasswordResetService struct {
	accounts     repository.AccountRepository
	mailer       PasswordMailer
	secretLength int
	logger       *log.Logger
}

func NewPasswordResetService(accounts repository.AccountRepository, mailer PasswordMailer, secretLength int, logger *log.Logger) *PasswordResetService {
	if logger == nil {
		logger = log.Default()
	}

	return &PasswordResetService{
		accounts:     accounts,
		mailer:       mailer,
		secretLength: secretLength,
		logger:       logger,
	}
}

// Request runs the reset flow for the given email. It returns ErrNotFound
// when no account matches; the HTTP layer decides whether to reveal that.
// The temporary secret exists in memory only between generation, hashing
// and dispatch — it is never persisted in plaintext and never logged.
func (s *PasswordResetService) Request(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	acct, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return apperrors.NotFound("account not found for email")
	}

	tempSecret, err := NewTemporarySecret(s.secretLength)
	if err != nil {
		return apperrors.InternalServer("failed to generate temporary password", err)
	}

	hash, err := password.Hash(tempSecret)
	if err != nil {
		return apperrors.InternalServer("failed to hash temporary password", err)
	}

	if err := s.accounts.UpdatePasswordHash(ctx, acct.ID, hash); err != nil {
		return apperrors.InternalServer("failed to store new password hash", err)
	}

	if err := s.mailer.SendNewPassword(ctx, acct, tempSecret); err != nil {
		// The hash is already persisted; only the new password works now.
		// No rollback — the caller still gets a success.
		s.logger.Printf("password reset: delivery failed for account %s: %v", acct.ID, err)
	}

	return nil
}
