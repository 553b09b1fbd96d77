package auth

import (
	"context"
	"strings"

	"auth-gateway/internal/repository"
	apperrors "auth-gateway/pkg/errors"
	"auth-gateway/pkg/password"
)

// Pre-computed bcrypt hash (cost 12) used to equalize timing on failed lookups.
// The actual plaintext is irrelevant — this just ensures constant-time response.
const dummyBcryptHash = "$2a$12$dWR5CQpS4zNHLavLSIr4o.P6QDQEUJKv7mJ7WekUHHqyRSRMJzH0S"

// AuthService is the only path that can mint a token. It is stateless and
// safe for concurrent use; the repository and token secret are read-only
// from its point of view.
type AuthService struct {
	accounts repository.AccountRepository
	tokens   *TokenService
}

func NewAuthService(accounts repository.AccountRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		accounts: accounts,
		tokens:   tokens,
	}
}

// Authenticate verifies the submitted credentials and mints a bearer token.
// Unknown email and wrong password both return ErrInvalidCredentials so the
// response cannot be used to enumerate accounts.
func (s *AuthService) Authenticate(ctx context.Context, email, secret string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || secret == "" {
		password.Verify("", dummyBcryptHash)
		return "", apperrors.InvalidCredentials()
	}

	acct, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		// Run bcrypt against a dummy hash to prevent timing oracle.
		// Without this, "account not found" returns in ~1ms while
		// "wrong password" takes ~200ms, leaking email existence.
		password.Verify(secret, dummyBcryptHash)
		return "", apperrors.InvalidCredentials()
	}

	if !password.Verify(secret, acct.PasswordHash) {
		return "", apperrors.InvalidCredentials()
	}

	token, err := s.tokens.Mint(acct.Email)
	if err != nil {
		return "", apperrors.InternalServer("failed to generate token", err)
	}

	return token, nil
}
