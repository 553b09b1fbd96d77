package auth

import (
	"errors"
	"fmt"
	"time"

	apperrors "auth-gateway/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService mints and verifies the bearer tokens that carry an
// authenticated identity between requests. Tokens are self-contained:
// subject, issue time and expiry are signed with a process-wide HMAC secret,
// so verification needs no server-side session state.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Mint signs a token for the given subject. Expiry is fixed at mint time as
// issued-at plus the configured TTL.
func (s *TokenService) Mint(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token and returns its subject. Malformed
// structure, signature mismatch and expiry are reported as distinct wrapped
// sentinels so callers can log the reason; the HTTP boundary collapses all
// of them into one generic unauthorized response.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf(msgUnexpectedSigningMethod, token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", fmt.Errorf("%w: %v", apperrors.ErrTokenExpired, err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", fmt.Errorf("%w: %v", apperrors.ErrTokenSignature, err)
		default:
			return "", fmt.Errorf("%w: %v", apperrors.ErrTokenMalformed, err)
		}
	}

	if !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("%w: %s", apperrors.ErrTokenMalformed, msgEmptyTokenSubject)
	}

	return claims.Subject, nil
}
