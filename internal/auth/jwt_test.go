package auth

import (
	"strings"
	"testing"
	"time"

	apperrors "auth-gateway/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSigningSecret = "0123456789abcdefghijklmnopqrstuvwxyzABCDEF"

func TestTokenService_MintAndVerify(t *testing.T) {
	svc := NewTokenService(testSigningSecret, time.Hour)

	token, err := svc.Mint("a@b.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", subject)
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService(testSigningSecret, -time.Second)

	token, err := svc.Mint("a@b.com")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestTokenService_TamperedSignature(t *testing.T) {
	svc := NewTokenService(testSigningSecret, time.Hour)

	token, err := svc.Mint("a@b.com")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Flip one bit in every position of the signature segment. Bit 4 of
	// the base64url symbol is always part of the decoded signature, never
	// a padding bit, so each flip changes the signature bytes.
	const b64url = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	sig := []byte(parts[2])
	for i := range sig {
		idx := strings.IndexByte(b64url, sig[i])
		require.GreaterOrEqual(t, idx, 0)

		flipped := append([]byte(nil), sig...)
		flipped[i] = b64url[idx^16]

		tampered := parts[0] + "." + parts[1] + "." + string(flipped)
		_, err := svc.Verify(tampered)
		assert.Error(t, err, "flipping signature symbol %d must fail verification", i)
	}
}

func TestTokenService_TamperedPayload(t *testing.T) {
	svc := NewTokenService(testSigningSecret, time.Hour)

	token, err := svc.Mint("a@b.com")
	require.NoError(t, err)

	other, err := svc.Mint("admin@b.com")
	require.NoError(t, err)

	// Splice the payload of one token into the signature of another.
	parts := strings.Split(token, ".")
	otherParts := strings.Split(other, ".")
	spliced := parts[0] + "." + otherParts[1] + "." + parts[2]

	_, err = svc.Verify(spliced)
	assert.ErrorIs(t, err, apperrors.ErrTokenSignature)
}

func TestTokenService_WrongSecret(t *testing.T) {
	minter := NewTokenService(testSigningSecret, time.Hour)
	verifier := NewTokenService("anotherSecretValue0123456789abcdefghijkl", time.Hour)

	token, err := minter.Mint("a@b.com")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenSignature)
}

func TestTokenService_Malformed(t *testing.T) {
	svc := NewTokenService(testSigningSecret, time.Hour)

	for _, tokenString := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := svc.Verify(tokenString)
		assert.ErrorIs(t, err, apperrors.ErrTokenMalformed, "input %q", tokenString)
	}
}

func TestTokenService_RejectsUnsignedAlg(t *testing.T) {
	svc := NewTokenService(testSigningSecret, time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "a@b.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(tokenString)
	assert.Error(t, err)
}

func TestTokenService_EmptySubject(t *testing.T) {
	svc := NewTokenService(testSigningSecret, time.Hour)

	token, err := svc.Mint("")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenMalformed)
}

func TestTokenService_TTL(t *testing.T) {
	svc := NewTokenService(testSigningSecret, 2*time.Hour)
	assert.Equal(t, 2*time.Hour, svc.TTL())
}
