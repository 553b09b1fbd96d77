package auth

import (
	"crypto/rand"
	"fmt"
)

// Alphabet for temporary passwords: digits, uppercase and lowercase letters.
const secretAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Largest multiple of len(secretAlphabet) that fits in a byte. Bytes at or
// above this are rejected so every alphabet character stays equally likely.
const secretRejectAbove = byte(len(secretAlphabet) * (256 / len(secretAlphabet)))

// NewTemporarySecret draws a fixed-length secret uniformly from the
// alphabet using crypto/rand.
func NewTemporarySecret(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("temporary secret length must be positive, got %d", length)
	}

	out := make([]byte, 0, length)
	buf := make([]byte, length)

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}

		for _, b := range buf {
			if b >= secretRejectAbove {
				continue
			}
			out = append(out, secretAlphabet[int(b)%len(secretAlphabet)])
			if len(out) == length {
				break
			}
		}
	}

	return string(out), nil
}
