package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTemporarySecret_LengthAndAlphabet(t *testing.T) {
	for _, length := range []int{1, 10, 64} {
		secret, err := NewTemporarySecret(length)
		require.NoError(t, err)
		assert.Len(t, secret, length)

		for _, ch := range secret {
			assert.True(t, strings.ContainsRune(secretAlphabet, ch),
				"character %q outside alphabet", ch)
		}
	}
}

func TestNewTemporarySecret_InvalidLength(t *testing.T) {
	_, err := NewTemporarySecret(0)
	assert.Error(t, err)

	_, err = NewTemporarySecret(-3)
	assert.Error(t, err)
}

func TestNewTemporarySecret_NotConstant(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		secret, err := NewTemporarySecret(10)
		require.NoError(t, err)
		seen[secret] = true
	}

	// 32 draws from a 62^10 space colliding would mean a broken source.
	assert.Greater(t, len(seen), 1)
}
