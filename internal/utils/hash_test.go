package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPassword      = "password123"
	testWrongPassword = "password124"
)

// cheapParams keeps the suite fast; production cost is covered by the
// benchmarks.
var cheapParams = Argon2Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestHashPassword_Format(t *testing.T) {
	hash, err := HashPassword(testPassword)

	require.NoError(t, err)
	assert.NotContains(t, hash, testPassword, "Hash must not contain the plaintext")
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=1,p=4$"), "unexpected encoding: %s", hash)
}

func TestVerifyPassword_RoundTrip(t *testing.T) {
	hash, err := HashPasswordWithParams(testPassword, cheapParams)
	require.NoError(t, err)

	ok, err := VerifyPassword(testPassword, hash)
	require.NoError(t, err)
	assert.True(t, ok, "Password should match its hash")

	ok, err = VerifyPassword(testWrongPassword, hash)
	require.NoError(t, err)
	assert.False(t, ok, "Wrong password should not match")
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	hash1, err := HashPasswordWithParams(testPassword, cheapParams)
	require.NoError(t, err)
	hash2, err := HashPasswordWithParams(testPassword, cheapParams)
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2, "Same password should produce different hashes")
}

func TestVerifyPassword_UsesStoredParams(t *testing.T) {
	// A hash made with non-default params must verify without knowing them.
	hash, err := HashPasswordWithParams("secret1", Argon2Params{Memory: 4 * 1024, Iterations: 2, Parallelism: 2, SaltLength: 8, KeyLength: 16})
	require.NoError(t, err)

	ok, err := VerifyPassword("secret1", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyPassword_UnicodeAndEmpty(t *testing.T) {
	for _, pw := range []string{"", "パスワード🔒", strings.Repeat("a", 128)} {
		hash, err := HashPasswordWithParams(pw, cheapParams)
		require.NoError(t, err)

		ok, err := VerifyPassword(pw, hash)
		require.NoError(t, err)
		assert.True(t, ok, "password %q should verify", pw)
	}
}

func TestVerifyPassword_InvalidHashFormat(t *testing.T) {
	testCases := []struct {
		name string
		hash string
		want error
	}{
		{"Empty", "", ErrInvalidHash},
		{"Plaintext", "password123", ErrInvalidHash},
		{"Wrong algorithm", "$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA", ErrInvalidHash},
		{"Bad params", "$argon2id$v=19$m=x,t=1,p=4$c2FsdA$aGFzaA", ErrInvalidHash},
		{"Bad salt", "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA", ErrInvalidHash},
		{"Old version", "$argon2id$v=16$m=65536,t=1,p=4$c2FsdA$aGFzaA", ErrIncompatibleVersion},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := VerifyPassword(testPassword, tc.hash)
			assert.ErrorIs(t, err, tc.want)
			assert.False(t, ok)
		})
	}
}

func BenchmarkHashPassword(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = HashPassword(testPassword)
	}
}

func BenchmarkVerifyPassword(b *testing.B) {
	hash, _ := HashPassword(testPassword)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = VerifyPassword(testPassword, hash)
	}
}
