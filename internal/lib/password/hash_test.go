package password

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/blog-platform/internal/lib/jwt"
)

func TestGetHashAndCompareHash(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{
			name:   "simple password",
			secret: "secret123",
		},
		{
			name:   "long token-like value",
			secret: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.payload.signature",
		},
		{
			name:   "password with unicode",
			secret: "пароль-123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := GetHash(tt.secret)
			require.NoError(t, err)
			assert.NotEmpty(t, hash)
			assert.NotEqual(t, tt.secret, hash)

			assert.NoError(t, CompareHash(hash, tt.secret))
			assert.Error(t, CompareHash(hash, tt.secret+"x"))
		})
	}
}

func TestGetTokenHash_RealRefreshToken(t *testing.T) {
	maker := jwt.NewJWTMaker("access-secret", "refresh-secret",
		15*time.Minute, 7*24*time.Hour)
	_, refresh, err := maker.GeneratePair("11111111-2222-3333-4444-555555555555",
		"user@example.com", "USER")
	require.NoError(t, err)
	// подписанный JWT заведомо длиннее лимита bcrypt в 72 байта
	require.Greater(t, len(refresh), 72)

	hash, err := GetTokenHash(refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	assert.NoError(t, CompareTokenHash(hash, refresh))
	assert.Error(t, CompareTokenHash(hash, refresh+"x"))
}

func TestGetTokenHash_DistinguishesLongTokens(t *testing.T) {
	// два токена с одинаковыми первыми 72 байтами не должны совпадать по хэшу
	prefix := strings.Repeat("a", 72)
	hash, err := GetTokenHash(prefix + "first")
	require.NoError(t, err)

	assert.NoError(t, CompareTokenHash(hash, prefix+"first"))
	assert.Error(t, CompareTokenHash(hash, prefix+"second"))
}

func TestGetHash_DifferentSaltsPerCall(t *testing.T) {
	first, err := GetHash("secret123")
	require.NoError(t, err)
	second, err := GetHash("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NoError(t, CompareHash(first, "secret123"))
	assert.NoError(t, CompareHash(second, "secret123"))
}
