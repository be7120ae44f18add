package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMaker() *MakerImpl {
	return NewJWTMaker("access_secret_1234567890", "refresh_secret_0987654321",
		15*time.Minute, 7*24*time.Hour)
}

func TestJWTMaker_GenerateAndParsePair_ValidCases(t *testing.T) {
	maker := newTestMaker()

	tests := []struct {
		name    string
		userUID string
		email   string
		role    string
	}{
		{
			name:    "admin user",
			userUID: "8be2cd3e-7c13-4b0a-9a52-7a2f8a1f4a01",
			email:   "admin@example.com",
			role:    "ADMIN",
		},
		{
			name:    "regular user",
			userUID: "0d93a877-1d16-4c6e-9f0d-55d1b7c0ab11",
			email:   "user@example.com",
			role:    "USER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			access, refresh, err := maker.GeneratePair(tt.userUID, tt.email, tt.role)
			require.NoError(t, err)
			assert.NotEmpty(t, access)
			assert.NotEmpty(t, refresh)
			assert.NotEqual(t, access, refresh)

			accessClaims, err := maker.ParseAccess(access)
			require.NoError(t, err)
			assert.Equal(t, tt.userUID, accessClaims.Subject)
			assert.Equal(t, tt.email, accessClaims.Email)
			assert.Equal(t, tt.role, accessClaims.Role)
			assert.WithinDuration(t, time.Now().Add(15*time.Minute), accessClaims.ExpiresAt.Time, time.Second)

			refreshClaims, err := maker.ParseRefresh(refresh)
			require.NoError(t, err)
			assert.Equal(t, tt.userUID, refreshClaims.Subject)
			assert.Equal(t, tt.email, refreshClaims.Email)
			assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), refreshClaims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestJWTMaker_TokensAreNotInterchangeable(t *testing.T) {
	maker := newTestMaker()

	access, refresh, err := maker.GeneratePair("uid", "user@example.com", "USER")
	require.NoError(t, err)

	// access-токен не проходит проверку refresh-секретом
	claims, err := maker.ParseRefresh(access)
	assert.Error(t, err)
	assert.Nil(t, claims)

	// и наоборот
	accessClaims, err := maker.ParseAccess(refresh)
	assert.Error(t, err)
	assert.Nil(t, accessClaims)
}

func TestJWTMaker_ParseAccess_InvalidTokens(t *testing.T) {
	maker := newTestMaker()

	validAccess, _, err := maker.GeneratePair("uid", "user@example.com", "USER")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "malformed token",
			token: "invalid.token.here",
		},
		{
			name:  "expired token",
			token: createExpiredAccessToken(t),
		},
		{
			name:  "wrong secret key",
			token: createTokenWithWrongSecret(t),
		},
		{
			name:  "tampered token",
			token: validAccess + "tampered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseAccess(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func createExpiredAccessToken(t *testing.T) string {
	expired := NewJWTMaker("access_secret_1234567890", "refresh_secret_0987654321",
		-time.Hour, -time.Hour)
	access, _, err := expired.GeneratePair("uid", "user@example.com", "USER")
	require.NoError(t, err)
	return access
}

func createTokenWithWrongSecret(t *testing.T) string {
	wrong := NewJWTMaker("wrong_secret_key", "another_wrong_secret",
		15*time.Minute, time.Hour)
	access, _, err := wrong.GeneratePair("uid", "user@example.com", "USER")
	require.NoError(t, err)
	return access
}

func TestJWTMaker_RefreshExpiration(t *testing.T) {
	// exp хранится с точностью до секунды, поэтому TTL меньше секунды
	// истекает ещё до первого разбора
	maker := NewJWTMaker("access_secret", "refresh_secret",
		time.Minute, 2*time.Second)

	_, refresh, err := maker.GeneratePair("uid", "user@example.com", "USER")
	require.NoError(t, err)

	claims, err := maker.ParseRefresh(refresh)
	require.NoError(t, err)
	assert.NotNil(t, claims)

	time.Sleep(3 * time.Second)

	_, err = maker.ParseRefresh(refresh)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}
