package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *JWTConfig {
	return &JWTConfig{Secret: "test-secret", ExpireTime: time.Hour}
}

func TestGenerateAndParseToken(t *testing.T) {
	cfg := testConfig()

	token, err := GenerateToken(cfg, "acc-1", RoleAdmin, time.Now())
	require.NoError(t, err)

	claims, err := ParseToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.AccountID)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestParseTokenRejects(t *testing.T) {
	cfg := testConfig()

	expired, err := GenerateToken(cfg, "acc-1", RoleAdmin, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	otherSecret, err := GenerateToken(&JWTConfig{Secret: "other", ExpireTime: time.Hour}, "acc-1", RoleAdmin, time.Now())
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{AccountID: "acc-1"}).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "", ErrEmptyToken},
		{"garbage", "not-a-jwt", ErrInvalidToken},
		{"expired", expired, ErrInvalidToken},
		{"wrong secret", otherSecret, ErrInvalidToken},
		{"missing exp", noExp, ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(cfg, tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseTokenRequiresSecret(t *testing.T) {
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		AccountID: "acc-1",
		Role:      RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(""))
	require.NoError(t, err)

	claims, err := ParseToken(&JWTConfig{ExpireTime: time.Hour}, unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)

	_, err = ParseToken(nil, unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = GenerateToken(&JWTConfig{ExpireTime: time.Hour}, "acc-1", RoleAdmin, time.Now())
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hashed, err := HashPassword("s3cret")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hashed, "s3cret"))
	assert.False(t, CheckPassword(hashed, "wrong"))
}
