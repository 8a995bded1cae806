package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-matcher/internal/config"
)

func TestJWTService_ValidateToken(t *testing.T) {
	svc := NewJWTService(&config.JWTConfig{Secret: testSecret, Leeway: time.Second})
	userID := uuid.New()

	claims, err := svc.ValidateToken(signToken(t, testSecret, userID, time.Hour))
	require.NoError(t, err)
	assert.Equal(t, userID, claims.GetUserID())

	tests := []struct {
		name    string
		token   string
		wantErr string
	}{
		{"empty", "", "token string is empty"},
		{"expired", signToken(t, testSecret, userID, -time.Hour), "token expired"},
		{"wrong secret", signToken(t, "another-secret", userID, time.Hour), "invalid token signature"},
		{"garbage", "not.a.jwt", "malformed token"},
		{"no user", signToken(t, testSecret, uuid.Nil, time.Hour), "no user_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestJWTService_RejectsNoneAlgorithm(t *testing.T) {
	svc := NewJWTService(&config.JWTConfig{Secret: testSecret})
	claims := &Claims{
		UserID:           uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RequiresExpiry(t *testing.T) {
	svc := NewJWTService(&config.JWTConfig{Secret: testSecret})
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: uuid.New()}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_Issuer(t *testing.T) {
	svc := NewJWTService(&config.JWTConfig{Secret: testSecret, Issuer: "accounts"})
	userID := uuid.New()

	sign := func(issuer string) string {
		claims := &Claims{
			UserID: userID,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    issuer,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		return token
	}

	_, err := svc.ValidateToken(sign("accounts"))
	assert.NoError(t, err)
	_, err = svc.ValidateToken(sign("someone-else"))
	assert.Error(t, err)
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	svc := NewJWTService(&config.JWTConfig{Secret: testSecret})
	userID := uuid.New()

	getter, err := svc.AsTokenValidator().ValidateToken(signToken(t, testSecret, userID, time.Hour))
	require.NoError(t, err)
	assert.Equal(t, userID, getter.GetUserID())

	_, err = svc.AsTokenValidator().ValidateToken("bad")
	assert.Error(t, err)
}
