package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillscan/internal/config"
)

const testSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

func setupTestJWTService(_ *testing.T, expirationHours int) *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: testSecret, ExpirationHours: expirationHours})
}

func TestJWTService_GenerateToken(t *testing.T) {
	service := setupTestJWTService(t, 24)

	token, err := service.GenerateToken("ci-runner")
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ci-runner", claims.Subject)
	assert.Equal(t, TokenIssuer, claims.Issuer)
}

func TestJWTService_GenerateToken_RequiresClient(t *testing.T) {
	service := setupTestJWTService(t, 24)
	_, err := service.GenerateToken("  ")
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_InvalidSignature(t *testing.T) {
	service := setupTestJWTService(t, 24)
	other := NewJWTService(&config.JWTConfig{Secret: "a-different-secret-of-sufficient-length", ExpirationHours: 24})

	token, err := other.GenerateToken("ci-runner")
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token signature")
}

func TestJWTService_ValidateToken_Malformed(t *testing.T) {
	service := setupTestJWTService(t, 24)

	for _, token := range []string{"", "not-a-jwt", "a.b.c", "not.a.valid.jwt.token"} {
		_, err := service.ValidateToken(token)
		assert.Error(t, err, token)
	}
}

func TestJWTService_TokenExpiration(t *testing.T) {
	service := setupTestJWTService(t, 2)
	issued := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return issued }

	token, err := service.GenerateToken("ci-runner")
	require.NoError(t, err)

	service.now = func() time.Time { return issued.Add(119 * time.Minute) }
	_, err = service.ValidateToken(token)
	require.NoError(t, err)

	service.now = func() time.Time { return issued.Add(3 * time.Hour) }
	_, err = service.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token expired")
}

func TestJWTService_RejectsForeignIssuerAndAlgorithm(t *testing.T) {
	service := setupTestJWTService(t, 24)
	now := time.Now()

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Subject:   "ci-runner",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})
	signed, err := foreign.SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = service.ValidateToken(signed)
	assert.Error(t, err)

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Issuer:    TokenIssuer,
		Subject:   "ci-runner",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})
	signed, err = hs512.SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = service.ValidateToken(signed)
	assert.Error(t, err)
}

func TestJWTService_RequiresExpiry(t *testing.T) {
	service := setupTestJWTService(t, 24)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Issuer: TokenIssuer, Subject: "ci-runner"})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = service.ValidateToken(signed)
	assert.Error(t, err)
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	service := setupTestJWTService(t, 24)
	token, err := service.GenerateToken("ci-runner")
	require.NoError(t, err)

	client, err := service.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ci-runner", client)

	_, err = service.AsTokenValidator().ValidateToken("garbage")
	assert.Error(t, err)
}
