package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig_DefaultExpiration(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-secret-key", cfg.Secret)
	assert.Equal(t, DefaultJWTExpirationHours, cfg.ExpirationHours)
}

func TestNewJWTConfig_Expiration(t *testing.T) {
	tests := []struct {
		name       string
		expiration string
		want       int
		wantErr    string
	}{
		{"custom", "12", 12, ""},
		{"minimum", "1", 1, ""},
		{"zero", "0", 0, "at least 1 hour"},
		{"negative", "-5", 0, "at least 1 hour"},
		{"not a number", "soon", 0, "invalid JWT_EXPIRATION_HOURS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "secret")
			t.Setenv("JWT_EXPIRATION_HOURS", tt.expiration)

			cfg, err := NewJWTConfig()
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.ExpirationHours)
		})
	}
}

func TestNewJWTConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := NewJWTConfig()
	assert.ErrorContains(t, err, "JWT_SECRET is required")
	assert.Nil(t, cfg)
}

func TestJWTConfig_Validate(t *testing.T) {
	assert.Error(t, (&JWTConfig{ExpirationHours: 1}).Validate())
	assert.NoError(t, (&JWTConfig{Secret: "s", ExpirationHours: 1}).Validate())
}
