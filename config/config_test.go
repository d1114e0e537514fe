package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, DefaultDatabaseURL, cfg.DatabaseURL)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, TokenTTL, cfg.TokenTTL)
	assert.Equal(t, BcryptCost, cfg.BcryptCost)
	assert.Equal(t, TokenIssuer, cfg.TokenIssuer)
}

func TestFromLookup_Overrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"JWT_SECRET":   "s3cret",
		"DATABASE_URL": "postgres://app:pw@localhost:5432/tasks",
		"PORT":         "8080",
	}))
	require.NoError(t, err)

	assert.Equal(t, "postgres://app:pw@localhost:5432/tasks", cfg.DatabaseURL)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestFromLookup_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing secret",
			env:  map[string]string{},
		},
		{
			name: "empty secret",
			env:  map[string]string{"JWT_SECRET": ""},
		},
		{
			name: "non-numeric port",
			env:  map[string]string{"JWT_SECRET": "s", "PORT": "http"},
		},
		{
			name: "port out of range",
			env:  map[string]string{"JWT_SECRET": "s", "PORT": "70000"},
		},
		{
			name: "zero port",
			env:  map[string]string{"JWT_SECRET": "s", "PORT": "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromLookup(lookupFrom(tt.env))
			assert.Error(t, err)
		})
	}
}

func TestFromLookup_MissingSecretSentinel(t *testing.T) {
	_, err := FromLookup(lookupFrom(map[string]string{"PORT": "3000"}))
	assert.ErrorIs(t, err, ErrMissingSecret)
}
