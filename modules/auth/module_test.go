package auth

import (
	"context"
	"testing"

	"github.com/example/task-manager-api/config"
	"github.com/example/task-manager-api/domain/apperr"
	"github.com/example/task-manager-api/modules/database"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)          {}
func (m *mockLogger) Info(msg string, args ...any)           {}
func (m *mockLogger) Warn(msg string, args ...any)           {}
func (m *mockLogger) Error(msg string, args ...any)          {}
func (m *mockLogger) With(args ...any) types.Logger          { return m }
func (m *mockLogger) WithError(err error) types.Logger       { return m }
func (m *mockLogger) WithModule(module string) types.Logger { return m }

func startedModule(t *testing.T) *AuthModule {
	t.Helper()
	ctx := context.Background()

	db := database.NewPluginModule(":memory:", &mockLogger{})
	require.NoError(t, db.Start(ctx))
	t.Cleanup(func() { _ = db.Stop(ctx) })

	m := NewModule(config.Config{
		JWTSecret:   "module-secret",
		TokenTTL:    config.TokenTTL,
		TokenIssuer: config.TokenIssuer,
		BcryptCost:  bcrypt.MinCost,
	}, &mockLogger{})
	m.SetPlugin("db", db)
	require.NoError(t, m.Start(ctx))
	return m
}

func TestAuthModule_StartRequiresDatabase(t *testing.T) {
	m := NewModule(config.Config{JWTSecret: "x"}, &mockLogger{})
	assert.Equal(t, "auth", m.Name())
	assert.Error(t, m.Start(context.Background()))
	assert.False(t, m.Health(context.Background()).Healthy)
}

func TestAuthModule_Handlers(t *testing.T) {
	ctx := context.Background()
	m := startedModule(t)
	assert.True(t, m.Health(ctx).Healthy)

	registered, err := m.handleRegister(ctx, RegisterRequest{Email: "alice@example.com", Password: "s3cret"}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, registered.ID)

	_, err = m.handleRegister(ctx, RegisterRequest{Email: "alice@example.com", Password: "again"}, nil)
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	login, err := m.handleLogin(ctx, LoginRequest{Email: "alice@example.com", Password: "s3cret"}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, int64(3600), login.ExpiresIn)

	verified, err := m.handleVerifyToken(ctx, VerifyTokenRequest{Token: login.Token}, nil)
	require.NoError(t, err)
	assert.True(t, verified.Valid)
	assert.Equal(t, registered.ID, verified.UserID)
}

func TestAuthModule_VerifyTokenRejectsWithoutError(t *testing.T) {
	m := startedModule(t)

	resp, err := m.handleVerifyToken(context.Background(), VerifyTokenRequest{Token: "garbage"}, nil)
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Empty(t, resp.UserID)
	assert.Equal(t, msgInvalidToken, resp.Error)
}
