package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/example/task-manager-api/domain/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(
		NewUserRepository(setupTestDB(t)),
		NewPasswordHasher(bcrypt.MinCost),
		newTestTokenManager(),
	)
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	user, err := svc.Register(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	token, err := svc.Login(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)

	userID, err := svc.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"missing email", "", "s3cret"},
		{"missing password", "alice@example.com", ""},
		{"both missing", "", ""},
		{"password over 72 bytes", "alice@example.com", strings.Repeat("a", 73)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t)
			_, err := svc.Register(context.Background(), tt.email, tt.password)
			assert.True(t, apperr.Is(err, apperr.KindValidation), "got %v", err)
		})
	}
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Register(ctx, "alice@example.com", "first")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice@example.com", "second")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	// The first password still works.
	_, err = svc.Login(ctx, "alice@example.com", "first")
	assert.NoError(t, err)
}

func TestAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Register(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)

	_, unknownErr := svc.Login(ctx, "nobody@example.com", "s3cret")
	_, wrongErr := svc.Login(ctx, "alice@example.com", "wrong")

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.True(t, apperr.Is(unknownErr, apperr.KindAuthentication))
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestAuthService_LoginRejectsBytesPastLimit(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	password := strings.Repeat("a", MaxPasswordBytes)
	_, err := svc.Register(ctx, "alice@example.com", password)
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice@example.com", password+"WRONG-SUFFIX")
	assert.True(t, apperr.Is(err, apperr.KindAuthentication), "got %v", err)

	token, err := svc.Login(ctx, "alice@example.com", password)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestAuthService_LoginValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(context.Background(), "", "")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestAuthService_VerifyTokenFailures(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.VerifyToken(ctx, "")
	assert.True(t, apperr.Is(err, apperr.KindAuthentication))

	_, err = svc.VerifyToken(ctx, "not-a-token")
	assert.True(t, apperr.Is(err, apperr.KindAuthentication))

	expired := newTestTokenManager()
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := expired.Generate("user-123")
	require.NoError(t, err)

	_, err = svc.VerifyToken(ctx, token)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindAuthentication))
	assert.Contains(t, err.Error(), "expired")
}
