package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestTokenManager() *TokenManager {
	return NewTokenManager(TokenConfig{
		SecretKey: "test-secret-key",
		TTL:       time.Hour,
		Issuer:    "test-issuer",
	})
}

func TestTokenManager_GenerateAndValidate(t *testing.T) {
	manager := newTestTokenManager()

	token, err := manager.Generate("user-123")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if token == "" {
		t.Fatal("Generate() returned empty token")
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("claims.UserID = %v, want %v", claims.UserID, "user-123")
	}
	if claims.Subject != "user-123" {
		t.Errorf("claims.Subject = %v, want %v", claims.Subject, "user-123")
	}
	if claims.Issuer != "test-issuer" {
		t.Errorf("claims.Issuer = %v, want %v", claims.Issuer, "test-issuer")
	}

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if lifetime != time.Hour {
		t.Errorf("token lifetime = %v, want %v", lifetime, time.Hour)
	}
}

func TestTokenManager_Expiry(t *testing.T) {
	manager := newTestTokenManager()
	issued := time.Now()
	manager.now = func() time.Time { return issued }

	token, err := manager.Generate("user-123")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	manager.now = func() time.Time { return issued.Add(59 * time.Minute) }
	if _, err := manager.Validate(token); err != nil {
		t.Errorf("Validate() before expiry error = %v", err)
	}

	manager.now = func() time.Time { return issued.Add(61 * time.Minute) }
	if _, err := manager.Validate(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Validate() after expiry error = %v, want %v", err, ErrExpiredToken)
	}
}

func TestTokenManager_Rejects(t *testing.T) {
	manager := newTestTokenManager()

	otherKey := NewTokenManager(TokenConfig{SecretKey: "other-secret", TTL: time.Hour, Issuer: "test-issuer"})
	foreignToken, err := otherKey.Generate("user-123")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	otherIssuer := NewTokenManager(TokenConfig{SecretKey: "test-secret-key", TTL: time.Hour, Issuer: "someone-else"})
	wrongIssuerToken, err := otherIssuer.Generate("user-123")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	now := time.Now()
	noneClaims := TokenClaims{
		UserID: "user-123",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "test-issuer",
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, noneClaims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString(none) error = %v", err)
	}

	hs512Token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, noneClaims).SignedString([]byte("test-secret-key"))
	if err != nil {
		t.Fatalf("SignedString(HS512) error = %v", err)
	}

	noUserClaims := noneClaims
	noUserClaims.UserID = ""
	noUserToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, noUserClaims).SignedString([]byte("test-secret-key"))
	if err != nil {
		t.Fatalf("SignedString(no user) error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"malformed token", "not.a.jwt"},
		{"garbage", "garbage"},
		{"signed with another secret", foreignToken},
		{"wrong issuer", wrongIssuerToken},
		{"alg none", noneToken},
		{"other HMAC algorithm", hs512Token},
		{"missing user id", noUserToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := manager.Validate(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Validate() error = %v, want %v", err, ErrInvalidToken)
			}
		})
	}
}

func TestTokenManager_TTLSeconds(t *testing.T) {
	if got := newTestTokenManager().TTLSeconds(); got != 3600 {
		t.Errorf("TTLSeconds() = %d, want 3600", got)
	}
}
