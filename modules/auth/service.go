package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/task-manager-api/domain/apperr"
	domain "github.com/example/task-manager-api/domain/user"
	"github.com/google/uuid"
)

const (
	msgCredentialsRequired = "email and password are required"
	msgPasswordTooLong     = "password must be at most 72 bytes"
	msgEmailTaken          = "email is already registered"
	msgInvalidCredentials  = "invalid email or password"
	msgInvalidToken        = "invalid token"
	msgExpiredToken        = "token expired"
)

// AuthService handles authentication business logic.
type AuthService struct {
	repo   *UserRepository
	hasher *PasswordHasher
	tokens *TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *UserRepository, hasher *PasswordHasher, tokens *TokenManager) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, apperr.Validation(msgCredentialsRequired)
	}
	if len(password) > MaxPasswordBytes {
		return nil, apperr.Validation(msgPasswordTooLong)
	}

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, apperr.Conflict(msgEmailTaken)
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// A concurrent signup can slip past EmailExists; the unique index catches it.
		if errors.Is(err, ErrUserExists) {
			return nil, apperr.Conflict(msgEmailTaken)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login checks the credentials and mints a session token for the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", apperr.Validation(msgCredentialsRequired)
	}
	if len(password) > MaxPasswordBytes {
		return "", apperr.Authentication(msgInvalidCredentials)
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", apperr.Authentication(msgInvalidCredentials)
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", apperr.Authentication(msgInvalidCredentials)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// VerifyToken resolves a session token to the user id it was issued for.
// It needs only the token and the signing secret.
func (s *AuthService) VerifyToken(_ context.Context, token string) (string, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		if errors.Is(err, ErrExpiredToken) {
			return "", apperr.Authentication(msgExpiredToken)
		}
		return "", apperr.Authentication(msgInvalidToken)
	}
	return claims.UserID, nil
}

// TokenTTLSeconds returns how long minted tokens stay valid.
func (s *AuthService) TokenTTLSeconds() int64 {
	return s.tokens.TTLSeconds()
}
