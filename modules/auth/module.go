package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/task-manager-api/config"
	"github.com/example/task-manager-api/domain/apperr"
	"github.com/example/task-manager-api/modules/database"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// AuthModule provides signup, login and token verification.
type AuthModule struct {
	database *database.PluginModule
	service  *AuthService
	config   config.Config
	logger   types.Logger
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*AuthModule)(nil)
	_ mono.UsePluginModule       = (*AuthModule)(nil)
	_ mono.ServiceProviderModule = (*AuthModule)(nil)
	_ mono.HealthCheckableModule = (*AuthModule)(nil)
)

// NewModule creates a new AuthModule.
func NewModule(cfg config.Config, logger types.Logger) *AuthModule {
	return &AuthModule{
		config: cfg,
		logger: logger,
	}
}

// Name returns the module name.
func (m *AuthModule) Name() string {
	return "auth"
}

// SetPlugin receives the database plugin from the framework.
func (m *AuthModule) SetPlugin(alias string, plugin mono.PluginModule) {
	if alias != "db" {
		return
	}
	db, ok := plugin.(*database.PluginModule)
	if !ok {
		m.logger.Error("Invalid plugin type for db",
			"alias", alias,
			"expected", "*database.PluginModule")
		return
	}
	m.database = db
}

// Start migrates the users table and wires the service.
func (m *AuthModule) Start(_ context.Context) error {
	if m.database == nil || m.database.DB() == nil {
		return fmt.Errorf("required plugin 'db' not registered")
	}

	repo := NewUserRepository(m.database.DB())
	if err := repo.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate users table: %w", err)
	}

	tokens := NewTokenManager(TokenConfig{
		SecretKey: m.config.JWTSecret,
		TTL:       m.config.TokenTTL,
		Issuer:    m.config.TokenIssuer,
	})
	m.service = NewAuthService(repo, NewPasswordHasher(m.config.BcryptCost), tokens)

	m.logger.Info("Auth module started", "token_ttl", m.config.TokenTTL.String())
	return nil
}

// Stop shuts down the module. The database handle belongs to the plugin.
func (m *AuthModule) Stop(_ context.Context) error {
	m.logger.Info("Auth module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *AuthModule) Health(ctx context.Context) mono.HealthStatus {
	if m.service == nil || m.database == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "auth service not initialized",
		}
	}
	return m.database.Health(ctx)
}

// RegisterServices registers request-reply services in the service container.
func (m *AuthModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container,
		"register",
		json.Unmarshal,
		json.Marshal,
		m.handleRegister,
	); err != nil {
		return fmt.Errorf("failed to register register service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		"login",
		json.Unmarshal,
		json.Marshal,
		m.handleLogin,
	); err != nil {
		return fmt.Errorf("failed to register login service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		"verify-token",
		json.Unmarshal,
		json.Marshal,
		m.handleVerifyToken,
	); err != nil {
		return fmt.Errorf("failed to register verify-token service: %w", err)
	}

	m.logger.Info("Registered services", "services", "register, login, verify-token")
	return nil
}

func (m *AuthModule) handleRegister(ctx context.Context, req RegisterRequest, _ *mono.Msg) (RegisterResponse, error) {
	user, err := m.service.Register(ctx, req.Email, req.Password)
	if err != nil {
		return RegisterResponse{}, m.reportError("register", err)
	}

	m.logger.Info("User registered", "user_id", user.ID)
	return RegisterResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (m *AuthModule) handleLogin(ctx context.Context, req LoginRequest, _ *mono.Msg) (LoginResponse, error) {
	token, err := m.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		return LoginResponse{}, m.reportError("login", err)
	}

	return LoginResponse{
		Token:     token,
		ExpiresIn: m.service.TokenTTLSeconds(),
	}, nil
}

// handleVerifyToken answers with Valid=false instead of an error so that
// callers can tell a rejected token from a transport failure.
func (m *AuthModule) handleVerifyToken(ctx context.Context, req VerifyTokenRequest, _ *mono.Msg) (VerifyTokenResponse, error) {
	userID, err := m.service.VerifyToken(ctx, req.Token)
	if err != nil {
		return VerifyTokenResponse{
			Valid: false,
			Error: apperr.From(err).Message,
		}, nil
	}

	return VerifyTokenResponse{
		Valid:  true,
		UserID: userID,
	}, nil
}

// reportError logs unclassified failures and returns err unchanged.
func (m *AuthModule) reportError(op string, err error) error {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		m.logger.Error("Auth operation failed", "operation", op, "error", err)
		return apperr.Internal()
	}
	return err
}
