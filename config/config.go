// Package config loads the process configuration once at startup.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultDatabaseURL is used when DATABASE_URL is not set.
	DefaultDatabaseURL = "task_manager.db"
	// DefaultPort is the HTTP listening port when PORT is not set.
	DefaultPort = 3000
	// TokenTTL is the validity window of a session token.
	TokenTTL = time.Hour
	// BcryptCost is the work factor used when hashing passwords.
	BcryptCost = 10
	// TokenIssuer is written to the iss claim of every session token.
	TokenIssuer = "task-manager-api"
	// ShutdownTimeout bounds graceful shutdown of the application.
	ShutdownTimeout = 30 * time.Second
)

// ErrMissingSecret is returned when JWT_SECRET is empty.
var ErrMissingSecret = errors.New("JWT_SECRET must be set")

// Config is the immutable process configuration.
type Config struct {
	DatabaseURL string
	JWTSecret   string
	Port        int
	TokenTTL    time.Duration
	TokenIssuer string
	BcryptCost  int
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads an optional .env file from the working directory and then
// builds the configuration from the environment. Variables already present
// in the environment take precedence over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds the configuration using the given variable lookup.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Config{
		DatabaseURL: DefaultDatabaseURL,
		Port:        DefaultPort,
		TokenTTL:    TokenTTL,
		TokenIssuer: TokenIssuer,
		BcryptCost:  BcryptCost,
	}

	if v, ok := lookup("DATABASE_URL"); ok && v != "" {
		cfg.DatabaseURL = v
	}

	secret, _ := lookup("JWT_SECRET")
	if secret == "" {
		return Config{}, ErrMissingSecret
	}
	cfg.JWTSecret = secret

	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			return Config{}, fmt.Errorf("invalid PORT %q: must be an integer between 1 and 65535", v)
		}
		cfg.Port = port
	}

	return cfg, nil
}
