// Package config manages environment-backed configuration.
//
// It reads variables with the GROUPOMANIA_ prefix (optionally from a .env
// file via godotenv autoload), maps them into structured Go types with
// koanf, and validates required values so the application fails fast on bad
// or missing config.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Loads a .env file into the process environment before any variable is
	// read. No explicit call needed.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config is the root configuration object.
//
// Env var names map to fields through koanf's "." delimiter, e.g.
// GROUPOMANIA_SERVER.PORT -> server.port -> Config.Server.Port.
type Config struct {
	Primary  Primary        `koanf:"primary" validate:"required"`
	Server   ServerConfig   `koanf:"server" validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Auth     AuthConfig     `koanf:"auth"`
	Uploads  UploadsConfig  `koanf:"uploads"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env      string `koanf:"env" validate:"required,oneof=development staging production"`
	LogLevel string `koanf:"log_level"`
}

// ServerConfig groups settings for the HTTP server runtime. Timeouts are
// in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
}

// DatabaseConfig contains MongoDB connection parameters.
type DatabaseConfig struct {
	URI  string `koanf:"uri" validate:"required"`
	Name string `koanf:"name" validate:"required"`
}

// AuthConfig stores token signing settings.
//
// SecretKey is deliberately not required here: a process with no signing
// secret still starts and reports the problem through normal request
// handling (an Internal error on the first token operation) rather than
// crashing at startup.
type AuthConfig struct {
	SecretKey   string `koanf:"secret_key"`
	TokenExpiry string `koanf:"token_expiry"`
}

// UploadsConfig controls where uploaded files land on disk.
type UploadsConfig struct {
	BasePath string `koanf:"base_path"`
}

// Defaults applied when the corresponding env vars are absent.
const (
	defaultTokenExpiry = "24h"
	defaultUploadsPath = "private/uploads"
	defaultLogLevel    = "info"
)

// Load reads, unmarshals, and validates the configuration.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider("GROUPOMANIA_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "GROUPOMANIA_"))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Auth.TokenExpiry == "" {
		cfg.Auth.TokenExpiry = defaultTokenExpiry
	}
	if cfg.Uploads.BasePath == "" {
		cfg.Uploads.BasePath = defaultUploadsPath
	}
	if cfg.Primary.LogLevel == "" {
		cfg.Primary.LogLevel = defaultLogLevel
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}
