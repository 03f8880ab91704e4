// Package server defines the core Server struct that composes the app's
// main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger
//   - MongoDB client
//   - upload storage
//   - token service
//   - http.Server
//
// It provides constructors and start/shutdown logic to run the
// application cleanly. Dependencies are constructed once here and
// injected everywhere else; there are no package-level singletons.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mvillard/groupomania/internal/config"
	"github.com/mvillard/groupomania/internal/database"
	"github.com/mvillard/groupomania/internal/storage"
	"github.com/mvillard/groupomania/internal/token"
	"github.com/rs/zerolog"
)

// Server is the application container that holds shared resources. It is
// not the HTTP server itself; it carries one internally.
type Server struct {
	Config  *config.Config
	Logger  *zerolog.Logger
	DB      *database.Database
	Storage *storage.Store
	Token   *token.Service

	httpServer *http.Server
}

// New constructs a Server and initializes core dependencies: the MongoDB
// connection (with ping), the upload directories, and the token service.
// It does not start the HTTP server; that is SetupHTTPServer + Start.
func New(cfg *config.Config, logger *zerolog.Logger) (*Server, error) {
	db, err := database.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	store, err := storage.New(cfg.Uploads.BasePath, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize upload storage: %w", err)
	}

	// A missing signing secret is not fatal here: the process starts and
	// the first request needing a token reports the misconfiguration. An
	// invalid expiry string, however, is rejected before any token exists.
	tokens, err := token.New(cfg.Auth.SecretKey, cfg.Auth.TokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("initialize token service: %w", err)
	}
	if cfg.Auth.SecretKey == "" {
		logger.Warn().Msg("auth secret key is not configured; token operations will fail")
	}

	return &Server{
		Config:  cfg,
		Logger:  logger,
		DB:      db,
		Storage: store,
		Token:   tokens,
	}, nil
}

// SetupHTTPServer configures the internal net/http server with the given
// handler (the router) and the configured timeouts.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. It blocks until the server stops.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server, then closes the database
// connection.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}
	if err := s.DB.Close(ctx); err != nil {
		return fmt.Errorf("close database connection: %w", err)
	}
	return nil
}
