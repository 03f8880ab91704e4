// Command api runs the Groupomania HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mvillard/groupomania/internal/config"
	"github.com/mvillard/groupomania/internal/handler"
	"github.com/mvillard/groupomania/internal/logger"
	"github.com/mvillard/groupomania/internal/middleware"
	"github.com/mvillard/groupomania/internal/repository"
	"github.com/mvillard/groupomania/internal/router"
	"github.com/mvillard/groupomania/internal/server"
	"github.com/mvillard/groupomania/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("production", "info")
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(cfg.Primary.Env, cfg.Primary.LogLevel)

	srv, err := server.New(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(srv)
	services := service.NewServices(srv, repos)
	handlers := handler.NewHandlers(srv, services)
	middlewares := middleware.NewMiddlewares(srv)

	e := router.New(srv, middlewares, handlers)
	srv.SetupHTTPServer(e)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	log.Info().Msg("server stopped")
}
