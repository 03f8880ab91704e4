package middleware

import (
	"github.com/mvillard/groupomania/internal/server"
)

// Middlewares acts as the middleware container.
type Middlewares struct {
	Global *GlobalMiddlewares
	Auth   *AuthMiddleware
	Upload *UploadMiddleware
}

func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global: NewGlobalMiddlewares(s),
		Auth:   NewAuthMiddleware(s),
		Upload: NewUploadMiddleware(s),
	}
}
