package handler

import (
	"github.com/mvillard/groupomania/internal/server"
	"github.com/mvillard/groupomania/internal/service"
)

// Handlers is a container that groups all HTTP handlers, so router setup
// passes one object around instead of many.
type Handlers struct {
	Health   *HealthHandler
	Auth     *AuthHandler
	Users    *UserHandler
	Posts    *PostHandler
	Comments *CommentHandler
	Files    *FileHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		Auth:     NewAuthHandler(s, services.Auth),
		Users:    NewUserHandler(s, services.Users),
		Posts:    NewPostHandler(s, services.Posts, services.Comments),
		Comments: NewCommentHandler(s, services.Comments),
		Files:    NewFileHandler(s),
	}
}
