package service

import (
	"github.com/mvillard/groupomania/internal/repository"
	"github.com/mvillard/groupomania/internal/server"
)

// Services is a container for all service instances.
type Services struct {
	Auth     *AuthService
	Users    *UserService
	Posts    *PostService
	Comments *CommentService
}

// NewServices wires services to their repositories and to the shared token
// and storage dependencies on the app Server.
func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Auth:     NewAuthService(repos.Users, s.Token),
		Users:    NewUserService(repos.Users, repos.Posts, repos.Comments, s.Storage),
		Posts:    NewPostService(repos.Posts, repos.Comments, repos.Users, s.Storage),
		Comments: NewCommentService(repos.Comments, repos.Posts, repos.Users),
	}
}
