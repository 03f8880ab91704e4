package repository

import (
	"github.com/mvillard/groupomania/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Users    UserRepository
	Posts    PostRepository
	Comments CommentRepository
}

// NewRepositories constructs the repository container from the shared
// database handle on the app Server.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(s.DB.Users()),
		Posts:    NewPostRepository(s.DB.Posts()),
		Comments: NewCommentRepository(s.DB.Comments()),
	}
}
