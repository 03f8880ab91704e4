package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/mvillard/groupomania/internal/errs"
	"github.com/mvillard/groupomania/internal/server"
	"github.com/mvillard/groupomania/internal/storage"
	"github.com/mvillard/groupomania/internal/validation"
)

// FileHandler serves stored images from the private upload directories.
// These routes authenticate via the URL token variant so browsers can load
// them from <img> tags.
type FileHandler struct {
	Handler
}

func NewFileHandler(s *server.Server) *FileHandler {
	return &FileHandler{
		Handler: NewHandler(s),
	}
}

// FileRequest binds the :filename path parameter. The allow-list check
// happens at resolution time in the storage layer.
type FileRequest struct {
	Filename string `param:"filename" json:"-" validate:"required"`
}

func (r *FileRequest) Validate() error {
	return validation.Struct(r)
}

// Avatar streams a user profile picture.
func (h *FileHandler) Avatar(c echo.Context, req *FileRequest) (string, error) {
	return h.resolve(storage.UsersDir, req.Filename, "Avatar not found.")
}

// PostFile streams a post attachment.
func (h *FileHandler) PostFile(c echo.Context, req *FileRequest) (string, error) {
	return h.resolve(storage.PostsDir, req.Filename, "Post file not found.")
}

func (h *FileHandler) resolve(dir, name, notFound string) (string, error) {
	path, ok := h.server.Storage.Resolve(dir, name)
	if !ok {
		return "", errs.NewBadRequest("Invalid filename format.")
	}
	if !h.server.Storage.Exists(dir, name) {
		return "", errs.NewNotFound(notFound)
	}
	return path, nil
}
