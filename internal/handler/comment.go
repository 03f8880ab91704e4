package handler

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mvillard/groupomania/internal/middleware"
	"github.com/mvillard/groupomania/internal/model"
	"github.com/mvillard/groupomania/internal/server"
	"github.com/mvillard/groupomania/internal/service"
	"github.com/mvillard/groupomania/internal/validation"
)

// CommentHandler serves the standalone comment endpoints.
type CommentHandler struct {
	Handler
	comments *service.CommentService
}

func NewCommentHandler(s *server.Server, comments *service.CommentService) *CommentHandler {
	return &CommentHandler{
		Handler:  NewHandler(s),
		comments: comments,
	}
}

// CommentIDRequest binds and checks the :id path parameter.
type CommentIDRequest struct {
	ID string `param:"id" json:"-" validate:"required,objectid"`
}

func (r *CommentIDRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CommentIDRequest) objectID() primitive.ObjectID {
	id, _ := primitive.ObjectIDFromHex(r.ID)
	return id
}

// Get returns one comment.
func (h *CommentHandler) Get(c echo.Context, req *CommentIDRequest) (*model.Comment, error) {
	return h.comments.Get(c.Request().Context(), req.objectID())
}

// UpdateCommentRequest carries the comment id and its replacement content.
// Unknown body keys are rejected.
type UpdateCommentRequest struct {
	validation.StrictJSON `json:"-"`

	ID      string `param:"id" json:"-" validate:"required,objectid"`
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

func (r *UpdateCommentRequest) Validate() error {
	return validation.Struct(r)
}

// Update replaces a comment's content. Author only.
func (h *CommentHandler) Update(c echo.Context, req *UpdateCommentRequest) (*model.Comment, error) {
	id, _ := primitive.ObjectIDFromHex(req.ID)
	return h.comments.Update(c.Request().Context(), id, currentUserID(c), req.Content)
}

// Delete removes a comment and detaches it from its post.
func (h *CommentHandler) Delete(c echo.Context, req *CommentIDRequest) error {
	return h.comments.Delete(c.Request().Context(), req.objectID(), currentUserID(c), middleware.IsAdmin(c))
}
