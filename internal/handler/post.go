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

// PostHandler serves the feed endpoints, including the comment operations
// nested under a post.
type PostHandler struct {
	Handler
	posts    *service.PostService
	comments *service.CommentService
}

func NewPostHandler(s *server.Server, posts *service.PostService, comments *service.CommentService) *PostHandler {
	return &PostHandler{
		Handler:  NewHandler(s),
		posts:    posts,
		comments: comments,
	}
}

// PostIDRequest binds and checks the :id path parameter.
type PostIDRequest struct {
	ID string `param:"id" json:"-" validate:"required,objectid"`
}

func (r *PostIDRequest) Validate() error {
	return validation.Struct(r)
}

func (r *PostIDRequest) objectID() primitive.ObjectID {
	id, _ := primitive.ObjectIDFromHex(r.ID)
	return id
}

// CreatePostRequest is the multipart post creation payload: content plus an
// optional image.
type CreatePostRequest struct {
	Content string               `json:"content" form:"content" validate:"required,min=10,max=5000"`
	File    *validation.FileMeta `json:"-" form:"-"`
}

func (r *CreatePostRequest) SetFile(meta *validation.FileMeta) { r.File = meta }

func (r *CreatePostRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	if r.File != nil {
		return validateImage(r.File)
	}
	return nil
}

// Create stores a new post.
func (h *PostHandler) Create(c echo.Context, req *CreatePostRequest) (*model.Post, error) {
	file := ""
	if req.File != nil {
		file = req.File.StoredName
	}
	return h.posts.Create(c.Request().Context(), currentUserID(c), req.Content, file)
}

// ListRequest has no inputs; the feed is the same for every user.
type ListRequest struct{}

func (r *ListRequest) Validate() error { return nil }

// List returns every post, newest first.
func (h *PostHandler) List(c echo.Context, req *ListRequest) ([]model.Post, error) {
	return h.posts.List(c.Request().Context())
}

// Get returns one post.
func (h *PostHandler) Get(c echo.Context, req *PostIDRequest) (*model.Post, error) {
	return h.posts.Get(c.Request().Context(), req.objectID())
}

// UpdatePostRequest is the multipart post update: optional new content plus
// an optional replacement image.
type UpdatePostRequest struct {
	ID      string               `param:"id" json:"-" validate:"required,objectid"`
	Content string               `json:"content" form:"content" validate:"omitempty,min=10,max=5000"`
	File    *validation.FileMeta `json:"-" form:"-"`
}

func (r *UpdatePostRequest) SetFile(meta *validation.FileMeta) { r.File = meta }

func (r *UpdatePostRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	if r.File != nil {
		return validateImage(r.File)
	}
	return nil
}

// Update applies author-only post changes.
func (h *PostHandler) Update(c echo.Context, req *UpdatePostRequest) (*model.Post, error) {
	id, _ := primitive.ObjectIDFromHex(req.ID)

	input := service.UpdateInput{Content: req.Content}
	if req.File != nil {
		input.File = req.File.StoredName
	}

	return h.posts.Update(c.Request().Context(), id, currentUserID(c), input)
}

// Delete removes a post, its attachment, and its comments.
func (h *PostHandler) Delete(c echo.Context, req *PostIDRequest) error {
	return h.posts.Delete(c.Request().Context(), req.objectID(), currentUserID(c), middleware.IsAdmin(c))
}

// likeResponse reports the resulting state of a like toggle.
type likeResponse struct {
	Post  *model.Post `json:"post"`
	Liked bool        `json:"liked"`
}

// ToggleLike flips the caller's like on a post.
func (h *PostHandler) ToggleLike(c echo.Context, req *PostIDRequest) (*likeResponse, error) {
	result, err := h.posts.ToggleLike(c.Request().Context(), req.objectID(), currentUserID(c))
	if err != nil {
		return nil, err
	}
	return &likeResponse{Post: result.Post, Liked: result.Liked}, nil
}

// CreateCommentRequest carries the target post id and the comment body.
// Unknown body keys are rejected.
type CreateCommentRequest struct {
	validation.StrictJSON `json:"-"`

	ID      string `param:"id" json:"-" validate:"required,objectid"`
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

func (r *CreateCommentRequest) Validate() error {
	return validation.Struct(r)
}

// CreateComment stores a comment under a post.
func (h *PostHandler) CreateComment(c echo.Context, req *CreateCommentRequest) (*model.Comment, error) {
	postID, _ := primitive.ObjectIDFromHex(req.ID)
	return h.comments.Create(c.Request().Context(), postID, currentUserID(c), req.Content)
}

// ListComments returns a post's comments, newest first.
func (h *PostHandler) ListComments(c echo.Context, req *PostIDRequest) ([]model.Comment, error) {
	return h.comments.ListForPost(c.Request().Context(), req.objectID())
}
