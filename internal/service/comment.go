package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mvillard/groupomania/internal/errs"
	"github.com/mvillard/groupomania/internal/model"
	"github.com/mvillard/groupomania/internal/repository"
)

// CommentService handles comment threads under posts.
type CommentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
	users    repository.UserRepository
}

func NewCommentService(
	comments repository.CommentRepository,
	posts repository.PostRepository,
	users repository.UserRepository,
) *CommentService {
	return &CommentService{
		comments: comments,
		posts:    posts,
		users:    users,
	}
}

// Create stores a comment under a post and records its id on the post
// document.
func (svc *CommentService) Create(ctx context.Context, postID, authorID primitive.ObjectID, content string) (*model.Comment, error) {
	if _, err := svc.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		Content:  content,
		AuthorID: authorID,
		PostID:   postID,
	}

	if err := svc.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	if err := svc.posts.PushComment(ctx, postID, comment.ID); err != nil {
		return nil, err
	}

	return svc.populateOne(ctx, comment)
}

// ListForPost returns a post's comments, newest first, authors populated.
func (svc *CommentService) ListForPost(ctx context.Context, postID primitive.ObjectID) ([]model.Comment, error) {
	if _, err := svc.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := svc.comments.FindByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := svc.populate(ctx, comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// Get returns one comment with its author populated.
func (svc *CommentService) Get(ctx context.Context, commentID primitive.ObjectID) (*model.Comment, error) {
	comment, err := svc.comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return svc.populateOne(ctx, comment)
}

// Update replaces a comment's content. Author only.
func (svc *CommentService) Update(ctx context.Context, commentID, userID primitive.ObjectID, content string) (*model.Comment, error) {
	comment, err := svc.comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if comment.AuthorID != userID {
		return nil, errs.NewForbidden("You are not authorized to update this comment.")
	}

	if err := svc.comments.Update(ctx, commentID, bson.M{"content": content}); err != nil {
		return nil, err
	}

	return svc.Get(ctx, commentID)
}

// Delete removes a comment and detaches it from its post. The author or an
// admin may delete.
func (svc *CommentService) Delete(ctx context.Context, commentID, userID primitive.ObjectID, isAdmin bool) error {
	comment, err := svc.comments.FindByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.AuthorID != userID && !isAdmin {
		return errs.NewForbidden("You are not authorized to delete this comment.")
	}

	// Best effort: the parent post may already be gone.
	_ = svc.posts.PullComment(ctx, comment.PostID, commentID)

	return svc.comments.Delete(ctx, commentID)
}

func (svc *CommentService) populateOne(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	comments := []model.Comment{*comment}
	if err := svc.populate(ctx, comments); err != nil {
		return nil, err
	}
	return &comments[0], nil
}

func (svc *CommentService) populate(ctx context.Context, comments []model.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	seen := map[primitive.ObjectID]struct{}{}
	ids := make([]primitive.ObjectID, 0, len(comments))
	for _, comment := range comments {
		if _, ok := seen[comment.AuthorID]; !ok {
			seen[comment.AuthorID] = struct{}{}
			ids = append(ids, comment.AuthorID)
		}
	}

	users, err := svc.users.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}

	authors := make(map[primitive.ObjectID]model.Author, len(users))
	for i := range users {
		authors[users[i].ID] = model.AuthorOf(&users[i])
	}

	for i := range comments {
		if author, ok := authors[comments[i].AuthorID]; ok {
			comments[i].Author = &author
		}
	}
	return nil
}
