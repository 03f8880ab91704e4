package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mvillard/groupomania/internal/errs"
	"github.com/mvillard/groupomania/internal/model"
	"github.com/mvillard/groupomania/internal/repository"
	"github.com/mvillard/groupomania/internal/storage"
)

// PostService handles the feed: creation, reads with populated authors,
// author-only mutation, and the like toggle.
type PostService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	users    repository.UserRepository
	store    *storage.Store
}

func NewPostService(
	posts repository.PostRepository,
	comments repository.CommentRepository,
	users repository.UserRepository,
	store *storage.Store,
) *PostService {
	return &PostService{
		posts:    posts,
		comments: comments,
		users:    users,
		store:    store,
	}
}

// Create stores a new post. File is the stored attachment filename, empty
// when the post has none.
func (svc *PostService) Create(ctx context.Context, authorID primitive.ObjectID, content, file string) (*model.Post, error) {
	post := &model.Post{
		Content:  content,
		AuthorID: authorID,
		File:     file,
	}

	if err := svc.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	return svc.populateOne(ctx, post)
}

// List returns every post, newest first, with authors populated in one
// batched lookup.
func (svc *PostService) List(ctx context.Context) ([]model.Post, error) {
	posts, err := svc.posts.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := svc.populate(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Get returns one post with its author populated.
func (svc *PostService) Get(ctx context.Context, postID primitive.ObjectID) (*model.Post, error) {
	post, err := svc.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return svc.populateOne(ctx, post)
}

// UpdateInput carries the optional post changes. File is a freshly stored
// attachment name, empty when the attachment is unchanged.
type UpdateInput struct {
	Content string
	File    string
}

// Update applies author-only changes. A new attachment replaces the old one
// on disk once the document update succeeds.
func (svc *PostService) Update(ctx context.Context, postID, userID primitive.ObjectID, input UpdateInput) (*model.Post, error) {
	post, err := svc.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != userID {
		return nil, errs.NewForbidden("You are not authorized to update this post.")
	}

	fields := bson.M{}
	if input.Content != "" {
		fields["content"] = input.Content
	}
	if input.File != "" {
		fields["file"] = input.File
	}
	if len(fields) == 0 {
		return nil, errs.NewBadRequest("No changes detected.")
	}

	if err := svc.posts.Update(ctx, postID, fields); err != nil {
		return nil, err
	}

	if input.File != "" && post.File != "" {
		svc.store.DeleteIfExists(storage.PostsDir, post.File)
	}

	return svc.Get(ctx, postID)
}

// Delete removes a post, its attachment, and its comment thread. Only the
// author or an admin may delete.
func (svc *PostService) Delete(ctx context.Context, postID, userID primitive.ObjectID, isAdmin bool) error {
	post, err := svc.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.AuthorID != userID && !isAdmin {
		return errs.NewForbidden("You are not authorized to delete this post.")
	}

	if post.File != "" {
		svc.store.DeleteIfExists(storage.PostsDir, post.File)
	}

	if err := svc.comments.DeleteByPost(ctx, postID); err != nil {
		return err
	}

	return svc.posts.Delete(ctx, postID)
}

// LikeResult reports the direction a toggle took.
type LikeResult struct {
	Post  *model.Post
	Liked bool
}

// ToggleLike flips the caller's like membership on a post. Toggling twice
// restores the original state; the underlying set operations are no-ops when
// membership already matches, so concurrent duplicates cannot double-count.
func (svc *PostService) ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (*LikeResult, error) {
	post, err := svc.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	liked := true
	for _, id := range post.Likes {
		if id == userID {
			liked = false
			break
		}
	}

	if liked {
		err = svc.posts.AddLike(ctx, postID, userID)
	} else {
		err = svc.posts.RemoveLike(ctx, postID, userID)
	}
	if err != nil {
		return nil, err
	}

	updated, err := svc.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &LikeResult{Post: updated, Liked: liked}, nil
}

func (svc *PostService) populateOne(ctx context.Context, post *model.Post) (*model.Post, error) {
	posts := []model.Post{*post}
	if err := svc.populate(ctx, posts); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

// populate resolves post authors from the users collection. Posts whose
// author account no longer exists keep a nil Author.
func (svc *PostService) populate(ctx context.Context, posts []model.Post) error {
	if len(posts) == 0 {
		return nil
	}

	seen := map[primitive.ObjectID]struct{}{}
	ids := make([]primitive.ObjectID, 0, len(posts))
	for _, post := range posts {
		if _, ok := seen[post.AuthorID]; !ok {
			seen[post.AuthorID] = struct{}{}
			ids = append(ids, post.AuthorID)
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

	for i := range posts {
		if author, ok := authors[posts[i].AuthorID]; ok {
			posts[i].Author = &author
		}
	}
	return nil
}
