// Package repository handles all interactions with the database.
//
// It contains the MongoDB queries and methods to fetch, persist, or update
// documents, abstracting driver logic away from the service layer. Services
// depend on the interfaces below so tests can substitute in-memory fakes.
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mvillard/groupomania/internal/model"
)

// UserRepository persists account documents.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.User, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// PostRepository persists feed entries and their like/comment membership.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	FindAll(ctx context.Context) ([]model.Post, error)
	FindByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]model.Post, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	AddLike(ctx context.Context, postID, userID primitive.ObjectID) error
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error
	PushComment(ctx context.Context, postID, commentID primitive.ObjectID) error
	PullComment(ctx context.Context, postID, commentID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByAuthor(ctx context.Context, authorID primitive.ObjectID) error
}

// CommentRepository persists comments, each belonging to exactly one post.
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Comment, error)
	FindByPost(ctx context.Context, postID primitive.ObjectID) ([]model.Comment, error)
	FindByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]model.Comment, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByPost(ctx context.Context, postID primitive.ObjectID) error
	DeleteByPosts(ctx context.Context, postIDs []primitive.ObjectID) error
}
