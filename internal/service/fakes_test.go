package service

// In-memory repository fakes. They mimic the behaviors the services rely
// on: mongo.ErrNoDocuments for misses, a duplicate key error for the unique
// email index, and set semantics for like and comment membership.

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mvillard/groupomania/internal/model"
)

// placeUpload drops a file into an upload area so deletion paths can be
// observed.
func placeUpload(t *testing.T, base, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(base, dir, name), []byte("img"), 0o644))
}

func duplicateKeyErr() error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}},
	}
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*model.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return duplicateKeyErr()
		}
	}

	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt

	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]model.User, error) {
	var out []model.User
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	user, ok := r.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}

	for key, value := range fields {
		switch key {
		case "name":
			user.Name = value.(string)
		case "familyName":
			user.FamilyName = value.(string)
		case "profilePicture":
			user.ProfilePicture = value.(string)
		case "password":
			user.Password = value.(string)
		}
	}
	user.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.users[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.users, id)
	return nil
}

type fakePostRepo struct {
	posts map[primitive.ObjectID]*model.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[primitive.ObjectID]*model.Post{}}
}

func (r *fakePostRepo) Create(_ context.Context, post *model.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now().UTC()
	post.UpdatedAt = post.CreatedAt
	if post.Likes == nil {
		post.Likes = []primitive.ObjectID{}
	}
	if post.Comments == nil {
		post.Comments = []primitive.ObjectID{}
	}

	clone := *post
	r.posts[post.ID] = &clone
	return nil
}

func (r *fakePostRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	clone := *post
	return &clone, nil
}

func (r *fakePostRepo) FindAll(_ context.Context) ([]model.Post, error) {
	out := make([]model.Post, 0, len(r.posts))
	for _, post := range r.posts {
		out = append(out, *post)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakePostRepo) FindByAuthor(_ context.Context, authorID primitive.ObjectID) ([]model.Post, error) {
	var out []model.Post
	for _, post := range r.posts {
		if post.AuthorID == authorID {
			out = append(out, *post)
		}
	}
	return out, nil
}

func (r *fakePostRepo) Update(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	post, ok := r.posts[id]
	if !ok {
		return mongo.ErrNoDocuments
	}

	for key, value := range fields {
		switch key {
		case "content":
			post.Content = value.(string)
		case "file":
			post.File = value.(string)
		}
	}
	post.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *fakePostRepo) AddLike(_ context.Context, postID, userID primitive.ObjectID) error {
	post, ok := r.posts[postID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	for _, id := range post.Likes {
		if id == userID {
			return nil
		}
	}
	post.Likes = append(post.Likes, userID)
	return nil
}

func (r *fakePostRepo) RemoveLike(_ context.Context, postID, userID primitive.ObjectID) error {
	post, ok := r.posts[postID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	kept := post.Likes[:0]
	for _, id := range post.Likes {
		if id != userID {
			kept = append(kept, id)
		}
	}
	post.Likes = kept
	return nil
}

func (r *fakePostRepo) PushComment(_ context.Context, postID, commentID primitive.ObjectID) error {
	post, ok := r.posts[postID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	for _, id := range post.Comments {
		if id == commentID {
			return nil
		}
	}
	post.Comments = append(post.Comments, commentID)
	return nil
}

func (r *fakePostRepo) PullComment(_ context.Context, postID, commentID primitive.ObjectID) error {
	post, ok := r.posts[postID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	kept := post.Comments[:0]
	for _, id := range post.Comments {
		if id != commentID {
			kept = append(kept, id)
		}
	}
	post.Comments = kept
	return nil
}

func (r *fakePostRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.posts[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) DeleteByAuthor(_ context.Context, authorID primitive.ObjectID) error {
	for id, post := range r.posts {
		if post.AuthorID == authorID {
			delete(r.posts, id)
		}
	}
	return nil
}

type fakeCommentRepo struct {
	comments map[primitive.ObjectID]*model.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[primitive.ObjectID]*model.Comment{}}
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *model.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now().UTC()
	comment.UpdatedAt = comment.CreatedAt
	if comment.Likes == nil {
		comment.Likes = []primitive.ObjectID{}
	}

	clone := *comment
	r.comments[comment.ID] = &clone
	return nil
}

func (r *fakeCommentRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	clone := *comment
	return &clone, nil
}

func (r *fakeCommentRepo) FindByPost(_ context.Context, postID primitive.ObjectID) ([]model.Comment, error) {
	var out []model.Comment
	for _, comment := range r.comments {
		if comment.PostID == postID {
			out = append(out, *comment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeCommentRepo) FindByAuthor(_ context.Context, authorID primitive.ObjectID) ([]model.Comment, error) {
	var out []model.Comment
	for _, comment := range r.comments {
		if comment.AuthorID == authorID {
			out = append(out, *comment)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) Update(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	comment, ok := r.comments[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if content, ok := fields["content"]; ok {
		comment.Content = content.(string)
	}
	comment.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.comments[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.comments, id)
	return nil
}

func (r *fakeCommentRepo) DeleteByPost(_ context.Context, postID primitive.ObjectID) error {
	for id, comment := range r.comments {
		if comment.PostID == postID {
			delete(r.comments, id)
		}
	}
	return nil
}

func (r *fakeCommentRepo) DeleteByPosts(_ context.Context, postIDs []primitive.ObjectID) error {
	for _, postID := range postIDs {
		for id, comment := range r.comments {
			if comment.PostID == postID {
				delete(r.comments, id)
			}
		}
	}
	return nil
}
