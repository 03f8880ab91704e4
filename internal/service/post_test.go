package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mvillard/groupomania/internal/errs"
	"github.com/mvillard/groupomania/internal/model"
	"github.com/mvillard/groupomania/internal/storage"
)

type postFixture struct {
	svc      *PostService
	users    *fakeUserRepo
	posts    *fakePostRepo
	comments *fakeCommentRepo
	store    *storage.Store
	base     string
	author   *model.User
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()

	base := t.TempDir()
	nop := zerolog.Nop()
	store, err := storage.New(base, &nop)
	require.NoError(t, err)

	users := newFakeUserRepo()
	posts := newFakePostRepo()
	comments := newFakeCommentRepo()

	author := &model.User{
		Name:           "Camille",
		FamilyName:     "Durand",
		Email:          "camille.durand@example.com",
		ProfilePicture: model.DefaultAvatar,
	}
	require.NoError(t, users.Create(context.Background(), author))

	return &postFixture{
		svc:      NewPostService(posts, comments, users, store),
		users:    users,
		posts:    posts,
		comments: comments,
		store:    store,
		base:     base,
		author:   author,
	}
}

func TestPostCreate(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.svc.Create(context.Background(), f.author.ID, "Bonjour tout le monde, premier post!", "")
	require.NoError(t, err)

	require.False(t, post.ID.IsZero())
	require.NotNil(t, post.Likes)
	require.Empty(t, post.Likes)
	require.NotNil(t, post.Comments)
	require.Empty(t, post.Comments)

	require.NotNil(t, post.Author)
	require.Equal(t, f.author.ID, post.Author.ID)
	require.Equal(t, "Camille", post.Author.Name)
}

func TestPostListPopulatesAuthors(t *testing.T) {
	f := newPostFixture(t)

	_, err := f.svc.Create(context.Background(), f.author.ID, "Un premier message assez long.", "")
	require.NoError(t, err)
	_, err = f.svc.Create(context.Background(), f.author.ID, "Un deuxieme message assez long.", "")
	require.NoError(t, err)

	posts, err := f.svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	for _, post := range posts {
		require.NotNil(t, post.Author)
		require.Equal(t, f.author.ID, post.Author.ID)
	}
}

func TestPostListKeepsOrphanedPosts(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.svc.Create(context.Background(), f.author.ID, "Message qui va rester sans auteur.", "")
	require.NoError(t, err)
	require.NoError(t, f.users.Delete(context.Background(), f.author.ID))

	posts, err := f.svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, post.ID, posts[0].ID)
	require.Nil(t, posts[0].Author)
}

func TestPostUpdate(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.svc.Create(context.Background(), f.author.ID, "Contenu initial du message.", "old.png")
	require.NoError(t, err)
	placeUpload(t, f.base, storage.PostsDir, "old.png")

	t.Run("not the author", func(t *testing.T) {
		_, err := f.svc.Update(context.Background(), post.ID, primitive.NewObjectID(), UpdateInput{Content: "Tentative de modification."})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		require.Equal(t, http.StatusForbidden, httpErr.Status)
		require.Equal(t, "You are not authorized to update this post.", httpErr.Message)
	})

	t.Run("nothing to change", func(t *testing.T) {
		_, err := f.svc.Update(context.Background(), post.ID, f.author.ID, UpdateInput{})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		require.Equal(t, http.StatusBadRequest, httpErr.Status)
		require.Equal(t, "No changes detected.", httpErr.Message)
	})

	t.Run("content only", func(t *testing.T) {
		updated, err := f.svc.Update(context.Background(), post.ID, f.author.ID, UpdateInput{Content: "Contenu corrige du message."})
		require.NoError(t, err)
		require.Equal(t, "Contenu corrige du message.", updated.Content)
		require.Equal(t, "old.png", updated.File)
		require.True(t, f.store.Exists(storage.PostsDir, "old.png"))
	})

	t.Run("new attachment replaces the old file", func(t *testing.T) {
		placeUpload(t, f.base, storage.PostsDir, "new.png")

		updated, err := f.svc.Update(context.Background(), post.ID, f.author.ID, UpdateInput{File: "new.png"})
		require.NoError(t, err)
		require.Equal(t, "new.png", updated.File)
		require.False(t, f.store.Exists(storage.PostsDir, "old.png"))
		require.True(t, f.store.Exists(storage.PostsDir, "new.png"))
	})
}

func TestPostDelete(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.svc.Create(context.Background(), f.author.ID, "Message voue a disparaitre.", "gone.png")
	require.NoError(t, err)
	placeUpload(t, f.base, storage.PostsDir, "gone.png")

	commentSvc := NewCommentService(f.comments, f.posts, f.users)
	comment, err := commentSvc.Create(context.Background(), post.ID, f.author.ID, "Un commentaire.")
	require.NoError(t, err)

	t.Run("not the author", func(t *testing.T) {
		err := f.svc.Delete(context.Background(), post.ID, primitive.NewObjectID(), false)

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		require.Equal(t, http.StatusForbidden, httpErr.Status)
		require.Equal(t, "You are not authorized to delete this post.", httpErr.Message)
	})

	t.Run("admin override", func(t *testing.T) {
		require.NoError(t, f.svc.Delete(context.Background(), post.ID, primitive.NewObjectID(), true))

		_, err := f.svc.Get(context.Background(), post.ID)
		require.Error(t, err)

		// Attachment and comment thread go with the post.
		require.False(t, f.store.Exists(storage.PostsDir, "gone.png"))
		_, err = f.comments.FindByID(context.Background(), comment.ID)
		require.Error(t, err)
	})
}

func TestToggleLike(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.svc.Create(context.Background(), f.author.ID, "Un message que tout le monde aime.", "")
	require.NoError(t, err)

	liker := primitive.NewObjectID()

	result, err := f.svc.ToggleLike(context.Background(), post.ID, liker)
	require.NoError(t, err)
	require.True(t, result.Liked)
	require.Equal(t, []primitive.ObjectID{liker}, result.Post.Likes)

	// Toggling again restores the original state.
	result, err = f.svc.ToggleLike(context.Background(), post.ID, liker)
	require.NoError(t, err)
	require.False(t, result.Liked)
	require.Empty(t, result.Post.Likes)
}
