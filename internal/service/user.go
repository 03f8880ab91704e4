package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mvillard/groupomania/internal/errs"
	"github.com/mvillard/groupomania/internal/model"
	"github.com/mvillard/groupomania/internal/password"
	"github.com/mvillard/groupomania/internal/repository"
	"github.com/mvillard/groupomania/internal/storage"
)

// UserService handles profile reads and the account mutations: profile
// update, password change, and account deletion with its file and document
// cascade.
type UserService struct {
	users    repository.UserRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
	store    *storage.Store
}

func NewUserService(
	users repository.UserRepository,
	posts repository.PostRepository,
	comments repository.CommentRepository,
	store *storage.Store,
) *UserService {
	return &UserService{
		users:    users,
		posts:    posts,
		comments: comments,
		store:    store,
	}
}

// Profile returns the account of the authenticated user.
func (svc *UserService) Profile(ctx context.Context, userID primitive.ObjectID) (*model.User, error) {
	return svc.users.FindByID(ctx, userID)
}

// UpdateProfileInput carries the optional profile changes. Avatar is the
// stored filename of a freshly uploaded picture, empty when none was sent.
type UpdateProfileInput struct {
	Name       string
	FamilyName string
	Avatar     string
}

// UpdateProfile applies the requested changes. A request that would change
// nothing is rejected. When a new avatar replaces a custom one, the old file
// is removed from disk after the document update succeeds; the stock default
// avatar is never deleted.
func (svc *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, input UpdateProfileInput) (*model.User, error) {
	user, err := svc.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := bson.M{}
	if input.Name != "" && input.Name != user.Name {
		fields["name"] = input.Name
	}
	if input.FamilyName != "" && input.FamilyName != user.FamilyName {
		fields["familyName"] = input.FamilyName
	}
	if input.Avatar != "" {
		fields["profilePicture"] = input.Avatar
	}

	if len(fields) == 0 {
		return nil, errs.NewBadRequest("No changes detected.")
	}

	if err := svc.users.Update(ctx, userID, fields); err != nil {
		return nil, err
	}

	if input.Avatar != "" && user.ProfilePicture != model.DefaultAvatar {
		svc.store.DeleteIfExists(storage.UsersDir, user.ProfilePicture)
	}

	return svc.users.FindByID(ctx, userID)
}

// UpdatePassword replaces the credential after re-verifying the current one.
func (svc *UserService) UpdatePassword(ctx context.Context, userID primitive.ObjectID, current, next string) error {
	user, err := svc.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !password.Verify(user.Password, current) {
		return errs.NewUnauthorized("Incorrect password.")
	}
	if current == next {
		return errs.NewBadRequest("New password must be different from the current password.")
	}

	digest, err := password.Hash(next)
	if err != nil {
		return errs.NewInternal()
	}

	return svc.users.Update(ctx, userID, bson.M{"password": digest})
}

// DeleteAccount removes the account after re-verifying the password, along
// with everything it owns: the custom avatar, the user's posts with their
// attachments and comment threads, and the user's comments on other posts.
func (svc *UserService) DeleteAccount(ctx context.Context, userID primitive.ObjectID, plain string) error {
	user, err := svc.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !password.Verify(user.Password, plain) {
		return errs.NewUnauthorized("Incorrect password.")
	}

	posts, err := svc.posts.FindByAuthor(ctx, userID)
	if err != nil {
		return err
	}

	postIDs := make([]primitive.ObjectID, 0, len(posts))
	for _, post := range posts {
		postIDs = append(postIDs, post.ID)
		if post.File != "" {
			svc.store.DeleteIfExists(storage.PostsDir, post.File)
		}
	}

	if err := svc.comments.DeleteByPosts(ctx, postIDs); err != nil {
		return err
	}
	if err := svc.posts.DeleteByAuthor(ctx, userID); err != nil {
		return err
	}

	// Comments the user left on other people's posts: detach them from
	// their posts, then remove them.
	orphaned, err := svc.comments.FindByAuthor(ctx, userID)
	if err != nil {
		return err
	}
	for _, comment := range orphaned {
		// Best effort: the post may already be gone.
		_ = svc.posts.PullComment(ctx, comment.PostID, comment.ID)
		if err := svc.comments.Delete(ctx, comment.ID); err != nil {
			return err
		}
	}

	if user.ProfilePicture != model.DefaultAvatar {
		svc.store.DeleteIfExists(storage.UsersDir, user.ProfilePicture)
	}

	return svc.users.Delete(ctx, userID)
}
