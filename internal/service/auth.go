package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mvillard/groupomania/internal/errs"
	"github.com/mvillard/groupomania/internal/model"
	"github.com/mvillard/groupomania/internal/password"
	"github.com/mvillard/groupomania/internal/repository"
	"github.com/mvillard/groupomania/internal/token"
)

// AuthService handles registration and login.
type AuthService struct {
	users  repository.UserRepository
	tokens *token.Service
}

func NewAuthService(users repository.UserRepository, tokens *token.Service) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

// RegisterInput carries the validated signup fields.
type RegisterInput struct {
	Name       string
	FamilyName string
	Email      string
	Password   string
}

// AuthResult is what both registration and login hand back to the handler.
type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Register creates an account and signs a token for it.
//
// Email uniqueness is enforced by the store's unique index; a duplicate
// insert surfaces as a driver duplicate key error and is left for the global
// error handler to classify as a conflict.
func (svc *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	digest, err := password.Hash(input.Password)
	if err != nil {
		return nil, errs.NewInternal()
	}

	user := &model.User{
		Name:           input.Name,
		FamilyName:     input.FamilyName,
		Email:          input.Email,
		Password:       digest,
		ProfilePicture: model.DefaultAvatar,
	}

	if err := svc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	signed, err := svc.tokens.Issue(token.Claims{UserID: user.ID.Hex(), IsAdmin: user.IsAdmin})
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: signed, User: user}, nil
}

// Login verifies credentials and signs a token.
//
// Unknown email and wrong password produce the same generic response so the
// endpoint cannot be used to probe which addresses hold accounts.
func (svc *AuthService) Login(ctx context.Context, email, plain string) (*AuthResult, error) {
	user, err := svc.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NewUnauthorized("Invalid email or password.")
		}
		return nil, err
	}

	if !password.Verify(user.Password, plain) {
		return nil, errs.NewUnauthorized("Invalid email or password.")
	}

	signed, err := svc.tokens.Issue(token.Claims{UserID: user.ID.Hex(), IsAdmin: user.IsAdmin})
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: signed, User: user}, nil
}
