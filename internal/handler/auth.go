package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/mvillard/groupomania/internal/server"
	"github.com/mvillard/groupomania/internal/service"
	"github.com/mvillard/groupomania/internal/validation"
)

// AuthHandler serves the public registration and login endpoints.
type AuthHandler struct {
	Handler
	auth *service.AuthService
}

func NewAuthHandler(s *server.Server, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auth:    auth,
	}
}

// RegisterRequest is the signup payload. Unknown body keys are rejected.
type RegisterRequest struct {
	validation.StrictJSON `json:"-"`

	Name       string `json:"name" validate:"required,min=2,max=50,humanname"`
	FamilyName string `json:"familyName" validate:"required,min=2,max=50,humanname"`
	Email      string `json:"email" validate:"required,max=100,email"`
	Password   string `json:"password" validate:"required,min=8,max=50,password"`
}

func (r *RegisterRequest) Validate() error {
	return validation.Struct(r)
}

// Register creates an account. A duplicate email answers 409.
func (h *AuthHandler) Register(c echo.Context, req *RegisterRequest) (*service.AuthResult, error) {
	return h.auth.Register(c.Request().Context(), service.RegisterInput{
		Name:       req.Name,
		FamilyName: req.FamilyName,
		Email:      req.Email,
		Password:   req.Password,
	})
}

// LoginRequest is the login payload. Unknown body keys are rejected.
type LoginRequest struct {
	validation.StrictJSON `json:"-"`

	Email    string `json:"email" validate:"required,max=100,email"`
	Password string `json:"password" validate:"required,min=8,max=50"`
}

func (r *LoginRequest) Validate() error {
	return validation.Struct(r)
}

// Login verifies credentials and returns a fresh token.
func (h *AuthHandler) Login(c echo.Context, req *LoginRequest) (*service.AuthResult, error) {
	return h.auth.Login(c.Request().Context(), req.Email, req.Password)
}
