package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/mvillard/groupomania/internal/model"
	"github.com/mvillard/groupomania/internal/server"
	"github.com/mvillard/groupomania/internal/service"
	"github.com/mvillard/groupomania/internal/validation"
)

// UserHandler serves the authenticated account endpoints.
type UserHandler struct {
	Handler
	users *service.UserService
}

func NewUserHandler(s *server.Server, users *service.UserService) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
	}
}

// ProfileRequest has no inputs beyond the authenticated identity.
type ProfileRequest struct{}

func (r *ProfileRequest) Validate() error { return nil }

// Profile returns the current user's account.
func (h *UserHandler) Profile(c echo.Context, req *ProfileRequest) (*model.User, error) {
	return h.users.Profile(c.Request().Context(), currentUserID(c))
}

// UpdateProfileRequest is the multipart profile update: optional names plus
// an optional avatar image.
type UpdateProfileRequest struct {
	Name       string               `json:"name" form:"name" validate:"omitempty,min=2,max=50,humanname"`
	FamilyName string               `json:"familyName" form:"familyName" validate:"omitempty,min=2,max=50,humanname"`
	File       *validation.FileMeta `json:"-" form:"-"`
}

func (r *UpdateProfileRequest) SetFile(meta *validation.FileMeta) { r.File = meta }

func (r *UpdateProfileRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	if r.File != nil {
		return validateImage(r.File)
	}
	return nil
}

// UpdateProfile applies profile changes; a request changing nothing answers
// 400.
func (h *UserHandler) UpdateProfile(c echo.Context, req *UpdateProfileRequest) (*model.User, error) {
	input := service.UpdateProfileInput{
		Name:       req.Name,
		FamilyName: req.FamilyName,
	}
	if req.File != nil {
		input.Avatar = req.File.StoredName
	}

	return h.users.UpdateProfile(c.Request().Context(), currentUserID(c), input)
}

// UpdatePasswordRequest carries the current and replacement passwords.
// Unknown body keys are rejected.
type UpdatePasswordRequest struct {
	validation.StrictJSON `json:"-"`

	Password    string `json:"password" validate:"required,min=8,max=50"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=50,password"`
}

func (r *UpdatePasswordRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	if r.Password == r.NewPassword {
		return validation.CustomValidationErrors{{
			Field:   "newPassword",
			Message: "must be different from the current password",
		}}
	}
	return nil
}

// UpdatePassword replaces the credential after re-verifying the current one.
func (h *UserHandler) UpdatePassword(c echo.Context, req *UpdatePasswordRequest) error {
	return h.users.UpdatePassword(c.Request().Context(), currentUserID(c), req.Password, req.NewPassword)
}

// DeleteAccountRequest requires the password as a deletion confirmation.
type DeleteAccountRequest struct {
	validation.StrictJSON `json:"-"`

	Password string `json:"password" validate:"required,min=8,max=50"`
}

func (r *DeleteAccountRequest) Validate() error {
	return validation.Struct(r)
}

// DeleteAccount removes the account and everything it owns.
func (h *UserHandler) DeleteAccount(c echo.Context, req *DeleteAccountRequest) error {
	return h.users.DeleteAccount(c.Request().Context(), currentUserID(c), req.Password)
}
