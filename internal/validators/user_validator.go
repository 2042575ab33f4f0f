package validators

import (
	"strings"

	"rentit/internal/utils"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UpdateProfileRequest is a partial update. Nil fields are left alone.
type UpdateProfileRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=100"`
	Bio          *string `json:"bio" validate:"omitempty,max=500"`
	ProfileImage *string `json:"profile_image" validate:"omitempty,max=2048"`
}

func ValidateRegister(req *RegisterRequest, minPasswordLength int) error {
	req.Name = SanitizeInput(req.Name)
	req.Email = utils.NormalizeEmail(req.Email)

	if !IsValidEmail(req.Email) {
		return utils.NewBadRequestError("Please enter a valid email")
	}
	if minPasswordLength <= 0 {
		minPasswordLength = utils.PasswordMinLength
	}
	if len(req.Password) < minPasswordLength || len(req.Password) > utils.PasswordMaxLength {
		return utils.NewBadRequestError("Please enter a strong password")
	}

	return ValidateStruct(req).AsAppError()
}

func ValidateLogin(req *LoginRequest) error {
	req.Email = utils.NormalizeEmail(req.Email)
	if req.Email == "" || req.Password == "" {
		return utils.NewBadRequestError("Missing required fields")
	}
	return nil
}

func ValidateUpdateProfile(req *UpdateProfileRequest) error {
	if req.Name != nil {
		name := SanitizeInput(*req.Name)
		req.Name = &name
	}
	if req.Bio != nil {
		bio := strings.TrimSpace(*req.Bio)
		req.Bio = &bio
	}
	return ValidateStruct(req).AsAppError()
}
