package handler

import (
	"time"

	"github.com/devilal/catalog-api/internal/core/domain"
)

// --- Request types ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"`
	// UserType is an alias for Role kept for compatibility with the
	// storefront client, which sends either key.
	UserType string `json:"userType"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	UserType string `json:"userType" validate:"required"`
}

type updateProfileRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email" validate:"omitempty,email"`
	Avatar *string `json:"avatar"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=6"`
}

// --- Response types ---

// userResponse is the public user projection: never the password hash, and
// only the fields the storefront shows.
type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	LastLogin time.Time `json:"lastLogin"`
}

type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token,omitempty"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Avatar:    u.Avatar,
		LastLogin: u.LastLogin,
	}
}
