package ports

import (
	"context"

	"github.com/devilal/catalog-api/internal/core/domain"
)

// RegisterInput carries a registration request. Role is the raw string from
// the transport layer; an empty value defaults to "user".
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// LoginInput carries login credentials plus the account type the caller
// claims to be. A login only succeeds under the account's true role.
type LoginInput struct {
	Email       string
	Password    string
	ClaimedRole string
}

// AuthResult is returned on successful registration or login.
type AuthResult struct {
	User  *domain.User
	Token string
}

// AuthService orchestrates registration, login and profile management
// against the credential store and token service.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, fields ProfileUpdate) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}
