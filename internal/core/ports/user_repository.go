package ports

import (
	"context"
	"time"

	"github.com/devilal/catalog-api/internal/core/domain"
)

// ProfileUpdate carries the profile fields a user may change. Nil fields are
// left untouched by the repository.
type ProfileUpdate struct {
	Name   *string
	Email  *string
	Avatar *string
}

// UserRepository defines persistence for the credential store.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrDuplicateEmail when the
	// email is already taken (enforced by a unique index).
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// FindByEmail retrieves a user including the password hash.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByID retrieves a user including the password hash.
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// UpdateProfile applies only the non-nil fields and returns the updated user.
	UpdateProfile(ctx context.Context, id string, fields ProfileUpdate) (*domain.User, error)

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id string, passwordHash string) error

	// TouchLastLogin records a successful authentication. Last writer wins.
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}
