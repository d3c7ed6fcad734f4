package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/devilal/catalog-api/internal/api/metrics"
	"github.com/devilal/catalog-api/internal/core/domain"
	"github.com/devilal/catalog-api/internal/core/ports"
)

const minPasswordLength = 6

// dummyHash is compared against when no user matches the email, so a
// nonexistent account and a wrong password take the same time and produce
// the same outward error.
var dummyHash = func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("no-such-user"), bcrypt.DefaultCost)
	return h
}()

// AuthService implements registration, login and profile management.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenService
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log}
}

// Register creates a user, hashes the password and issues a token. An empty
// role defaults to "user"; anything outside the closed role set is rejected.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	if input.Name == "" {
		return nil, domain.NewValidationError("name", "name is required")
	}
	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, domain.NewValidationError("email", "email is required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, domain.NewValidationError("password", "password must be at least 6 characters")
	}

	role := domain.RoleUser
	if input.Role != "" {
		parsed, ok := domain.ParseRole(input.Role)
		if !ok {
			return nil, domain.NewValidationError("userType", `invalid user type; must be either "user" or "admin"`)
		}
		role = parsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		LastLogin:    now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(created.ID, created.Role)
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(created.Role)).Inc()
	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")

	return &ports.AuthResult{User: created, Token: token}, nil
}

// Login authenticates email+password under the claimed account type. A
// nonexistent email and a wrong password are indistinguishable to the
// caller; a correct password under the wrong claimed role names the actual
// role and never issues a token.
func (s *AuthService) Login(ctx context.Context, input ports.LoginInput) (*ports.AuthResult, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, domain.NewValidationError("email", "please provide email and password")
	}
	claimed, ok := domain.ParseRole(input.ClaimedRole)
	if !ok {
		return nil, domain.NewValidationError("userType", "please select a valid account type (user or admin)")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(input.Password))
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		metrics.LoginsTotal.WithLabelValues("deactivated").Inc()
		return nil, domain.ErrAccountDeactivated
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if user.Role != claimed {
		metrics.LoginsTotal.WithLabelValues("role_mismatch").Inc()
		return nil, &domain.RoleMismatchError{Actual: user.Role, Claimed: claimed}
	}

	now := time.Now().UTC()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")
	} else {
		user.LastLogin = now
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")

	return &ports.AuthResult{User: user, Token: token}, nil
}

// CurrentUser returns the public projection of the identified user.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// UpdateProfile applies only the supplied fields; absent fields are never
// overwritten with empty values.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, fields ports.ProfileUpdate) (*domain.User, error) {
	if fields.Name != nil && *fields.Name == "" {
		return nil, domain.NewValidationError("name", "name cannot be empty")
	}
	if fields.Email != nil {
		email := normalizeEmail(*fields.Email)
		if email == "" {
			return nil, domain.NewValidationError("email", "email cannot be empty")
		}
		fields.Email = &email
	}

	return s.users.UpdateProfile(ctx, userID, fields)
}

// ChangePassword re-hashes and stores the new password after verifying the
// current one. Previously issued tokens stay valid until natural expiry;
// there is no revocation store.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if currentPassword == "" {
		return domain.NewValidationError("currentPassword", "current password is required")
	}
	if len(newPassword) < minPasswordLength {
		return domain.NewValidationError("newPassword", "password must be at least 6 characters")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	s.log.Info().Str("user_id", userID).Msg("password changed")
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
