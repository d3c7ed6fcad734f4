package domain

import "time"

// Role is the closed set of account types. Values outside this set never
// reach storage.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole converts a raw string into a Role. The second return value
// reports whether the input was a valid role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// User models an account in the credential store. PasswordHash is a bcrypt
// hash and is never serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Avatar       string    `json:"avatar,omitempty"`
	IsActive     bool      `json:"isActive"`
	LastLogin    time.Time `json:"lastLogin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Principal identifies the authenticated caller of a request. Requests that
// pass through OptionalAuth without a valid token carry no Principal at all,
// so downstream code must always check for its presence.
type Principal struct {
	UserID string
	Role   Role
}

// IsAdmin reports whether the principal may perform catalog mutations.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
