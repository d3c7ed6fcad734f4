package ports

import "github.com/devilal/catalog-api/internal/core/domain"

// TokenClaims are the identity claims embedded in a signed token. Only
// claims cryptographically bound to the signature are ever returned.
type TokenClaims struct {
	UserID string
	Role   domain.Role
}

// TokenService issues and verifies stateless identity tokens. Verification
// is computation-only; no revocation store exists, so a token stays valid
// until it expires or the signing secret changes.
type TokenService interface {
	Issue(userID string, role domain.Role) (string, error)

	// Verify returns domain.ErrTokenExpired for tokens past their expiry and
	// domain.ErrTokenMalformed for anything else that fails validation.
	Verify(token string) (*TokenClaims, error)
}
