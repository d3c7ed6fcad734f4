package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/devilal/catalog-api/internal/core/domain"
	"github.com/devilal/catalog-api/internal/core/ports"
)

// defaultTokenTTL matches the storefront's 30-day sessions.
const defaultTokenTTL = 30 * 24 * time.Hour

// TokenService issues and verifies HS256-signed identity tokens. It is a
// pure function of its inputs, the secret and the clock; nothing is
// persisted server-side.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed token binding the user id and role.
func (s *TokenService) Issue(userID string, role domain.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"uid":  userID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify parses and validates a token, returning the embedded claims
// unchanged. Only claims covered by the signature are trusted.
func (s *TokenService) Verify(token string) (*ports.TokenClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenMalformed
	}
	if !tkn.Valid {
		return nil, domain.ErrTokenMalformed
	}

	uid, _ := claims["uid"].(string)
	roleStr, _ := claims["role"].(string)
	role, ok := domain.ParseRole(roleStr)
	if uid == "" || !ok {
		return nil, domain.ErrTokenMalformed
	}

	return &ports.TokenClaims{UserID: uid, Role: role}, nil
}
