package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/devilal/catalog-api/internal/core/domain"
	"github.com/devilal/catalog-api/internal/core/ports"
)

// principalKey is the context key under which the authenticated Principal is
// stored. Handlers read it through PrincipalFrom.
const principalKey = "principal"

// PrincipalFrom returns the Principal attached by Auth or OptionalAuth. The
// second return value is false for anonymous requests.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}

// Auth requires a valid bearer token. It verifies the token and attaches the
// resolved Principal to the request context; absent or invalid tokens fail
// with 401 before any further processing.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c)
			if err != nil {
				return err
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(principalKey, domain.Principal{UserID: claims.UserID, Role: claims.Role})
			return next(c)
		}
	}
}

// OptionalAuth attaches a Principal when a valid bearer token is present but
// never fails the request: anonymous and invalid-token callers proceed with
// no identity attached.
func OptionalAuth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c)
			if err == nil {
				if claims, verr := tokens.Verify(raw); verr == nil {
					c.Set(principalKey, domain.Principal{UserID: claims.UserID, Role: claims.Role})
				}
			}
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}
