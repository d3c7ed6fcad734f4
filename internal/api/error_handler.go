package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devilal/catalog-api/internal/core/domain"
)

// errorEnvelope mirrors the success envelope: {"success": false, ...}. The
// Error field carries internal detail and is populated only outside
// production.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the consistent JSON envelope on every failure.
func NewHTTPErrorHandler(log zerolog.Logger, env string) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, internal := resolveError(err, log, c)

		detail := ""
		if internal != "" && env != "production" {
			detail = internal
		}

		_ = c.JSON(code, errorEnvelope{Success: false, Message: msg, Error: detail})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (code int, msg, internal string) {
	// Echo's own errors (bind failures, 404 from router, middleware rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), ""
	}

	// Malformed input → 400, naming the offending field.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Error(), ""
	}

	// Login under the wrong account type → 401, naming the actual role.
	var rm *domain.RoleMismatchError
	if errors.As(err, &rm) {
		return http.StatusUnauthorized, rm.Error(), ""
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials", ""
	case errors.Is(err, domain.ErrAccountDeactivated):
		return http.StatusUnauthorized, "account is deactivated; please contact support", ""
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, "token expired", ""
	case errors.Is(err, domain.ErrTokenMalformed), errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "not authorized", ""
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden", ""
	case errors.Is(err, domain.ErrDuplicateEmail):
		// Surfaced as 400 rather than 409 to match the storefront contract.
		return http.StatusBadRequest, "user already exists with this email", ""
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found", ""
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "product not found", ""
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error", err.Error()
}
