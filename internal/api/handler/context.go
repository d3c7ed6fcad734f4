package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devilal/catalog-api/internal/api/middleware"
	"github.com/devilal/catalog-api/internal/core/domain"
)

// ctxPrincipal extracts the principal attached by the Auth middleware and
// fast-fails with 401 when it is absent. Only handlers behind Auth should
// call this; optional-auth handlers use middleware.PrincipalFrom directly.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return p, nil
}
