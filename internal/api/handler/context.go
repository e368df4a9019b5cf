package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maintrack/maintenance-system/internal/api/middleware"
	"github.com/maintrack/maintenance-system/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware. An
// empty id means the middleware did not run on this route; reject with 401
// rather than proceed anonymously.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p := middleware.Principal(c)
	if p.ID == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return p, nil
}
