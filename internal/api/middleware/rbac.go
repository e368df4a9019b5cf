package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maintrack/maintenance-system/internal/core/domain"
)

// RequireAdmin restricts a route to ADMIN principals. Must run after Auth.
func RequireAdmin() echo.MiddlewareFunc {
	return RequireRole(domain.RoleAdmin)
}

// RequireRole rejects principals whose role is not in the allowed set. A
// request reaching this gate without a principal failed the Auth precondition
// and gets 401, not 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := Principal(c)
			if p.ID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if _, ok := allowed[p.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}
