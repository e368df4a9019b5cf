package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/maintrack/maintenance-system/internal/api/metrics"
	"github.com/maintrack/maintenance-system/internal/auth"
	"github.com/maintrack/maintenance-system/internal/core/domain"
)

// principalKey is the echo context key carrying the verified principal.
const principalKey = "principal"

// Auth verifies the bearer token and injects the principal into context.
// Every failure mode answers the same uniform 401 so the response does not
// leak which check tripped; the distinction only reaches the metrics.
func Auth(codec *auth.Codec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return reject(c, "missing_token")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return reject(c, "malformed")
			}

			principal, err := codec.Verify(parts[1])
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrTokenExpired):
					return reject(c, "expired")
				case errors.Is(err, auth.ErrTokenSignature):
					return reject(c, "signature")
				default:
					return reject(c, "malformed")
				}
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

func reject(c echo.Context, reason string) error {
	metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
	return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
}

// Principal returns the verified principal set by Auth. The zero value means
// the middleware did not run.
func Principal(c echo.Context) domain.Principal {
	p, _ := c.Get(principalKey).(domain.Principal)
	return p
}
