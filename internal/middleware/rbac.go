package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole enforces that the authenticated request carries the expected
// role. With enforce false the check is skipped, matching an open dashboard.
func RequireRole(role string, enforce bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !enforce {
				return next(c)
			}
			value, ok := c.Get(ContextKeyUserRole).(string)
			if !ok || value == "" {
				return c.JSON(http.StatusForbidden, errorPayload("missing role"))
			}
			if value != role {
				return c.JSON(http.StatusForbidden, errorPayload("insufficient permissions"))
			}
			return next(c)
		}
	}
}
