package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	authpkg "github.com/onnise/beyond-ads-scraper/internal/auth"
)

// JWT validates bearer tokens and stores operator metadata in the request
// context. When required is false, requests without an Authorization header
// pass through anonymously; a malformed or invalid token is still rejected.
func JWT(manager *authpkg.JWTManager, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				if !required {
					return next(c)
				}
				return c.JSON(http.StatusUnauthorized, errorPayload("missing authorization header"))
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, errorPayload("invalid authorization header"))
			}

			claims, err := manager.ParseToken(strings.TrimSpace(parts[1]))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorPayload("invalid token"))
			}

			c.Set(ContextKeySubject, claims.Subject)
			c.Set(ContextKeyUserEmail, claims.Email)
			c.Set(ContextKeyUserRole, claims.Role)

			return next(c)
		}
	}
}

// SubjectFromContext returns the authenticated subject, or "" for anonymous requests.
func SubjectFromContext(c echo.Context) string {
	if val, ok := c.Get(ContextKeySubject).(string); ok {
		return val
	}
	return ""
}
