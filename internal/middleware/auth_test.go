package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/onnise/beyond-ads-scraper/internal/auth"
)

func TestJWTMiddleware(t *testing.T) {
	e := echo.New()
	manager := auth.NewJWTManager("secret", 0)

	token, err := manager.GenerateToken("ops@example.com", "ops@example.com", auth.RoleAdmin)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	tests := map[string]struct {
		header     string
		required   bool
		expectCode int
		expectSub  string
	}{
		"missing header": {
			required:   true,
			expectCode: http.StatusUnauthorized,
		},
		"missing header optional": {
			expectCode: http.StatusOK,
		},
		"invalid header": {
			header:     "Basic token",
			expectCode: http.StatusUnauthorized,
		},
		"invalid token": {
			header:     "Bearer invalid",
			expectCode: http.StatusUnauthorized,
		},
		"success": {
			header:     "Bearer " + token,
			required:   true,
			expectCode: http.StatusOK,
			expectSub:  "ops@example.com",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			executed := false
			err := JWT(manager, tt.required)(func(c echo.Context) error {
				executed = true
				if SubjectFromContext(c) != tt.expectSub {
					t.Fatalf("expected subject %q, got %q", tt.expectSub, SubjectFromContext(c))
				}
				return c.NoContent(http.StatusOK)
			})(c)

			if err != nil {
				t.Fatalf("middleware returned error: %v", err)
			}
			if rec.Code != tt.expectCode {
				t.Fatalf("expected status %d, got %d", tt.expectCode, rec.Code)
			}
			if executed != (tt.expectCode == http.StatusOK) {
				t.Fatalf("unexpected handler execution: %v", executed)
			}
		})
	}
}
