package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/onnise/beyond-ads-scraper/internal/auth"
)

func TestAuthService_Login(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("super-secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("unexpected bcrypt error: %v", err)
	}
	account := OperatorAccount{Email: " Ops@Example.com ", PasswordHash: string(hashed)}

	tests := map[string]struct {
		email       string
		password    string
		account     OperatorAccount
		expectError error
	}{
		"empty credentials": {
			account:     account,
			expectError: ErrInvalidRequest,
		},
		"unknown email": {
			email:       "john@example.com",
			password:    "super-secret",
			account:     account,
			expectError: ErrInvalidCredentials,
		},
		"password mismatch": {
			email:       "ops@example.com",
			password:    "wrong",
			account:     account,
			expectError: ErrInvalidCredentials,
		},
		"success": {
			email:    "OPS@example.com",
			password: "super-secret",
			account:  account,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			jwtManager := auth.NewJWTManager("test-secret", time.Hour)
			service := NewAuthService(tt.account, jwtManager)

			token, err := service.Login(context.Background(), tt.email, tt.password)
			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected error %v, got %v", tt.expectError, err)
				}
				if token != "" {
					t.Fatalf("expected empty token on error, got %q", token)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			claims, err := jwtManager.ParseToken(token)
			if err != nil {
				t.Fatalf("parse token: %v", err)
			}
			if claims.Role != auth.RoleAdmin || claims.Email != "ops@example.com" {
				t.Fatalf("unexpected claims: %+v", claims)
			}
		})
	}
}

func TestAuthService_LoginWithoutAccount(t *testing.T) {
	service := NewAuthService(OperatorAccount{}, auth.NewJWTManager("secret", time.Hour))
	if _, err := service.Login(context.Background(), "ops@example.com", "pw"); err == nil {
		t.Fatalf("expected error when no operator is configured")
	}
}
