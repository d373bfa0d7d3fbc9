package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/onnise/beyond-ads-scraper/internal/auth"
)

// OperatorAccount is the single login configured for the dashboard.
type OperatorAccount struct {
	Email        string
	PasswordHash string
	Role         string
}

// AuthService coordinates credential validation and token issuance.
type AuthService struct {
	account OperatorAccount
	jwt     *auth.JWTManager
}

// NewAuthService constructs a new AuthService. An empty role defaults to admin.
func NewAuthService(account OperatorAccount, jwtManager *auth.JWTManager) *AuthService {
	account.Email = strings.ToLower(strings.TrimSpace(account.Email))
	if account.Role == "" {
		account.Role = auth.RoleAdmin
	}
	return &AuthService{account: account, jwt: jwtManager}
}

// Login validates credentials and returns a JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", &ValidationError{Field: "credentials", Message: "email and password must not be empty"}
	}
	if s.account.Email == "" || s.account.PasswordHash == "" {
		return "", errors.New("operator account is not configured")
	}

	emailMatch := subtle.ConstantTimeCompare([]byte(email), []byte(s.account.Email)) == 1
	if err := bcrypt.CompareHashAndPassword([]byte(s.account.PasswordHash), []byte(password)); err != nil || !emailMatch {
		return "", ErrInvalidCredentials
	}

	return s.jwt.GenerateToken(s.account.Email, s.account.Email, s.account.Role)
}
