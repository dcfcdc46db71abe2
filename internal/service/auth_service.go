package service

import (
	"context"
	"strings"
	"time"

	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/auth"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/config"
	apperrors "github.com/jtalmeidaAdvir/WhatsappTimeTracker/pkg/util"
)

// AuthService authenticates the single configured admin principal.
type AuthService struct {
	email        string
	passwordHash string
	tokens       *auth.TokenManager
}

// NewAuthService builds the service from configuration. When only a plain
// admin password is configured it is hashed once at startup.
func NewAuthService(cfg config.AuthConfig) (*AuthService, error) {
	hash := cfg.AdminPasswordHash
	if hash == "" && cfg.AdminPassword != "" {
		hashed, err := auth.HashPassword(cfg.AdminPassword, cfg.BcryptCost)
		if err != nil {
			return nil, err
		}
		hash = hashed
	}

	return &AuthService{
		email:        strings.ToLower(strings.TrimSpace(cfg.AdminEmail)),
		passwordHash: hash,
		tokens:       auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
	}, nil
}

// Login verifies admin credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if s.passwordHash == "" {
		return "", time.Time{}, apperrors.NewUnauthorized("admin login disabled")
	}
	if email != s.email {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(s.passwordHash, password); err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	return s.issue(email)
}

func (s *AuthService) issue(email string) (string, time.Time, error) {
	token, expiresAt, err := s.tokens.GenerateToken(email)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	return token, expiresAt, nil
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}
