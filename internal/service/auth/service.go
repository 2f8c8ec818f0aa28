// Package auth implements admin login, token validation and webhook
// secret checks.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/adumedia/website-backend/internal/auth"
	"github.com/adumedia/website-backend/internal/domain"
	"github.com/adumedia/website-backend/pkg/ctxutil"
)

// tokenManager issues and validates admin bearer tokens.
type tokenManager interface {
	Generate() (string, error)
	Validate(token string) (*auth.Claims, error)
	TTL() time.Duration
}

// Service holds the auth use cases. There is one admin principal with a
// single shared password; no user store is involved.
type Service struct {
	tokens        tokenManager
	adminPassword string
	webhookSecret string
}

// New creates an auth service.
func New(tokens tokenManager, adminPassword, webhookSecret string) *Service {
	return &Service{
		tokens:        tokens,
		adminPassword: adminPassword,
		webhookSecret: webhookSecret,
	}
}

// Session is the result of a successful login.
type Session struct {
	AccessToken string
	ExpiresIn   int // seconds
}

// Login checks the shared admin password and issues a bearer token.
// The comparison is plain string equality against the configured value.
func (s *Service) Login(_ context.Context, password string) (Session, error) {
	if password != s.adminPassword {
		return Session{}, fmt.Errorf("login: %w", domain.ErrUnauthorized)
	}

	token, err := s.tokens.Generate()
	if err != nil {
		return Session{}, fmt.Errorf("login: %w", err)
	}

	return Session{
		AccessToken: token,
		ExpiresIn:   int(s.tokens.TTL().Seconds()),
	}, nil
}

// ValidateToken verifies a bearer token and returns the admin claims.
// Every decode failure collapses into ErrUnauthorized; callers never
// learn whether the token was expired, malformed or forged.
func (s *Service) ValidateToken(token string) (ctxutil.AdminClaims, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return ctxutil.AdminClaims{}, fmt.Errorf("%w: invalid or expired token", domain.ErrUnauthorized)
	}

	return ctxutil.AdminClaims{
		Role:     auth.Subject,
		IssuedAt: claims.IssuedAt.Time,
	}, nil
}

// VerifyWebhookSecret checks the shared secret sent by the store's
// trigger pipeline. An empty configured secret disables the check and
// accepts every request.
func (s *Service) VerifyWebhookSecret(provided string) bool {
	if s.webhookSecret == "" {
		return true
	}
	return provided == s.webhookSecret
}
