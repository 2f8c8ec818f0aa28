package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Subject is the single administrative principal this API knows about.
const Subject = "admin"

// tokenType tags access tokens so other token kinds can never be
// accepted here by accident.
const tokenType = "access"

// TokenManager issues and validates the admin bearer token.
// Signing is fixed to HS256; expiry is the only invalidation path —
// there is no refresh mechanism and no revocation list.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a token manager.
// secret must be at least 32 characters for HS256 security.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Claims extends standard JWT claims with the token type tag.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"type"`
}

// TTL returns the configured token lifetime.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Generate creates a signed HS256 token for the admin subject.
func (m *TokenManager) Generate() (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		TokenType: tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a token. It fails closed: any signature
// mismatch, expiry, wrong subject, or wrong type yields an error and the
// caller must treat the request as unauthenticated. The individual
// failure reasons are not surfaced to API clients.
func (m *TokenManager) Validate(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if claims.Subject != Subject {
		return nil, fmt.Errorf("invalid subject %q", claims.Subject)
	}
	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("invalid token type %q", claims.TokenType)
	}

	return claims, nil
}
