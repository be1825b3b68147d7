// Package auth provides bearer token issuance and the middleware chain
// guarding protected routes.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/smarthomeinventory/backend/internal/models"
)

// TokenService issues and verifies signed bearer tokens
type TokenService struct {
	secret      string
	tokenExpiry time.Duration
}

// NewTokenService creates a new token service
func NewTokenService(secret string, tokenExpiry time.Duration) *TokenService {
	return &TokenService{
		secret:      secret,
		tokenExpiry: tokenExpiry,
	}
}

// Issue creates a signed token naming userID as its subject, valid for the
// configured lifetime. There is no refresh or rotation: the token is a bearer
// credential for its full lifetime or until the signing key changes.
func (ts *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ts.tokenExpiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(ts.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify checks signature and expiration and returns the subject user id.
// Every failure path for attacker-controlled input collapses to
// models.ErrInvalidToken; Verify never panics.
func (ts *TokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.secret), nil
	})
	if err != nil || !token.Valid {
		return "", models.ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", models.ErrInvalidToken
	}

	return claims.Subject, nil
}
