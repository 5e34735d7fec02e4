// Package service provides host user token signing and verification.
package service

import (
	authDomain "github.com/allisson/wopihost/internal/auth/domain"
)

// TokenService issues and verifies host user tokens.
type TokenService interface {
	// Issue signs a token for userID that expires after the configured lifetime.
	Issue(userID string) (*authDomain.IssuedUserToken, error)

	// Verify checks the signature and expiry of tokenString and returns the user id it carries.
	Verify(tokenString string) (string, error)
}
