package domain

import (
	"github.com/allisson/wopihost/internal/errors"
)

// Authentication errors.
var (
	// ErrInvalidUserToken indicates a host user token that fails signature or expiry checks.
	ErrInvalidUserToken = errors.Wrap(errors.ErrUnauthorized, "invalid user token")

	// ErrMissingSigningKey indicates the JWT secret is not configured.
	ErrMissingSigningKey = errors.Wrap(errors.ErrInvalidInput, "jwt signing key is not configured")
)
