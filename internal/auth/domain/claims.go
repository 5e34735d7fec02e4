// Package domain defines the host user authentication model. Host users are identified by
// HS256-signed JWTs carrying the user id; the WOPI layer treats that id as opaque.
package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims carried by host user tokens.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// IssuedUserToken is a signed host user token and its expiry.
type IssuedUserToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}
