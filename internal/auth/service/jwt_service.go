package service

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	authDomain "github.com/allisson/wopihost/internal/auth/domain"
	apperrors "github.com/allisson/wopihost/internal/errors"
)

const issuer = "wopihost"

// jwtService implements TokenService with HS256 signed JWTs.
type jwtService struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// Issue signs a token for userID.
func (j *jwtService) Issue(userID string) (*authDomain.IssuedUserToken, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "user id is required")
	}

	now := j.now().UTC()
	expiresAt := now.Add(j.expiration)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, authDomain.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
	})

	signed, err := token.SignedString(j.secret)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to sign user token")
	}

	return &authDomain.IssuedUserToken{
		Token:     signed,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify parses tokenString and returns its user id.
func (j *jwtService) Verify(tokenString string) (string, error) {
	claims := &authDomain.Claims{}

	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (any, error) {
			return j.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return "", apperrors.Wrapf(authDomain.ErrInvalidUserToken, "%v", err)
	}
	if !token.Valid || claims.UserID == "" {
		return "", authDomain.ErrInvalidUserToken
	}

	return claims.UserID, nil
}

// NewTokenService creates a TokenService signing with secret. Tokens expire after expiration.
func NewTokenService(secret string, expiration time.Duration) (TokenService, error) {
	return newTokenService(secret, expiration, time.Now)
}

func newTokenService(secret string, expiration time.Duration, now func() time.Time) (TokenService, error) {
	if secret == "" {
		return nil, authDomain.ErrMissingSigningKey
	}
	if expiration <= 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "user token expiration must be positive")
	}

	return &jwtService{
		secret:     []byte(secret),
		expiration: expiration,
		now:        now,
	}, nil
}
