package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/wopihost/internal/errors"
)

func TestAccessToken_IsValid(t *testing.T) {
	issuedAt := time.UnixMilli(0)
	token := &AccessToken{
		Token:      "tok",
		IssuedAt:   issuedAt,
		ExpiresAt:  issuedAt.Add(time.Hour),
		DocumentID: "doc1",
		UserID:     "alice",
	}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"BeforeIssuance", issuedAt.Add(-time.Nanosecond), false},
		{"AtIssuance", issuedAt, false},
		{"JustAfterIssuance", issuedAt.Add(time.Nanosecond), true},
		{"Midway", issuedAt.Add(30 * time.Minute), true},
		{"JustBeforeExpiry", issuedAt.Add(time.Hour - time.Nanosecond), true},
		{"AtExpiry", issuedAt.Add(time.Hour), false},
		{"AfterExpiry", issuedAt.Add(2 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, token.IsValid(tt.now))
		})
	}
}

func TestAccessToken_IsExpired(t *testing.T) {
	issuedAt := time.UnixMilli(0)
	token := &AccessToken{IssuedAt: issuedAt, ExpiresAt: issuedAt.Add(time.Hour)}

	assert.False(t, token.IsExpired(issuedAt))
	assert.True(t, token.IsExpired(issuedAt.Add(time.Hour)))
	assert.True(t, token.IsExpired(issuedAt.Add(2*time.Hour)))
}

func TestAccessToken_ExpiresAtMillis(t *testing.T) {
	token := &AccessToken{ExpiresAt: time.UnixMilli(3600000)}
	assert.Equal(t, int64(3600000), token.ExpiresAtMillis())
}

func TestErrors(t *testing.T) {
	assert.ErrorIs(t, ErrTokenExpired, ErrTokenNotFound)
	assert.ErrorIs(t, ErrTokenNotFound, apperrors.ErrUnauthorized)
	assert.NotErrorIs(t, ErrTokenNotFound, ErrTokenExpired)
	assert.ErrorIs(t, ErrLockConflict, apperrors.ErrConflict)
	assert.ErrorIs(t, ErrAlreadyLockedByOthers, apperrors.ErrLocked)
	assert.ErrorIs(t, ErrInvalidRequestParameters, apperrors.ErrInvalidInput)
}
