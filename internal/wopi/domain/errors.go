package domain

import (
	"github.com/allisson/wopihost/internal/errors"
)

// WOPI session errors.
var (
	// ErrTokenNotFound indicates no live access token matches the document and token value.
	ErrTokenNotFound = errors.Wrap(errors.ErrUnauthorized, "access token not found")

	// ErrTokenExpired indicates the token exists but is past its expiry. It wraps
	// ErrTokenNotFound so external callers can treat both the same way.
	ErrTokenExpired = errors.Wrap(ErrTokenNotFound, "access token expired")

	// ErrLockConflict indicates a collaborative lock was refused because the document is
	// exclusively locked or checked out.
	ErrLockConflict = errors.Wrap(errors.ErrConflict, "document is exclusively locked or checked out")

	// ErrAlreadyLockedByOthers indicates a delete, move, or exclusive lock was refused because
	// a collaborative editing session is open.
	ErrAlreadyLockedByOthers = errors.Wrap(errors.ErrLocked, "document is being collaboratively edited")

	// ErrInvalidRequestParameters indicates the document id or the token value is missing.
	ErrInvalidRequestParameters = errors.Wrap(errors.ErrInvalidInput, "missing document id or access token")
)
