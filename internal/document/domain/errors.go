package domain

import (
	"github.com/allisson/wopihost/internal/errors"
)

// Document errors.
var (
	// ErrDocumentNotFound indicates a document with the specified ID was not found.
	ErrDocumentNotFound = errors.Wrap(errors.ErrNotFound, "document not found")

	// ErrContentNotFound indicates no content has been stored for the document.
	ErrContentNotFound = errors.Wrap(errors.ErrNotFound, "document content not found")

	// ErrDocumentLocked indicates another user holds an exclusive lock on the document.
	ErrDocumentLocked = errors.Wrap(errors.ErrLocked, "document is locked by another user")

	// ErrDocumentCheckedOut indicates the document has a working copy and cannot be locked.
	ErrDocumentCheckedOut = errors.Wrap(errors.ErrConflict, "document is checked out")

	// ErrDocumentNotLocked indicates an unlock was requested on a document without a lock.
	ErrDocumentNotLocked = errors.Wrap(errors.ErrConflict, "document is not locked")

	// ErrDocumentNotCheckedOut indicates a check-in was requested without a checkout.
	ErrDocumentNotCheckedOut = errors.Wrap(errors.ErrConflict, "document is not checked out")

	// ErrNotLockOwner indicates a user tried to release a lock or checkout held by someone else.
	ErrNotLockOwner = errors.Wrap(errors.ErrForbidden, "user does not own the lock")
)
