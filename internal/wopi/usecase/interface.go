// Package usecase implements the WOPI session layer: the access token store, the
// collaborative lock coordinator, and the session facade the WOPI endpoints talk to.
//
// Token and lock state is held in memory and scoped per document. Every read-modify-write
// on one document runs under that document's mutex; different documents never contend.
package usecase

import (
	"context"

	documentDomain "github.com/allisson/wopihost/internal/document/domain"
	wopiDomain "github.com/allisson/wopihost/internal/wopi/domain"
)

// DocumentReader is the port to the document lock service used to check existence,
// exclusive locks, and checkouts.
type DocumentReader interface {
	Get(ctx context.Context, documentID string) (*documentDomain.Document, error)
}

// TokenStore issues, renews, resolves, and expires access tokens scoped to one
// (document, user) pair.
type TokenStore interface {
	// CreateOrRenew returns the live token of the pair with its expiry pushed to now+TTL,
	// or issues a new one when none is live.
	CreateOrRenew(ctx context.Context, documentID, userID string) (*wopiDomain.AccessToken, error)
	// Resolve finds the token matching tokenValue on the document. Expired matches are
	// removed and reported as ErrTokenExpired.
	Resolve(ctx context.Context, tokenValue, documentID string) (*wopiDomain.AccessToken, error)
	Revoke(ctx context.Context, documentID, userID string) bool
	PurgeExpired(ctx context.Context) int
	Len() int
}

// LockCoordinator arbitrates between collaborative editing locks and the exclusive locks
// and checkouts owned by the document lock service.
type LockCoordinator interface {
	Acquire(ctx context.Context, documentID, userID string) error
	Release(ctx context.Context, documentID string) (bool, error)
	IsLocked(ctx context.Context, documentID, userID string) (bool, error)
	BeforeExclusiveLock(ctx context.Context, documentID string) error
	BeforeDelete(ctx context.Context, documentID string) error
	BeforeMove(ctx context.Context, documentID string) error
	// Guard runs the hook matching op and then fn while holding the document's mutex, so no
	// collaborative lock can be acquired between the check and the mutation. fn may be nil.
	// fn must not call back into the coordinator for the same document.
	Guard(ctx context.Context, documentID string, op wopiDomain.GuardedOperation, fn func(ctx context.Context) error) error
	State(ctx context.Context, documentID string) (*wopiDomain.LockInfo, error)
}

// SessionFacade is the entry point used by the WOPI endpoints.
type SessionFacade interface {
	IssueToken(ctx context.Context, documentID, userID string) (*wopiDomain.IssueTokenOutput, error)
	// OpenForWrite resolves the token and acquires the collaborative lock. It returns the
	// user id bound to the token.
	OpenForWrite(ctx context.Context, documentID, tokenValue string) (string, error)
	OpenForRead(ctx context.Context, documentID, tokenValue string) (string, error)
	Close(ctx context.Context, documentID string) (bool, error)
	IsLocked(ctx context.Context, documentID, userID string) (bool, error)
}
