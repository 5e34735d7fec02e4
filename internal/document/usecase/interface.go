// Package usecase implements the document lock service: document metadata, exclusive locks,
// checkouts, and content. Every mutation that conflicts with a collaborative editing session
// runs through the WOPI lock coordinator's guard.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	documentDomain "github.com/allisson/wopihost/internal/document/domain"
	wopiDomain "github.com/allisson/wopihost/internal/wopi/domain"
)

// DocumentRepository defines the interface for Document persistence operations.
type DocumentRepository interface {
	Create(ctx context.Context, document *documentDomain.Document) error
	Update(ctx context.Context, document *documentDomain.Document) error
	Get(ctx context.Context, documentID uuid.UUID) (*documentDomain.Document, error)
	List(ctx context.Context, offset, limit int) ([]*documentDomain.Document, error)
	Delete(ctx context.Context, documentID uuid.UUID) error
}

// LockGuard is the part of the WOPI lock coordinator the document lock service depends on.
type LockGuard interface {
	Guard(
		ctx context.Context,
		documentID string,
		op wopiDomain.GuardedOperation,
		fn func(ctx context.Context) error,
	) error
	State(ctx context.Context, documentID string) (*wopiDomain.LockInfo, error)
}

// DocumentUseCase defines the interface for document management business logic.
type DocumentUseCase interface {
	Create(ctx context.Context, name, mimeType, ownerID string, content []byte) (*documentDomain.Document, error)
	Get(ctx context.Context, documentID uuid.UUID) (*documentDomain.Document, error)
	List(ctx context.Context, offset, limit int) ([]*documentDomain.Document, error)
	// Lock grants userID an exclusive lock. A zero ttl means the lock never expires.
	Lock(ctx context.Context, documentID uuid.UUID, userID string, ttl time.Duration) (*documentDomain.Document, error)
	Unlock(ctx context.Context, documentID uuid.UUID, userID string) (*documentDomain.Document, error)
	CheckOut(ctx context.Context, documentID uuid.UUID, userID string) (*documentDomain.Document, error)
	CheckIn(ctx context.Context, documentID uuid.UUID, userID string) (*documentDomain.Document, error)
	// Move renames the document.
	Move(ctx context.Context, documentID uuid.UUID, userID, name string) (*documentDomain.Document, error)
	Delete(ctx context.Context, documentID uuid.UUID, userID string) error
	ReadContent(ctx context.Context, documentID uuid.UUID) (*documentDomain.Document, []byte, error)
	// WriteContent replaces the document bytes. It is refused when another user holds an
	// exclusive lock, unless a collaborative editing session is open.
	WriteContent(ctx context.Context, documentID uuid.UUID, userID string, data []byte) (*documentDomain.Document, error)
}
