package usecase

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	documentDomain "github.com/allisson/wopihost/internal/document/domain"
	apperrors "github.com/allisson/wopihost/internal/errors"
	wopiDomain "github.com/allisson/wopihost/internal/wopi/domain"
	"github.com/allisson/wopihost/internal/wopi/service"
)

// documentLock is the per-document critical section of the coordinator. collab is nil
// while no collaborative session is open.
type documentLock struct {
	mu      sync.Mutex
	removed bool
	collab  *wopiDomain.CollaborativeLock
}

// lockCoordinator implements LockCoordinator.
type lockCoordinator struct {
	locks     sync.Map // documentID -> *documentLock
	documents DocumentReader
	clock     service.Clock
	logger    *slog.Logger
}

func (c *lockCoordinator) lockEntry(documentID string) *documentLock {
	for {
		value, _ := c.locks.LoadOrStore(documentID, &documentLock{})
		entry := value.(*documentLock)
		entry.mu.Lock()
		if !entry.removed {
			return entry
		}
		entry.mu.Unlock()
	}
}

// unlockEntry releases the entry and drops it from the map while it holds no lock.
func (c *lockCoordinator) unlockEntry(documentID string, entry *documentLock) {
	if entry.collab == nil {
		entry.removed = true
		c.locks.Delete(documentID)
	}
	entry.mu.Unlock()
}

// Acquire sets the collaborative lock on the document. It succeeds without change when the
// document is already collaboratively locked, whoever requested it.
func (c *lockCoordinator) Acquire(ctx context.Context, documentID, userID string) error {
	if strings.TrimSpace(documentID) == "" || strings.TrimSpace(userID) == "" {
		return wopiDomain.ErrInvalidRequestParameters
	}

	entry := c.lockEntry(documentID)
	defer c.unlockEntry(documentID, entry)

	if entry.collab != nil {
		return nil
	}

	document, err := c.documents.Get(ctx, documentID)
	if err != nil {
		return err
	}

	now := c.clock.Now()
	if document.HasExclusiveLock(now) || document.IsCheckedOut() {
		c.logger.Info("collaborative lock refused",
			slog.String("document_id", documentID),
			slog.String("user_id", userID),
			slog.String("lock_owner", document.LockOwner),
			slog.String("checked_out_by", document.CheckedOutBy),
		)
		return wopiDomain.ErrLockConflict
	}

	entry.collab = &wopiDomain.CollaborativeLock{
		DocumentID: documentID,
		UserID:     userID,
		AcquiredAt: now,
	}

	c.logger.Info("collaborative lock acquired",
		slog.String("document_id", documentID),
		slog.String("user_id", userID),
	)
	return nil
}

// Release clears the collaborative lock. It reports whether a lock was removed; releasing an
// unlocked document is not an error.
func (c *lockCoordinator) Release(ctx context.Context, documentID string) (bool, error) {
	if strings.TrimSpace(documentID) == "" {
		return false, wopiDomain.ErrInvalidRequestParameters
	}

	entry := c.lockEntry(documentID)
	defer c.unlockEntry(documentID, entry)

	if entry.collab == nil {
		return false, nil
	}

	c.logger.Info("collaborative lock released",
		slog.String("document_id", documentID),
		slog.String("user_id", entry.collab.UserID),
	)
	entry.collab = nil
	return true, nil
}

// IsLocked reports whether userID is blocked from editing: another user holds an exclusive
// lock or a collaborative session is open. An empty userID treats every holder as another user.
func (c *lockCoordinator) IsLocked(ctx context.Context, documentID, userID string) (bool, error) {
	if strings.TrimSpace(documentID) == "" {
		return false, wopiDomain.ErrInvalidRequestParameters
	}

	entry := c.lockEntry(documentID)
	defer c.unlockEntry(documentID, entry)

	if entry.collab != nil {
		return true, nil
	}

	document, err := c.documents.Get(ctx, documentID)
	if err != nil {
		return false, err
	}

	return document.LockStatusFor(userID, c.clock.Now()) == documentDomain.Locked, nil
}

// BeforeExclusiveLock refuses an exclusive lock or checkout while a collaborative session is open.
func (c *lockCoordinator) BeforeExclusiveLock(ctx context.Context, documentID string) error {
	return c.Guard(ctx, documentID, wopiDomain.ExclusiveLockOperation, nil)
}

// BeforeDelete refuses a deletion while a collaborative session is open.
func (c *lockCoordinator) BeforeDelete(ctx context.Context, documentID string) error {
	return c.Guard(ctx, documentID, wopiDomain.DeleteOperation, nil)
}

// BeforeMove refuses a move or rename while a collaborative session is open.
func (c *lockCoordinator) BeforeMove(ctx context.Context, documentID string) error {
	return c.Guard(ctx, documentID, wopiDomain.MoveOperation, nil)
}

// Guard checks op against the collaborative lock and runs fn inside the document's
// critical section.
func (c *lockCoordinator) Guard(
	ctx context.Context,
	documentID string,
	op wopiDomain.GuardedOperation,
	fn func(ctx context.Context) error,
) error {
	if strings.TrimSpace(documentID) == "" {
		return wopiDomain.ErrInvalidRequestParameters
	}

	switch op {
	case wopiDomain.ExclusiveLockOperation, wopiDomain.DeleteOperation, wopiDomain.MoveOperation:
	default:
		return apperrors.Wrapf(apperrors.ErrInvalidInput, "unknown guarded operation %q", op)
	}

	entry := c.lockEntry(documentID)
	defer c.unlockEntry(documentID, entry)

	if entry.collab != nil {
		c.logger.Info("operation refused by collaborative lock",
			slog.String("document_id", documentID),
			slog.String("operation", string(op)),
			slog.String("lock_holder", entry.collab.UserID),
		)
		return wopiDomain.ErrAlreadyLockedByOthers
	}

	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// State returns a snapshot of the document's lock state.
func (c *lockCoordinator) State(ctx context.Context, documentID string) (*wopiDomain.LockInfo, error) {
	if strings.TrimSpace(documentID) == "" {
		return nil, wopiDomain.ErrInvalidRequestParameters
	}

	entry := c.lockEntry(documentID)
	defer c.unlockEntry(documentID, entry)

	if entry.collab != nil {
		collab := *entry.collab
		return &wopiDomain.LockInfo{
			State:         wopiDomain.CollaborativelyLocked,
			Collaborative: &collab,
		}, nil
	}

	document, err := c.documents.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}

	switch {
	case document.HasExclusiveLock(c.clock.Now()):
		return &wopiDomain.LockInfo{
			State:          wopiDomain.ExclusivelyLocked,
			ExclusiveOwner: document.LockOwner,
		}, nil
	case document.IsCheckedOut():
		return &wopiDomain.LockInfo{State: wopiDomain.ExclusivelyLocked}, nil
	default:
		return &wopiDomain.LockInfo{State: wopiDomain.Unlocked}, nil
	}
}

// NewLockCoordinator creates a LockCoordinator reading document lock state through documents.
func NewLockCoordinator(documents DocumentReader, clock service.Clock, logger *slog.Logger) LockCoordinator {
	return &lockCoordinator{
		documents: documents,
		clock:     clock,
		logger:    logger,
	}
}
