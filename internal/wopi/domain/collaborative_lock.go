package domain

import "time"

// LockState is the lock state of a document as seen by the lock coordinator.
// A document is in exactly one state at a time.
type LockState string

const (
	// Unlocked means neither an exclusive nor a collaborative lock is held.
	Unlocked LockState = "unlocked"

	// ExclusivelyLocked means the document lock service granted an exclusive lock
	// or the document is checked out.
	ExclusivelyLocked LockState = "exclusively_locked"

	// CollaborativelyLocked means an editing session is open on the document.
	CollaborativelyLocked LockState = "collaboratively_locked"
)

// CollaborativeLock records who opened the collaborative editing session and when.
type CollaborativeLock struct {
	DocumentID string
	UserID     string
	AcquiredAt time.Time
}

// GuardedOperation names a document mutation the lock coordinator must approve.
type GuardedOperation string

const (
	// ExclusiveLockOperation is an exclusive lock or checkout request.
	ExclusiveLockOperation GuardedOperation = "exclusive_lock"

	// DeleteOperation is a document deletion.
	DeleteOperation GuardedOperation = "delete"

	// MoveOperation is a document move or rename.
	MoveOperation GuardedOperation = "move"
)

// LockInfo is a snapshot of a document's lock state.
type LockInfo struct {
	State LockState
	// ExclusiveOwner is the exclusive lock holder, empty for a checkout or when unlocked.
	ExclusiveOwner string
	// Collaborative is set when State is CollaborativelyLocked.
	Collaborative *CollaborativeLock
}
