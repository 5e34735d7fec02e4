// Package domain defines the document model shared by the document lock service and the
// WOPI session layer.
//
// A document carries its metadata plus the state of the generic lock service: an optional
// exclusive lock (owner and expiry) and an optional checkout. Collaborative editing locks are
// not stored here; they live in memory in the WOPI lock coordinator.
package domain

import (
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LockStatus is the exclusive lock status of a document relative to a given user.
type LockStatus string

const (
	// NoLock means no exclusive lock is held.
	NoLock LockStatus = "no_lock"
	// Locked means another user holds an unexpired exclusive lock.
	Locked LockStatus = "locked"
	// LockOwner means the given user holds the unexpired exclusive lock.
	LockOwner LockStatus = "lock_owner"
	// LockExpired means an exclusive lock was recorded but its expiry has passed.
	LockExpired LockStatus = "lock_expired"
)

// Document represents a stored file and its generic lock state.
type Document struct {
	ID            uuid.UUID  // Unique identifier (UUIDv7)
	Name          string     // File name including extension
	MimeType      string     // Content type of the stored bytes
	Size          int64      // Size of the current content in bytes
	OwnerID       string     // User who created the document
	LockOwner     string     // Exclusive lock holder, empty when unlocked
	LockExpiresAt *time.Time // Exclusive lock expiry, nil means the lock never expires
	CheckedOutBy  string     // User holding a working copy, empty when not checked out
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LockStatusFor reports the exclusive lock status of the document for userID at now.
func (d *Document) LockStatusFor(userID string, now time.Time) LockStatus {
	if d.LockOwner == "" {
		return NoLock
	}
	if d.LockExpiresAt != nil && !now.Before(*d.LockExpiresAt) {
		return LockExpired
	}
	if userID != "" && d.LockOwner == userID {
		return LockOwner
	}
	return Locked
}

// HasExclusiveLock reports whether an unexpired exclusive lock is held by anyone.
func (d *Document) HasExclusiveLock(now time.Time) bool {
	status := d.LockStatusFor("", now)
	return status == Locked
}

// IsCheckedOut reports whether a working copy of the document exists.
func (d *Document) IsCheckedOut() bool {
	return d.CheckedOutBy != ""
}

// BaseFileName returns the document name without its extension, the form editors show in
// their title bar.
func (d *Document) BaseFileName() string {
	ext := path.Ext(d.Name)
	if ext == "" || ext == d.Name {
		return d.Name
	}
	return strings.TrimSuffix(d.Name, ext)
}
