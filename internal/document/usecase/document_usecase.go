package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/wopihost/internal/database"
	documentDomain "github.com/allisson/wopihost/internal/document/domain"
	"github.com/allisson/wopihost/internal/document/service"
	apperrors "github.com/allisson/wopihost/internal/errors"
	wopiDomain "github.com/allisson/wopihost/internal/wopi/domain"
)

// documentUseCase implements DocumentUseCase.
type documentUseCase struct {
	txManager    database.TxManager
	documentRepo DocumentRepository
	contentStore service.ContentStore
	lockGuard    LockGuard
	logger       *slog.Logger
}

// Create stores a new document and its initial content in one transaction.
func (d *documentUseCase) Create(
	ctx context.Context,
	name, mimeType, ownerID string,
	content []byte,
) (*documentDomain.Document, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(ownerID) == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "document name and owner are required")
	}

	now := time.Now().UTC()
	document := &documentDomain.Document{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      name,
		MimeType:  mimeType,
		Size:      int64(len(content)),
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := d.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := d.documentRepo.Create(ctx, document); err != nil {
			return err
		}
		return d.contentStore.Write(ctx, document.ID.String(), content, mimeType)
	})
	if err != nil {
		return nil, err
	}

	d.logger.Info("document created",
		slog.String("document_id", document.ID.String()),
		slog.String("owner_id", ownerID),
	)
	return document, nil
}

// Get retrieves a document by ID.
func (d *documentUseCase) Get(ctx context.Context, documentID uuid.UUID) (*documentDomain.Document, error) {
	return d.documentRepo.Get(ctx, documentID)
}

// List retrieves documents with pagination.
func (d *documentUseCase) List(ctx context.Context, offset, limit int) ([]*documentDomain.Document, error) {
	return d.documentRepo.List(ctx, offset, limit)
}

// mutate loads the document, applies fn, and persists the result in one transaction.
func (d *documentUseCase) mutate(
	ctx context.Context,
	documentID uuid.UUID,
	fn func(document *documentDomain.Document, now time.Time) error,
) (*documentDomain.Document, error) {
	var document *documentDomain.Document

	err := d.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		document, err = d.documentRepo.Get(ctx, documentID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := fn(document, now); err != nil {
			return err
		}

		document.UpdatedAt = now
		return d.documentRepo.Update(ctx, document)
	})
	if err != nil {
		return nil, err
	}
	return document, nil
}

// guardedMutate runs mutate inside the lock guard for op.
func (d *documentUseCase) guardedMutate(
	ctx context.Context,
	documentID uuid.UUID,
	op wopiDomain.GuardedOperation,
	fn func(document *documentDomain.Document, now time.Time) error,
) (*documentDomain.Document, error) {
	var document *documentDomain.Document

	err := d.lockGuard.Guard(ctx, documentID.String(), op, func(ctx context.Context) error {
		var err error
		document, err = d.mutate(ctx, documentID, fn)
		return err
	})
	if err != nil {
		return nil, err
	}
	return document, nil
}

// Lock grants an exclusive lock. The current holder may call it again to refresh the expiry.
func (d *documentUseCase) Lock(
	ctx context.Context,
	documentID uuid.UUID,
	userID string,
	ttl time.Duration,
) (*documentDomain.Document, error) {
	document, err := d.guardedMutate(ctx, documentID, wopiDomain.ExclusiveLockOperation,
		func(document *documentDomain.Document, now time.Time) error {
			if document.LockStatusFor(userID, now) == documentDomain.Locked {
				return documentDomain.ErrDocumentLocked
			}
			if document.IsCheckedOut() {
				return documentDomain.ErrDocumentCheckedOut
			}

			document.LockOwner = userID
			document.LockExpiresAt = nil
			if ttl > 0 {
				expiresAt := now.Add(ttl)
				document.LockExpiresAt = &expiresAt
			}
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	d.logger.Info("document locked",
		slog.String("document_id", documentID.String()),
		slog.String("user_id", userID),
	)
	return document, nil
}

// Unlock releases the exclusive lock held by userID. An expired lock may be cleared by anyone.
func (d *documentUseCase) Unlock(
	ctx context.Context,
	documentID uuid.UUID,
	userID string,
) (*documentDomain.Document, error) {
	return d.mutate(ctx, documentID, func(document *documentDomain.Document, now time.Time) error {
		switch document.LockStatusFor(userID, now) {
		case documentDomain.NoLock:
			return documentDomain.ErrDocumentNotLocked
		case documentDomain.Locked:
			return documentDomain.ErrNotLockOwner
		}

		document.LockOwner = ""
		document.LockExpiresAt = nil
		return nil
	})
}

// CheckOut marks the document as checked out by userID.
func (d *documentUseCase) CheckOut(
	ctx context.Context,
	documentID uuid.UUID,
	userID string,
) (*documentDomain.Document, error) {
	return d.guardedMutate(ctx, documentID, wopiDomain.ExclusiveLockOperation,
		func(document *documentDomain.Document, now time.Time) error {
			if document.LockStatusFor(userID, now) == documentDomain.Locked {
				return documentDomain.ErrDocumentLocked
			}
			if document.IsCheckedOut() {
				return documentDomain.ErrDocumentCheckedOut
			}

			document.CheckedOutBy = userID
			return nil
		},
	)
}

// CheckIn clears the checkout held by userID.
func (d *documentUseCase) CheckIn(
	ctx context.Context,
	documentID uuid.UUID,
	userID string,
) (*documentDomain.Document, error) {
	return d.mutate(ctx, documentID, func(document *documentDomain.Document, now time.Time) error {
		if !document.IsCheckedOut() {
			return documentDomain.ErrDocumentNotCheckedOut
		}
		if document.CheckedOutBy != userID {
			return documentDomain.ErrNotLockOwner
		}

		document.CheckedOutBy = ""
		return nil
	})
}

// Move renames the document.
func (d *documentUseCase) Move(
	ctx context.Context,
	documentID uuid.UUID,
	userID, name string,
) (*documentDomain.Document, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "document name is required")
	}

	return d.guardedMutate(ctx, documentID, wopiDomain.MoveOperation,
		func(document *documentDomain.Document, now time.Time) error {
			if document.LockStatusFor(userID, now) == documentDomain.Locked {
				return documentDomain.ErrDocumentLocked
			}

			document.Name = name
			return nil
		},
	)
}

// Delete removes the document and its content.
func (d *documentUseCase) Delete(ctx context.Context, documentID uuid.UUID, userID string) error {
	err := d.lockGuard.Guard(ctx, documentID.String(), wopiDomain.DeleteOperation, func(ctx context.Context) error {
		return d.txManager.WithTx(ctx, func(ctx context.Context) error {
			document, err := d.documentRepo.Get(ctx, documentID)
			if err != nil {
				return err
			}
			if document.LockStatusFor(userID, time.Now().UTC()) == documentDomain.Locked {
				return documentDomain.ErrDocumentLocked
			}
			if err := d.documentRepo.Delete(ctx, documentID); err != nil {
				return err
			}
			return d.contentStore.Delete(ctx, documentID.String())
		})
	})
	if err != nil {
		return err
	}

	d.logger.Info("document deleted",
		slog.String("document_id", documentID.String()),
		slog.String("user_id", userID),
	)
	return nil
}

// ReadContent returns the document metadata and bytes.
func (d *documentUseCase) ReadContent(
	ctx context.Context,
	documentID uuid.UUID,
) (*documentDomain.Document, []byte, error) {
	document, err := d.documentRepo.Get(ctx, documentID)
	if err != nil {
		return nil, nil, err
	}

	data, err := d.contentStore.Read(ctx, documentID.String())
	if err != nil {
		return nil, nil, err
	}
	return document, data, nil
}

// WriteContent replaces the document bytes. The exclusive lock check is skipped while a
// collaborative editing session is open.
func (d *documentUseCase) WriteContent(
	ctx context.Context,
	documentID uuid.UUID,
	userID string,
	data []byte,
) (*documentDomain.Document, error) {
	info, err := d.lockGuard.State(ctx, documentID.String())
	if err != nil {
		return nil, err
	}
	collaborative := info.State == wopiDomain.CollaborativelyLocked

	document, err := d.mutate(ctx, documentID, func(document *documentDomain.Document, now time.Time) error {
		if !collaborative && document.LockStatusFor(userID, now) == documentDomain.Locked {
			return documentDomain.ErrDocumentLocked
		}

		if err := d.contentStore.Write(ctx, documentID.String(), data, document.MimeType); err != nil {
			return err
		}
		document.Size = int64(len(data))
		return nil
	})
	if err != nil {
		return nil, err
	}

	d.logger.Info("document content updated",
		slog.String("document_id", documentID.String()),
		slog.String("user_id", userID),
		slog.Int64("size", document.Size),
		slog.Bool("collaborative", collaborative),
	)
	return document, nil
}

// NewDocumentUseCase creates a new DocumentUseCase.
func NewDocumentUseCase(
	txManager database.TxManager,
	documentRepo DocumentRepository,
	contentStore service.ContentStore,
	lockGuard LockGuard,
	logger *slog.Logger,
) DocumentUseCase {
	return &documentUseCase{
		txManager:    txManager,
		documentRepo: documentRepo,
		contentStore: contentStore,
		lockGuard:    lockGuard,
		logger:       logger,
	}
}
