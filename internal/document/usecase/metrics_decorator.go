package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	documentDomain "github.com/allisson/wopihost/internal/document/domain"
	"github.com/allisson/wopihost/internal/metrics"
)

// documentUseCaseWithMetrics decorates DocumentUseCase with metrics instrumentation.
type documentUseCaseWithMetrics struct {
	next    DocumentUseCase
	metrics metrics.BusinessMetrics
}

// NewDocumentUseCaseWithMetrics wraps a DocumentUseCase with metrics recording.
func NewDocumentUseCaseWithMetrics(useCase DocumentUseCase, m metrics.BusinessMetrics) DocumentUseCase {
	return &documentUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (d *documentUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusFor(err)

	d.metrics.RecordOperation(ctx, "documents", operation, status)
	d.metrics.RecordDuration(ctx, "documents", operation, time.Since(start), status)
}

// Create records metrics for document creation.
func (d *documentUseCaseWithMetrics) Create(
	ctx context.Context,
	name, mimeType, ownerID string,
	content []byte,
) (*documentDomain.Document, error) {
	start := time.Now()
	document, err := d.next.Create(ctx, name, mimeType, ownerID, content)
	d.record(ctx, "document_create", start, err)
	return document, err
}

// Get records metrics for document retrieval.
func (d *documentUseCaseWithMetrics) Get(ctx context.Context, documentID uuid.UUID) (*documentDomain.Document, error) {
	start := time.Now()
	document, err := d.next.Get(ctx, documentID)
	d.record(ctx, "document_get", start, err)
	return document, err
}

// List records metrics for document listing.
func (d *documentUseCaseWithMetrics) List(ctx context.Context, offset, limit int) ([]*documentDomain.Document, error) {
	start := time.Now()
	documents, err := d.next.List(ctx, offset, limit)
	d.record(ctx, "document_list", start, err)
	return documents, err
}

// Lock records metrics for exclusive lock acquisition.
func (d *documentUseCaseWithMetrics) Lock(
	ctx context.Context,
	documentID uuid.UUID,
	userID string,
	ttl time.Duration,
) (*documentDomain.Document, error) {
	start := time.Now()
	document, err := d.next.Lock(ctx, documentID, userID, ttl)
	d.record(ctx, "document_lock", start, err)
	return document, err
}

// Unlock records metrics for exclusive lock release.
func (d *documentUseCaseWithMetrics) Unlock(
	ctx context.Context,
	documentID uuid.UUID,
	userID string,
) (*documentDomain.Document, error) {
	start := time.Now()
	document, err := d.next.Unlock(ctx, documentID, userID)
	d.record(ctx, "document_unlock", start, err)
	return document, err
}

// CheckOut records metrics for document checkout.
func (d *documentUseCaseWithMetrics) CheckOut(
	ctx context.Context,
	documentID uuid.UUID,
	userID string,
) (*documentDomain.Document, error) {
	start := time.Now()
	document, err := d.next.CheckOut(ctx, documentID, userID)
	d.record(ctx, "document_checkout", start, err)
	return document, err
}

// CheckIn records metrics for document checkin.
func (d *documentUseCaseWithMetrics) CheckIn(
	ctx context.Context,
	documentID uuid.UUID,
	userID string,
) (*documentDomain.Document, error) {
	start := time.Now()
	document, err := d.next.CheckIn(ctx, documentID, userID)
	d.record(ctx, "document_checkin", start, err)
	return document, err
}

// Move records metrics for document renames.
func (d *documentUseCaseWithMetrics) Move(
	ctx context.Context,
	documentID uuid.UUID,
	userID, name string,
) (*documentDomain.Document, error) {
	start := time.Now()
	document, err := d.next.Move(ctx, documentID, userID, name)
	d.record(ctx, "document_move", start, err)
	return document, err
}

// Delete records metrics for document deletion.
func (d *documentUseCaseWithMetrics) Delete(ctx context.Context, documentID uuid.UUID, userID string) error {
	start := time.Now()
	err := d.next.Delete(ctx, documentID, userID)
	d.record(ctx, "document_delete", start, err)
	return err
}

// ReadContent records metrics for content reads.
func (d *documentUseCaseWithMetrics) ReadContent(
	ctx context.Context,
	documentID uuid.UUID,
) (*documentDomain.Document, []byte, error) {
	start := time.Now()
	document, data, err := d.next.ReadContent(ctx, documentID)
	d.record(ctx, "content_read", start, err)
	return document, data, err
}

// WriteContent records metrics for content writes.
func (d *documentUseCaseWithMetrics) WriteContent(
	ctx context.Context,
	documentID uuid.UUID,
	userID string,
	data []byte,
) (*documentDomain.Document, error) {
	start := time.Now()
	document, err := d.next.WriteContent(ctx, documentID, userID, data)
	d.record(ctx, "content_write", start, err)
	return document, err
}
