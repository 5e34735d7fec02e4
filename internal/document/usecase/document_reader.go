package usecase

import (
	"context"

	"github.com/google/uuid"

	documentDomain "github.com/allisson/wopihost/internal/document/domain"
)

// DocumentReader exposes document lookups by string id to the WOPI session layer, which
// treats ids as opaque. An id that is not a UUID cannot exist and reads as not found.
type DocumentReader struct {
	documentRepo DocumentRepository
}

// Get retrieves the document with the given id.
func (r *DocumentReader) Get(ctx context.Context, documentID string) (*documentDomain.Document, error) {
	id, err := uuid.Parse(documentID)
	if err != nil {
		return nil, documentDomain.ErrDocumentNotFound
	}
	return r.documentRepo.Get(ctx, id)
}

// NewDocumentReader creates a DocumentReader over the repository.
func NewDocumentReader(documentRepo DocumentRepository) *DocumentReader {
	return &DocumentReader{documentRepo: documentRepo}
}
