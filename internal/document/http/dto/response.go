package dto

import (
	"time"

	documentDomain "github.com/allisson/wopihost/internal/document/domain"
)

// DocumentResponse represents document metadata in API responses.
type DocumentResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	MimeType      string     `json:"mime_type"`
	Size          int64      `json:"size"`
	OwnerID       string     `json:"owner_id"`
	LockOwner     string     `json:"lock_owner,omitempty"`
	LockExpiresAt *time.Time `json:"lock_expires_at,omitempty"`
	CheckedOutBy  string     `json:"checked_out_by,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ListDocumentsResponse represents a paginated list of documents.
type ListDocumentsResponse struct {
	Data []DocumentResponse `json:"data"`
}

// MapDocumentToResponse converts a domain document to an API response.
func MapDocumentToResponse(document *documentDomain.Document) DocumentResponse {
	return DocumentResponse{
		ID:            document.ID.String(),
		Name:          document.Name,
		MimeType:      document.MimeType,
		Size:          document.Size,
		OwnerID:       document.OwnerID,
		LockOwner:     document.LockOwner,
		LockExpiresAt: document.LockExpiresAt,
		CheckedOutBy:  document.CheckedOutBy,
		CreatedAt:     document.CreatedAt,
		UpdatedAt:     document.UpdatedAt,
	}
}

// MapDocumentsToListResponse converts a slice of domain documents to a list response.
func MapDocumentsToListResponse(documents []*documentDomain.Document) ListDocumentsResponse {
	data := make([]DocumentResponse, 0, len(documents))
	for _, document := range documents {
		data = append(data, MapDocumentToResponse(document))
	}
	return ListDocumentsResponse{Data: data}
}
