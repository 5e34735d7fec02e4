// Package dto provides data transfer objects for document HTTP requests and responses.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/wopihost/internal/validation"
)

// CreateDocumentRequest contains the parameters for creating a document. Content is base64 in
// JSON and may be empty.
type CreateDocumentRequest struct {
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	Content  []byte `json:"content"`
}

// Validate checks if the create document request is valid.
func (r *CreateDocumentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			customValidation.FileName,
			validation.Length(1, 255),
		),
		validation.Field(&r.MimeType, validation.Length(0, 255)),
	)
}

// LockDocumentRequest contains the parameters for taking an exclusive lock. A zero
// TTLSeconds means the lock does not expire.
type LockDocumentRequest struct {
	TTLSeconds int `json:"ttl_seconds"`
}

// Validate checks if the lock request is valid.
func (r *LockDocumentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.TTLSeconds, validation.Min(0)),
	)
}

// MoveDocumentRequest contains the new document name.
type MoveDocumentRequest struct {
	Name string `json:"name"`
}

// Validate checks if the move request is valid.
func (r *MoveDocumentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			customValidation.FileName,
			validation.Length(1, 255),
		),
	)
}
