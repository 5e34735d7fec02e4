// Package service provides the document content store backed by gocloud.dev/blob, with
// optional encryption at rest through a gocloud.dev/secrets keeper.
package service

import (
	"context"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	documentDomain "github.com/allisson/wopihost/internal/document/domain"
	apperrors "github.com/allisson/wopihost/internal/errors"

	// Register bucket drivers
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
)

// ContentStore reads and writes document bytes.
type ContentStore interface {
	Read(ctx context.Context, documentID string) ([]byte, error)
	Write(ctx context.Context, documentID string, data []byte, contentType string) error
	// Delete removes the content. Deleting missing content is not an error.
	Delete(ctx context.Context, documentID string) error
	Close() error
}

// Keeper encrypts and decrypts content. *secrets.Keeper implements it.
type Keeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// blobContentStore implements ContentStore over a blob bucket.
type blobContentStore struct {
	bucket *blob.Bucket
	keeper Keeper
}

// NewContentStore opens the bucket at bucketURL (mem://, file:///path, s3://, gs://...).
// keeper may be nil, in which case content is stored as is.
func NewContentStore(ctx context.Context, bucketURL string, keeper Keeper) (ContentStore, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open content bucket")
	}
	return NewContentStoreFromBucket(bucket, keeper), nil
}

// NewContentStoreFromBucket creates a ContentStore over an already opened bucket.
func NewContentStoreFromBucket(bucket *blob.Bucket, keeper Keeper) ContentStore {
	return &blobContentStore{bucket: bucket, keeper: keeper}
}

func contentKey(documentID string) string {
	return "documents/" + documentID
}

// Read returns the document bytes, decrypted when a keeper is configured.
func (s *blobContentStore) Read(ctx context.Context, documentID string) ([]byte, error) {
	data, err := s.bucket.ReadAll(ctx, contentKey(documentID))
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, documentDomain.ErrContentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to read document content")
	}

	if s.keeper == nil {
		return data, nil
	}

	plaintext, err := s.keeper.Decrypt(ctx, data)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decrypt document content")
	}
	return plaintext, nil
}

// Write replaces the document bytes.
func (s *blobContentStore) Write(ctx context.Context, documentID string, data []byte, contentType string) error {
	if s.keeper != nil {
		ciphertext, err := s.keeper.Encrypt(ctx, data)
		if err != nil {
			return apperrors.Wrap(err, "failed to encrypt document content")
		}
		data = ciphertext
		contentType = "application/octet-stream"
	}

	opts := &blob.WriterOptions{ContentType: contentType}
	if err := s.bucket.WriteAll(ctx, contentKey(documentID), data, opts); err != nil {
		return apperrors.Wrap(err, "failed to write document content")
	}
	return nil
}

// Delete removes the document bytes.
func (s *blobContentStore) Delete(ctx context.Context, documentID string) error {
	err := s.bucket.Delete(ctx, contentKey(documentID))
	if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return apperrors.Wrap(err, "failed to delete document content")
	}
	return nil
}

// Close closes the bucket and the keeper.
func (s *blobContentStore) Close() error {
	if s.keeper != nil {
		if err := s.keeper.Close(); err != nil {
			return apperrors.Wrap(err, "failed to close content keeper")
		}
	}
	return s.bucket.Close()
}
