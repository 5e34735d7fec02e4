// Package repository implements document metadata persistence.
//
// Provides PostgreSQL and MySQL implementations with transaction support via database.GetTx().
// PostgreSQL uses native UUID types, MySQL uses BINARY(16) types.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/wopihost/internal/database"
	documentDomain "github.com/allisson/wopihost/internal/document/domain"
	apperrors "github.com/allisson/wopihost/internal/errors"
)

const documentColumns = `id, name, mime_type, size, owner_id, lock_owner, lock_expires_at, checked_out_by, created_at, updated_at`

// PostgreSQLDocumentRepository implements Document persistence for PostgreSQL.
type PostgreSQLDocumentRepository struct {
	db *sql.DB
}

// Create inserts a new Document into the PostgreSQL database.
func (p *PostgreSQLDocumentRepository) Create(ctx context.Context, document *documentDomain.Document) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO documents (` + documentColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := querier.ExecContext(
		ctx,
		query,
		document.ID,
		document.Name,
		document.MimeType,
		document.Size,
		document.OwnerID,
		document.LockOwner,
		document.LockExpiresAt,
		document.CheckedOutBy,
		document.CreatedAt,
		document.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create document")
	}
	return nil
}

// Update modifies an existing Document in the PostgreSQL database.
func (p *PostgreSQLDocumentRepository) Update(ctx context.Context, document *documentDomain.Document) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE documents
			  SET name = $1,
				  mime_type = $2,
				  size = $3,
				  lock_owner = $4,
				  lock_expires_at = $5,
				  checked_out_by = $6,
				  updated_at = $7
			  WHERE id = $8`

	result, err := querier.ExecContext(
		ctx,
		query,
		document.Name,
		document.MimeType,
		document.Size,
		document.LockOwner,
		document.LockExpiresAt,
		document.CheckedOutBy,
		document.UpdatedAt,
		document.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update document")
	}

	return checkRowsAffected(result, "failed to update document")
}

// Get retrieves a Document by ID from the PostgreSQL database.
func (p *PostgreSQLDocumentRepository) Get(
	ctx context.Context,
	documentID uuid.UUID,
) (*documentDomain.Document, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`

	var document documentDomain.Document

	err := querier.QueryRowContext(ctx, query, documentID).Scan(
		&document.ID,
		&document.Name,
		&document.MimeType,
		&document.Size,
		&document.OwnerID,
		&document.LockOwner,
		&document.LockExpiresAt,
		&document.CheckedOutBy,
		&document.CreatedAt,
		&document.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, documentDomain.ErrDocumentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get document")
	}

	return &document, nil
}

// List retrieves documents ordered by ID descending with pagination support.
func (p *PostgreSQLDocumentRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*documentDomain.Document, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + documentColumns + ` FROM documents ORDER BY id DESC LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list documents")
	}
	defer func() {
		_ = rows.Close()
	}()

	documents := make([]*documentDomain.Document, 0)
	for rows.Next() {
		var document documentDomain.Document
		if err := rows.Scan(
			&document.ID,
			&document.Name,
			&document.MimeType,
			&document.Size,
			&document.OwnerID,
			&document.LockOwner,
			&document.LockExpiresAt,
			&document.CheckedOutBy,
			&document.CreatedAt,
			&document.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan document")
		}
		documents = append(documents, &document)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate documents")
	}

	return documents, nil
}

// Delete removes a Document by ID from the PostgreSQL database.
func (p *PostgreSQLDocumentRepository) Delete(ctx context.Context, documentID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, documentID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete document")
	}

	return checkRowsAffected(result, "failed to delete document")
}

// checkRowsAffected maps a statement that touched no rows to ErrDocumentNotFound.
func checkRowsAffected(result sql.Result, message string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, message)
	}
	if affected == 0 {
		return documentDomain.ErrDocumentNotFound
	}
	return nil
}

// NewPostgreSQLDocumentRepository creates a new PostgreSQL Document repository.
func NewPostgreSQLDocumentRepository(db *sql.DB) *PostgreSQLDocumentRepository {
	return &PostgreSQLDocumentRepository{db: db}
}
