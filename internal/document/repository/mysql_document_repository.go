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

// MySQLDocumentRepository implements Document persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLDocumentRepository struct {
	db *sql.DB
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanMySQLDocument reads one document row, unmarshaling the BINARY(16) id.
func scanMySQLDocument(scanner rowScanner) (*documentDomain.Document, error) {
	var document documentDomain.Document
	var idBytes []byte

	if err := scanner.Scan(
		&idBytes,
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
		return nil, err
	}

	if err := document.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal document id")
	}

	return &document, nil
}

// Create inserts a new Document into the MySQL database.
func (m *MySQLDocumentRepository) Create(ctx context.Context, document *documentDomain.Document) error {
	querier := database.GetTx(ctx, m.db)

	id, err := document.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal document id")
	}

	query := `INSERT INTO documents (` + documentColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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

// Update modifies an existing Document in the MySQL database.
func (m *MySQLDocumentRepository) Update(ctx context.Context, document *documentDomain.Document) error {
	querier := database.GetTx(ctx, m.db)

	id, err := document.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal document id")
	}

	query := `UPDATE documents
			  SET name = ?,
				  mime_type = ?,
				  size = ?,
				  lock_owner = ?,
				  lock_expires_at = ?,
				  checked_out_by = ?,
				  updated_at = ?
			  WHERE id = ?`

	_, err = querier.ExecContext(
		ctx,
		query,
		document.Name,
		document.MimeType,
		document.Size,
		document.LockOwner,
		document.LockExpiresAt,
		document.CheckedOutBy,
		document.UpdatedAt,
		id,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update document")
	}

	// MySQL reports changed rows, not matched rows, so an unchanged row cannot be told apart
	// from a missing one here.
	return nil
}

// Get retrieves a Document by ID from the MySQL database.
func (m *MySQLDocumentRepository) Get(
	ctx context.Context,
	documentID uuid.UUID,
) (*documentDomain.Document, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := documentID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal document id")
	}

	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = ?`

	document, err := scanMySQLDocument(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, documentDomain.ErrDocumentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get document")
	}

	return document, nil
}

// List retrieves documents ordered by ID descending with pagination support.
func (m *MySQLDocumentRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*documentDomain.Document, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + documentColumns + ` FROM documents ORDER BY id DESC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list documents")
	}
	defer func() {
		_ = rows.Close()
	}()

	documents := make([]*documentDomain.Document, 0)
	for rows.Next() {
		document, err := scanMySQLDocument(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan document")
		}
		documents = append(documents, document)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate documents")
	}

	return documents, nil
}

// Delete removes a Document by ID from the MySQL database.
func (m *MySQLDocumentRepository) Delete(ctx context.Context, documentID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := documentID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal document id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete document")
	}

	return checkRowsAffected(result, "failed to delete document")
}

// NewMySQLDocumentRepository creates a new MySQL Document repository.
func NewMySQLDocumentRepository(db *sql.DB) *MySQLDocumentRepository {
	return &MySQLDocumentRepository{db: db}
}
