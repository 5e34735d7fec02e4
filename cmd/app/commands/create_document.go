package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/allisson/wopihost/internal/document/domain"
	documentUseCase "github.com/allisson/wopihost/internal/document/usecase"
)

// CreateDocumentInput holds the create-document flags.
type CreateDocumentInput struct {
	// Path of the file to import. "-" reads from the command reader.
	Path     string
	Name     string
	MimeType string
	OwnerID  string
	Format   string
}

// RunCreateDocument imports a file as a new document. The name defaults to the file's base
// name and the MIME type to the one registered for its extension, falling back to content
// sniffing.
func RunCreateDocument(
	ctx context.Context,
	useCase documentUseCase.DocumentUseCase,
	logger *slog.Logger,
	cmdIO IOTuple,
	input CreateDocumentInput,
) error {
	if err := validateFormat(input.Format); err != nil {
		return err
	}

	content, err := readContent(input.Path, cmdIO.Reader)
	if err != nil {
		return err
	}

	name := input.Name
	if name == "" && input.Path != "-" {
		name = filepath.Base(input.Path)
	}

	mimeType := input.MimeType
	if mimeType == "" {
		mimeType = detectMimeType(name, content)
	}

	document, err := useCase.Create(ctx, name, mimeType, input.OwnerID, content)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	logger.Info("document created",
		slog.String("document_id", document.ID.String()),
		slog.String("owner_id", document.OwnerID),
		slog.Int64("size", document.Size),
	)

	if input.Format == "json" {
		return outputDocumentJSON(cmdIO.Writer, document)
	}
	return outputDocumentText(cmdIO.Writer, document)
}

func readContent(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		if stdin == nil {
			return nil, fmt.Errorf("no input reader available for '-'")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read content from input: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}
	return data, nil
}

func detectMimeType(name string, content []byte) string {
	if byExtension := mime.TypeByExtension(filepath.Ext(name)); byExtension != "" {
		return byExtension
	}
	return http.DetectContentType(content)
}

func outputDocumentText(w io.Writer, document *domain.Document) error {
	_, err := fmt.Fprintf(w,
		"Document created\n  ID:        %s\n  Name:      %s\n  MIME type: %s\n  Size:      %d\n  Owner:     %s\n",
		document.ID, document.Name, document.MimeType, document.Size, document.OwnerID,
	)
	return err
}

func outputDocumentJSON(w io.Writer, document *domain.Document) error {
	return writeJSON(w, map[string]any{
		"id":        document.ID.String(),
		"name":      document.Name,
		"mime_type": document.MimeType,
		"size":      document.Size,
		"owner_id":  document.OwnerID,
	})
}
