// Package http provides HTTP handlers for document management. All routes require an
// authenticated host user.
package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/wopihost/internal/auth/http"
	"github.com/allisson/wopihost/internal/document/http/dto"
	documentUseCase "github.com/allisson/wopihost/internal/document/usecase"
	apperrors "github.com/allisson/wopihost/internal/errors"
	"github.com/allisson/wopihost/internal/httputil"
	customValidation "github.com/allisson/wopihost/internal/validation"
)

// MaxContentBytes bounds uploaded document content.
const MaxContentBytes = 64 << 20

// DocumentHandler handles HTTP requests for document management operations.
type DocumentHandler struct {
	documentUseCase documentUseCase.DocumentUseCase
	logger          *slog.Logger
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler(documentUseCase documentUseCase.DocumentUseCase, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentUseCase: documentUseCase,
		logger:          logger,
	}
}

// userAndDocument extracts the authenticated user and the :id parameter. On failure it has
// already written the error response.
func (h *DocumentHandler) userAndDocument(c *gin.Context) (string, uuid.UUID, bool) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return "", uuid.Nil, false
	}

	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid document id format: must be a valid UUID"), h.logger)
		return "", uuid.Nil, false
	}

	return userID, documentID, true
}

// CreateHandler creates a document owned by the authenticated user.
// POST /v1/documents - Returns 201 Created with document metadata.
func (h *DocumentHandler) CreateHandler(c *gin.Context) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	document, err := h.documentUseCase.Create(c.Request.Context(), req.Name, req.MimeType, userID, req.Content)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapDocumentToResponse(document))
}

// GetHandler retrieves document metadata.
// GET /v1/documents/:id - Returns 200 OK.
func (h *DocumentHandler) GetHandler(c *gin.Context) {
	_, documentID, ok := h.userAndDocument(c)
	if !ok {
		return
	}

	document, err := h.documentUseCase.Get(c.Request.Context(), documentID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDocumentToResponse(document))
}

// ListHandler lists documents with offset/limit pagination.
// GET /v1/documents?offset=0&limit=50 - Returns 200 OK.
func (h *DocumentHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	documents, err := h.documentUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDocumentsToListResponse(documents))
}

// DeleteHandler deletes a document and its content.
// DELETE /v1/documents/:id - Returns 204 No Content, 423 Locked while a lock or an editing
// session is held.
func (h *DocumentHandler) DeleteHandler(c *gin.Context) {
	userID, documentID, ok := h.userAndDocument(c)
	if !ok {
		return
	}

	if err := h.documentUseCase.Delete(c.Request.Context(), documentID, userID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// LockHandler takes or refreshes an exclusive lock for the authenticated user.
// POST /v1/documents/:id/lock - Returns 200 OK with document metadata.
func (h *DocumentHandler) LockHandler(c *gin.Context) {
	userID, documentID, ok := h.userAndDocument(c)
	if !ok {
		return
	}

	var req dto.LockDocumentRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httputil.HandleBadRequestGin(c, err, h.logger)
			return
		}
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	ttl := time.Duration(req.TTLSeconds) * time.Second
	document, err := h.documentUseCase.Lock(c.Request.Context(), documentID, userID, ttl)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDocumentToResponse(document))
}

// UnlockHandler releases the authenticated user's exclusive lock.
// DELETE /v1/documents/:id/lock - Returns 200 OK with document metadata.
func (h *DocumentHandler) UnlockHandler(c *gin.Context) {
	userID, documentID, ok := h.userAndDocument(c)
	if !ok {
		return
	}

	document, err := h.documentUseCase.Unlock(c.Request.Context(), documentID, userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDocumentToResponse(document))
}

// CheckOutHandler checks the document out to the authenticated user.
// POST /v1/documents/:id/checkout - Returns 200 OK with document metadata.
func (h *DocumentHandler) CheckOutHandler(c *gin.Context) {
	userID, documentID, ok := h.userAndDocument(c)
	if !ok {
		return
	}

	document, err := h.documentUseCase.CheckOut(c.Request.Context(), documentID, userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDocumentToResponse(document))
}

// CheckInHandler clears the authenticated user's checkout.
// POST /v1/documents/:id/checkin - Returns 200 OK with document metadata.
func (h *DocumentHandler) CheckInHandler(c *gin.Context) {
	userID, documentID, ok := h.userAndDocument(c)
	if !ok {
		return
	}

	document, err := h.documentUseCase.CheckIn(c.Request.Context(), documentID, userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDocumentToResponse(document))
}

// MoveHandler renames the document.
// POST /v1/documents/:id/move - Returns 200 OK with document metadata.
func (h *DocumentHandler) MoveHandler(c *gin.Context) {
	userID, documentID, ok := h.userAndDocument(c)
	if !ok {
		return
	}

	var req dto.MoveDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	document, err := h.documentUseCase.Move(c.Request.Context(), documentID, userID, req.Name)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDocumentToResponse(document))
}

// GetContentHandler streams the document bytes.
// GET /v1/documents/:id/content - Returns 200 OK with the document's MIME type.
func (h *DocumentHandler) GetContentHandler(c *gin.Context) {
	_, documentID, ok := h.userAndDocument(c)
	if !ok {
		return
	}

	document, data, err := h.documentUseCase.ReadContent(c.Request.Context(), documentID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	contentType := document.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", document.Name))
	c.Data(http.StatusOK, contentType, data)
}

// PutContentHandler replaces the document bytes with the raw request body.
// PUT /v1/documents/:id/content - Returns 200 OK with document metadata.
func (h *DocumentHandler) PutContentHandler(c *gin.Context) {
	userID, documentID, ok := h.userAndDocument(c)
	if !ok {
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxContentBytes))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("failed to read request body: %w", err), h.logger)
		return
	}

	document, err := h.documentUseCase.WriteContent(c.Request.Context(), documentID, userID, data)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDocumentToResponse(document))
}
