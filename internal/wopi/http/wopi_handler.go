// Package http provides the WOPI HTTP surface: the token endpoint used by the host front end,
// the /wopi/files endpoints called by the editor, and the session lock remover.
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
	documentDomain "github.com/allisson/wopihost/internal/document/domain"
	documentUseCase "github.com/allisson/wopihost/internal/document/usecase"
	apperrors "github.com/allisson/wopihost/internal/errors"
	"github.com/allisson/wopihost/internal/httputil"
	customValidation "github.com/allisson/wopihost/internal/validation"
	wopiDomain "github.com/allisson/wopihost/internal/wopi/domain"
	"github.com/allisson/wopihost/internal/wopi/http/dto"
	"github.com/allisson/wopihost/internal/wopi/service"
	wopiUseCase "github.com/allisson/wopihost/internal/wopi/usecase"
)

// MaxContentBytes bounds PutFile bodies.
const MaxContentBytes = 64 << 20

// WOPIHandler handles the WOPI endpoints.
type WOPIHandler struct {
	sessions  wopiUseCase.SessionFacade
	documents documentUseCase.DocumentUseCase
	urls      *service.URLBuilder
	logger    *slog.Logger
}

// NewWOPIHandler creates a new WOPI handler.
func NewWOPIHandler(
	sessions wopiUseCase.SessionFacade,
	documents documentUseCase.DocumentUseCase,
	urls *service.URLBuilder,
	logger *slog.Logger,
) *WOPIHandler {
	return &WOPIHandler{
		sessions:  sessions,
		documents: documents,
		urls:      urls,
		logger:    logger,
	}
}

// parseDocumentID maps a WOPI file id to a document id. Ids that are not UUIDs name no
// document.
func parseDocumentID(fileID string) (uuid.UUID, error) {
	documentID, err := uuid.Parse(fileID)
	if err != nil {
		return uuid.Nil, documentDomain.ErrDocumentNotFound
	}
	return documentID, nil
}

// TokenHandler issues or renews the caller's access token for a document.
// GET /v1/wopi/token?fileId=<id>&action=view|edit - Requires an authenticated host user.
func (h *WOPIHandler) TokenHandler(c *gin.Context) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.TokenRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.sessions.IssueToken(c.Request.Context(), req.FileID, userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	editorURL := h.urls.EditorURL(req.FileID, wopiDomain.Action(req.Action))
	c.JSON(http.StatusOK, dto.MapTokenToResponse(output, editorURL))
}

// ServiceURLHandler returns the editor service URL.
// GET /v1/wopi/service-url
func (h *WOPIHandler) ServiceURLHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ServiceURLResponse{LoolHostURL: h.urls.ServiceURL()})
}

// CheckFileInfoHandler implements WOPI CheckFileInfo. It validates the token without taking
// the collaborative lock.
// GET /wopi/files/:fileId?access_token=<token>
func (h *WOPIHandler) CheckFileInfoHandler(c *gin.Context) {
	fileID := c.Param("fileId")

	userID, err := h.sessions.OpenForRead(c.Request.Context(), fileID, c.Query("access_token"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	documentID, err := parseDocumentID(fileID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	document, err := h.documents.Get(c.Request.Context(), documentID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDocumentToCheckFileInfo(document, userID, time.Now().UTC()))
}

// GetFileHandler implements WOPI GetFile. Loading the document into the editor opens the
// collaborative editing session.
// GET /wopi/files/:fileId/contents?access_token=<token>
func (h *WOPIHandler) GetFileHandler(c *gin.Context) {
	fileID := c.Param("fileId")

	userID, err := h.sessions.OpenForWrite(c.Request.Context(), fileID, c.Query("access_token"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	documentID, err := parseDocumentID(fileID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	document, data, err := h.documents.ReadContent(c.Request.Context(), documentID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Debug("document served to editor",
		slog.String("document_id", fileID),
		slog.String("user_id", userID),
	)

	contentType := document.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("X-WOPI-ItemVersion", dto.FormatVersion(document.UpdatedAt))
	c.Data(http.StatusOK, contentType, data)
}

// PutFileHandler implements WOPI PutFile. The X-WOPI-Override header must be PUT.
// POST /wopi/files/:fileId/contents?access_token=<token>
func (h *WOPIHandler) PutFileHandler(c *gin.Context) {
	fileID := c.Param("fileId")

	if c.GetHeader("X-WOPI-Override") != "PUT" {
		httputil.HandleBadRequestGin(c, fmt.Errorf("X-WOPI-Override header must be present and equal to 'PUT'"), h.logger)
		return
	}

	userID, err := h.sessions.OpenForWrite(c.Request.Context(), fileID, c.Query("access_token"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	documentID, err := parseDocumentID(fileID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxContentBytes))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("failed to read request body: %w", err), h.logger)
		return
	}

	document, err := h.documents.WriteContent(c.Request.Context(), documentID, userID, data)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("X-WOPI-ItemVersion", dto.FormatVersion(document.UpdatedAt))
	c.JSON(http.StatusOK, dto.PutFileResponse{LastModifiedTime: dto.FormatWOPITime(document.UpdatedAt)})
}

// RemoveSessionHandler ends the collaborative editing session of a document. The editor-side
// session watcher calls it when the last editor closes the document.
// DELETE /wopi/session/:fileId - Returns 404 when the document does not exist.
func (h *WOPIHandler) RemoveSessionHandler(c *gin.Context) {
	fileID := c.Param("fileId")

	documentID, err := parseDocumentID(fileID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if _, err := h.documents.Get(c.Request.Context(), documentID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	removed, err := h.sessions.Close(c.Request.Context(), fileID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("session lock removal requested",
		slog.String("document_id", fileID),
		slog.Bool("removed", removed),
	)

	message := "Lock removed for session: " + fileID
	if !removed {
		message = "No collaborative lock held for session: " + fileID
	}
	c.JSON(http.StatusOK, dto.SessionRemovedResponse{Removed: removed, Message: message})
}
