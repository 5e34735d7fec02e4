package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authHTTP "github.com/allisson/wopihost/internal/auth/http"
	documentDomain "github.com/allisson/wopihost/internal/document/domain"
	documentMocks "github.com/allisson/wopihost/internal/document/usecase/mocks"
	wopiDomain "github.com/allisson/wopihost/internal/wopi/domain"
	"github.com/allisson/wopihost/internal/wopi/http/dto"
	"github.com/allisson/wopihost/internal/wopi/service"
	wopiMocks "github.com/allisson/wopihost/internal/wopi/usecase/mocks"
)

type testDeps struct {
	handler   *WOPIHandler
	sessions  *wopiMocks.MockSessionFacade
	documents *documentMocks.MockDocumentUseCase
}

func setupTestHandler(t *testing.T) *testDeps {
	t.Helper()

	gin.SetMode(gin.TestMode)

	urls, err := service.NewURLBuilder("https://docs.example.com", "https://office.example.com/browser/cool.html")
	require.NoError(t, err)

	sessions := &wopiMocks.MockSessionFacade{}
	documents := &documentMocks.MockDocumentUseCase{}
	t.Cleanup(func() {
		sessions.AssertExpectations(t)
		documents.AssertExpectations(t)
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &testDeps{
		handler:   NewWOPIHandler(sessions, documents, urls, logger),
		sessions:  sessions,
		documents: documents,
	}
}

func createTestContext(method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(body))
	return c, w
}

func newDocument() *documentDomain.Document {
	updatedAt := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	return &documentDomain.Document{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      "budget.xlsx",
		MimeType:  "application/vnd.ms-excel",
		Size:      42,
		OwnerID:   "alice",
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	}
}

func TestWOPIHandler_TokenHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		deps := setupTestHandler(t)
		documentID := uuid.Must(uuid.NewV7()).String()
		expiresAt := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)

		deps.sessions.On("IssueToken", mock.Anything, documentID, "alice").Return(&wopiDomain.IssueTokenOutput{
			AccessToken: &wopiDomain.AccessToken{Token: "token-1", ExpiresAt: expiresAt},
			WOPISrcURL:  "https://docs.example.com/wopi/files/" + documentID,
		}, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/wopi/token?fileId="+documentID+"&action=edit", nil)
		c.Request = c.Request.WithContext(authHTTP.WithUserID(c.Request.Context(), "alice"))

		deps.handler.TokenHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.TokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "token-1", response.AccessToken)
		assert.Equal(t, expiresAt.UnixMilli(), response.AccessTokenTTL)
		assert.Equal(t, "https://docs.example.com/wopi/files/"+documentID, response.WOPISrcURL)

		editorURL, err := url.Parse(response.EditorURL)
		require.NoError(t, err)
		assert.Equal(t, response.WOPISrcURL, editorURL.Query().Get("WOPISrc"))
		assert.Empty(t, editorURL.Query().Get("permission"))
	})

	t.Run("Error_InvalidAction", func(t *testing.T) {
		deps := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/wopi/token?fileId=doc-1&action=print", nil)
		c.Request = c.Request.WithContext(authHTTP.WithUserID(c.Request.Context(), "alice"))

		deps.handler.TokenHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_MissingFileID", func(t *testing.T) {
		deps := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/wopi/token?action=view", nil)
		c.Request = c.Request.WithContext(authHTTP.WithUserID(c.Request.Context(), "alice"))

		deps.handler.TokenHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_DocumentNotFound", func(t *testing.T) {
		deps := setupTestHandler(t)
		deps.sessions.On("IssueToken", mock.Anything, "missing", "alice").
			Return(nil, documentDomain.ErrDocumentNotFound).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/wopi/token?fileId=missing&action=view", nil)
		c.Request = c.Request.WithContext(authHTTP.WithUserID(c.Request.Context(), "alice"))

		deps.handler.TokenHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Error_Unauthenticated", func(t *testing.T) {
		deps := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/wopi/token?fileId=doc-1&action=view", nil)

		deps.handler.TokenHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestWOPIHandler_ServiceURLHandler(t *testing.T) {
	deps := setupTestHandler(t)

	c, w := createTestContext(http.MethodGet, "/v1/wopi/service-url", nil)

	deps.handler.ServiceURLHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"lool_host_url":"https://office.example.com"}`, w.Body.String())
}

func TestWOPIHandler_CheckFileInfoHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		deps := setupTestHandler(t)
		document := newDocument()
		fileID := document.ID.String()

		deps.sessions.On("OpenForRead", mock.Anything, fileID, "token-1").Return("bob", nil).Once()
		deps.documents.On("Get", mock.Anything, document.ID).Return(document, nil).Once()

		c, w := createTestContext(http.MethodGet, "/wopi/files/"+fileID+"?access_token=token-1", nil)
		c.Params = gin.Params{{Key: "fileId", Value: fileID}}

		deps.handler.CheckFileInfoHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.CheckFileInfoResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "budget", response.BaseFileName)
		assert.Equal(t, int64(42), response.Size)
		assert.Equal(t, "alice", response.OwnerID)
		assert.Equal(t, "bob", response.UserID)
		assert.True(t, response.UserCanWrite)
		assert.Equal(t, "2024-03-01T10:30:00.0000000Z", response.LastModifiedTime)
	})

	t.Run("Success_ReadOnlyWhileLockedByOtherUser", func(t *testing.T) {
		deps := setupTestHandler(t)
		document := newDocument()
		document.LockOwner = "carol"
		fileID := document.ID.String()

		deps.sessions.On("OpenForRead", mock.Anything, fileID, "token-1").Return("bob", nil).Once()
		deps.documents.On("Get", mock.Anything, document.ID).Return(document, nil).Once()

		c, w := createTestContext(http.MethodGet, "/wopi/files/"+fileID+"?access_token=token-1", nil)
		c.Params = gin.Params{{Key: "fileId", Value: fileID}}

		deps.handler.CheckFileInfoHandler(c)

		var response dto.CheckFileInfoResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.False(t, response.UserCanWrite)
	})

	t.Run("Error_InvalidToken", func(t *testing.T) {
		deps := setupTestHandler(t)
		deps.sessions.On("OpenForRead", mock.Anything, "doc-1", "stale").Return("", wopiDomain.ErrTokenExpired).Once()

		c, w := createTestContext(http.MethodGet, "/wopi/files/doc-1?access_token=stale", nil)
		c.Params = gin.Params{{Key: "fileId", Value: "doc-1"}}

		deps.handler.CheckFileInfoHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Error_MissingToken", func(t *testing.T) {
		deps := setupTestHandler(t)
		deps.sessions.On("OpenForRead", mock.Anything, "doc-1", "").
			Return("", wopiDomain.ErrInvalidRequestParameters).
			Once()

		c, w := createTestContext(http.MethodGet, "/wopi/files/doc-1", nil)
		c.Params = gin.Params{{Key: "fileId", Value: "doc-1"}}

		deps.handler.CheckFileInfoHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestWOPIHandler_GetFileHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		deps := setupTestHandler(t)
		document := newDocument()
		fileID := document.ID.String()

		deps.sessions.On("OpenForWrite", mock.Anything, fileID, "token-1").Return("bob", nil).Once()
		deps.documents.On("ReadContent", mock.Anything, document.ID).Return(document, []byte("cells"), nil).Once()

		c, w := createTestContext(http.MethodGet, "/wopi/files/"+fileID+"/contents?access_token=token-1", nil)
		c.Params = gin.Params{{Key: "fileId", Value: fileID}}

		deps.handler.GetFileHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "cells", w.Body.String())
		assert.Equal(t, "application/vnd.ms-excel", w.Header().Get("Content-Type"))
		assert.NotEmpty(t, w.Header().Get("X-WOPI-ItemVersion"))
	})

	t.Run("Error_ExclusivelyLocked", func(t *testing.T) {
		deps := setupTestHandler(t)
		deps.sessions.On("OpenForWrite", mock.Anything, "doc-1", "token-1").Return("", wopiDomain.ErrLockConflict).Once()

		c, w := createTestContext(http.MethodGet, "/wopi/files/doc-1/contents?access_token=token-1", nil)
		c.Params = gin.Params{{Key: "fileId", Value: "doc-1"}}

		deps.handler.GetFileHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestWOPIHandler_PutFileHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		deps := setupTestHandler(t)
		document := newDocument()
		fileID := document.ID.String()

		deps.sessions.On("OpenForWrite", mock.Anything, fileID, "token-1").Return("bob", nil).Once()
		deps.documents.On("WriteContent", mock.Anything, document.ID, "bob", []byte("edited")).
			Return(document, nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/wopi/files/"+fileID+"/contents?access_token=token-1", []byte("edited"))
		c.Request.Header.Set("X-WOPI-Override", "PUT")
		c.Params = gin.Params{{Key: "fileId", Value: fileID}}

		deps.handler.PutFileHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"LastModifiedTime":"2024-03-01T10:30:00.0000000Z"}`, w.Body.String())
	})

	t.Run("Error_MissingOverrideHeader", func(t *testing.T) {
		deps := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/wopi/files/doc-1/contents?access_token=token-1", []byte("x"))
		c.Params = gin.Params{{Key: "fileId", Value: "doc-1"}}

		deps.handler.PutFileHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_WrongOverrideHeader", func(t *testing.T) {
		deps := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/wopi/files/doc-1/contents?access_token=token-1", []byte("x"))
		c.Request.Header.Set("X-WOPI-Override", "LOCK")
		c.Params = gin.Params{{Key: "fileId", Value: "doc-1"}}

		deps.handler.PutFileHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestWOPIHandler_RemoveSessionHandler(t *testing.T) {
	t.Run("Success_Removed", func(t *testing.T) {
		deps := setupTestHandler(t)
		document := newDocument()
		fileID := document.ID.String()

		deps.documents.On("Get", mock.Anything, document.ID).Return(document, nil).Once()
		deps.sessions.On("Close", mock.Anything, fileID).Return(true, nil).Once()

		c, w := createTestContext(http.MethodDelete, "/wopi/session/"+fileID, nil)
		c.Params = gin.Params{{Key: "fileId", Value: fileID}}

		deps.handler.RemoveSessionHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.SessionRemovedResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.Removed)
		assert.Equal(t, "Lock removed for session: "+fileID, response.Message)
	})

	t.Run("Success_NothingToRemove", func(t *testing.T) {
		deps := setupTestHandler(t)
		document := newDocument()
		fileID := document.ID.String()

		deps.documents.On("Get", mock.Anything, document.ID).Return(document, nil).Once()
		deps.sessions.On("Close", mock.Anything, fileID).Return(false, nil).Once()

		c, w := createTestContext(http.MethodDelete, "/wopi/session/"+fileID, nil)
		c.Params = gin.Params{{Key: "fileId", Value: fileID}}

		deps.handler.RemoveSessionHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.SessionRemovedResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.False(t, response.Removed)
	})

	t.Run("Error_UnknownDocument", func(t *testing.T) {
		deps := setupTestHandler(t)
		documentID := uuid.Must(uuid.NewV7())
		deps.documents.On("Get", mock.Anything, documentID).Return(nil, documentDomain.ErrDocumentNotFound).Once()

		c, w := createTestContext(http.MethodDelete, "/wopi/session/"+documentID.String(), nil)
		c.Params = gin.Params{{Key: "fileId", Value: documentID.String()}}

		deps.handler.RemoveSessionHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Error_NonUUIDFileID", func(t *testing.T) {
		deps := setupTestHandler(t)

		c, w := createTestContext(http.MethodDelete, "/wopi/session/doc-1", nil)
		c.Params = gin.Params{{Key: "fileId", Value: "doc-1"}}

		deps.handler.RemoveSessionHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
