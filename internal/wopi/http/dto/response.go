package dto

import (
	"time"

	documentDomain "github.com/allisson/wopihost/internal/document/domain"
	wopiDomain "github.com/allisson/wopihost/internal/wopi/domain"
)

// TokenResponse is returned to the host front end. AccessTokenTTL is the expiry instant in
// epoch milliseconds, as WOPI clients expect.
type TokenResponse struct {
	AccessToken    string `json:"access_token"`
	AccessTokenTTL int64  `json:"access_token_ttl"`
	WOPISrcURL     string `json:"wopi_src_url"`
	EditorURL      string `json:"editor_url"`
}

// ServiceURLResponse carries the editor service URL.
type ServiceURLResponse struct {
	LoolHostURL string `json:"lool_host_url"`
}

// CheckFileInfoResponse is the WOPI CheckFileInfo payload. Field names follow the WOPI
// protocol.
type CheckFileInfoResponse struct {
	BaseFileName     string `json:"BaseFileName"`
	Size             int64  `json:"Size"`
	OwnerID          string `json:"OwnerId"`
	UserID           string `json:"UserId"`
	UserCanWrite     bool   `json:"UserCanWrite"`
	LastModifiedTime string `json:"LastModifiedTime"`
	Version          string `json:"Version"`
}

// PutFileResponse is returned after a successful PutFile.
type PutFileResponse struct {
	LastModifiedTime string `json:"LastModifiedTime"`
}

// SessionRemovedResponse is returned by the session lock remover.
type SessionRemovedResponse struct {
	Removed bool   `json:"removed"`
	Message string `json:"message"`
}

// MapTokenToResponse converts an issued token to the token endpoint response.
func MapTokenToResponse(output *wopiDomain.IssueTokenOutput, editorURL string) TokenResponse {
	return TokenResponse{
		AccessToken:    output.AccessToken.Token,
		AccessTokenTTL: output.AccessToken.ExpiresAtMillis(),
		WOPISrcURL:     output.WOPISrcURL,
		EditorURL:      editorURL,
	}
}

// MapDocumentToCheckFileInfo converts a document to the CheckFileInfo payload for userID.
func MapDocumentToCheckFileInfo(
	document *documentDomain.Document,
	userID string,
	now time.Time,
) CheckFileInfoResponse {
	return CheckFileInfoResponse{
		BaseFileName:     document.BaseFileName(),
		Size:             document.Size,
		OwnerID:          document.OwnerID,
		UserID:           userID,
		UserCanWrite:     document.LockStatusFor(userID, now) != documentDomain.Locked,
		LastModifiedTime: FormatWOPITime(document.UpdatedAt),
		Version:          FormatVersion(document.UpdatedAt),
	}
}

// FormatWOPITime formats t as the ISO 8601 UTC timestamp WOPI clients expect.
func FormatWOPITime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.0000000Z")
}

// FormatVersion derives an opaque version string that changes whenever the document does.
func FormatVersion(t time.Time) string {
	return t.UTC().Format("20060102150405.000000000")
}
