// Package domain defines the WOPI session domain models: access tokens scoped to one
// (document, user) pair and the collaborative lock that marks an open editing session.
package domain

import "time"

// DefaultTokenTTL is the lifetime of an access token after issuance or renewal.
const DefaultTokenTTL = 24 * time.Hour

// Action is the editor action a token is requested for.
type Action string

const (
	// ViewAction opens the document read-only in the editor.
	ViewAction Action = "view"

	// EditAction opens the document for collaborative editing.
	EditAction Action = "edit"
)
