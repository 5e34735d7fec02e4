package domain

import "time"

// AccessToken is a bearer token granting one user access to one document through
// the WOPI endpoints. Only ExpiresAt changes over the token's life.
type AccessToken struct {
	Token      string
	IssuedAt   time.Time
	ExpiresAt  time.Time
	DocumentID string
	UserID     string
}

// IsValid reports whether the token is usable at now. The validity window is open
// on both ends: a token is invalid at exactly IssuedAt and at exactly ExpiresAt.
func (a *AccessToken) IsValid(now time.Time) bool {
	return now.After(a.IssuedAt) && now.Before(a.ExpiresAt)
}

// IsExpired reports whether the token has reached its expiry at now.
func (a *AccessToken) IsExpired(now time.Time) bool {
	return !now.Before(a.ExpiresAt)
}

// ExpiresAtMillis returns the expiry as epoch milliseconds, the unit WOPI clients expect
// for access_token_ttl.
func (a *AccessToken) ExpiresAtMillis() int64 {
	return a.ExpiresAt.UnixMilli()
}

// IssueTokenOutput is returned to the host front end when a token is requested.
type IssueTokenOutput struct {
	AccessToken *AccessToken
	WOPISrcURL  string
}
