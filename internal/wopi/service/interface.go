// Package service provides technical services for the WOPI session layer: access token
// generation, a monotonic clock, and editor URL construction.
package service

import "time"

// TokenGenerator produces opaque, unguessable access token values.
// Implementations must draw at least 128 bits from a cryptographically secure source.
type TokenGenerator interface {
	// Generate returns a new token value. An error means the entropy source failed;
	// callers must abort the operation rather than retry with a weaker value.
	Generate() (string, error)
}

// Clock is the time source used for token issuance and expiry checks.
type Clock interface {
	Now() time.Time
}
