package service

import (
	"crypto/rand"
	"encoding/base64"
	"io"

	apperrors "github.com/allisson/wopihost/internal/errors"
)

// tokenBytes is the amount of randomness per token (256 bits).
const tokenBytes = 32

// randomTokenGenerator implements TokenGenerator on top of crypto/rand.
type randomTokenGenerator struct {
	reader io.Reader
}

// Generate reads 32 random bytes and encodes them as unpadded base64url so the value can
// travel in a query string without escaping.
func (g *randomTokenGenerator) Generate() (string, error) {
	randomBytes := make([]byte, tokenBytes)
	if _, err := io.ReadFull(g.reader, randomBytes); err != nil {
		return "", apperrors.Wrap(err, "failed to generate access token")
	}
	return base64.RawURLEncoding.EncodeToString(randomBytes), nil
}

// NewTokenGenerator creates a TokenGenerator backed by crypto/rand.
func NewTokenGenerator() TokenGenerator {
	return &randomTokenGenerator{reader: rand.Reader}
}

// NewTokenGeneratorWithReader creates a TokenGenerator reading from r. Used by tests to
// simulate a failing entropy source.
func NewTokenGeneratorWithReader(r io.Reader) TokenGenerator {
	return &randomTokenGenerator{reader: r}
}

// CheckTokenGenerator draws two tokens and verifies they are non-empty and distinct.
// Run at startup; a failure is fatal for the process.
func CheckTokenGenerator(g TokenGenerator) error {
	first, err := g.Generate()
	if err != nil {
		return err
	}
	second, err := g.Generate()
	if err != nil {
		return err
	}
	if first == "" || first == second {
		return apperrors.New("token generator returned repeated values")
	}
	return nil
}
