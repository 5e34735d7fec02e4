package usecase

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"strings"
	"sync"
	"time"

	apperrors "github.com/allisson/wopihost/internal/errors"
	wopiDomain "github.com/allisson/wopihost/internal/wopi/domain"
	"github.com/allisson/wopihost/internal/wopi/service"
)

// documentTokens holds the tokens of one document keyed by user id. removed is set when the
// entry has been dropped from the registry; holders that see it must look the entry up again.
type documentTokens struct {
	mu      sync.Mutex
	removed bool
	byUser  map[string]*wopiDomain.AccessToken
}

// tokenStore implements TokenStore.
type tokenStore struct {
	documents sync.Map // documentID -> *documentTokens
	generator service.TokenGenerator
	clock     service.Clock
	ttl       time.Duration
	logger    *slog.Logger
}

// lockOrCreate returns the locked entry of the document, creating it when missing.
func (s *tokenStore) lockOrCreate(documentID string) *documentTokens {
	for {
		value, _ := s.documents.LoadOrStore(documentID, &documentTokens{
			byUser: make(map[string]*wopiDomain.AccessToken),
		})
		entry := value.(*documentTokens)
		entry.mu.Lock()
		if !entry.removed {
			return entry
		}
		entry.mu.Unlock()
	}
}

// lockExisting returns the locked entry of the document, or false when none exists.
func (s *tokenStore) lockExisting(documentID string) (*documentTokens, bool) {
	for {
		value, ok := s.documents.Load(documentID)
		if !ok {
			return nil, false
		}
		entry := value.(*documentTokens)
		entry.mu.Lock()
		if !entry.removed {
			return entry, true
		}
		entry.mu.Unlock()
	}
}

// unlock releases the entry and drops it from the registry once it holds no tokens.
func (s *tokenStore) unlock(documentID string, entry *documentTokens) {
	if len(entry.byUser) == 0 {
		entry.removed = true
		s.documents.Delete(documentID)
	}
	entry.mu.Unlock()
}

// CreateOrRenew renews the live token of the pair in place or issues a new one. A token that
// is no longer valid is replaced.
func (s *tokenStore) CreateOrRenew(
	ctx context.Context,
	documentID, userID string,
) (*wopiDomain.AccessToken, error) {
	if strings.TrimSpace(documentID) == "" || strings.TrimSpace(userID) == "" {
		return nil, wopiDomain.ErrInvalidRequestParameters
	}

	entry := s.lockOrCreate(documentID)
	defer s.unlock(documentID, entry)

	now := s.clock.Now()

	if existing, ok := entry.byUser[userID]; ok {
		if existing.IsValid(now) {
			existing.ExpiresAt = now.Add(s.ttl)
			s.logger.Debug("access token renewed",
				slog.String("document_id", documentID),
				slog.String("user_id", userID),
				slog.Time("expires_at", existing.ExpiresAt),
			)
			copied := *existing
			return &copied, nil
		}
		delete(entry.byUser, userID)
	}

	value, err := s.generator.Generate()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to issue access token")
	}

	token := &wopiDomain.AccessToken{
		Token:      value,
		IssuedAt:   now,
		ExpiresAt:  now.Add(s.ttl),
		DocumentID: documentID,
		UserID:     userID,
	}
	entry.byUser[userID] = token

	s.logger.Debug("access token issued",
		slog.String("document_id", documentID),
		slog.String("user_id", userID),
		slog.Time("expires_at", token.ExpiresAt),
	)

	copied := *token
	return &copied, nil
}

// Resolve returns a copy of the token matching tokenValue on the document.
func (s *tokenStore) Resolve(
	ctx context.Context,
	tokenValue, documentID string,
) (*wopiDomain.AccessToken, error) {
	if tokenValue == "" {
		return nil, wopiDomain.ErrTokenNotFound
	}

	entry, ok := s.lockExisting(documentID)
	if !ok {
		return nil, wopiDomain.ErrTokenNotFound
	}
	defer s.unlock(documentID, entry)

	for userID, token := range entry.byUser {
		if subtle.ConstantTimeCompare([]byte(token.Token), []byte(tokenValue)) != 1 {
			continue
		}
		if !token.IsValid(s.clock.Now()) {
			delete(entry.byUser, userID)
			return nil, wopiDomain.ErrTokenExpired
		}
		copied := *token
		return &copied, nil
	}

	return nil, wopiDomain.ErrTokenNotFound
}

// Revoke removes the token of the pair. It reports whether a token was removed.
func (s *tokenStore) Revoke(ctx context.Context, documentID, userID string) bool {
	entry, ok := s.lockExisting(documentID)
	if !ok {
		return false
	}
	defer s.unlock(documentID, entry)

	if _, found := entry.byUser[userID]; !found {
		return false
	}
	delete(entry.byUser, userID)
	return true
}

// PurgeExpired removes every expired token and returns how many were removed.
func (s *tokenStore) PurgeExpired(ctx context.Context) int {
	var documentIDs []string
	s.documents.Range(func(key, _ any) bool {
		documentIDs = append(documentIDs, key.(string))
		return true
	})

	removed := 0
	for _, documentID := range documentIDs {
		entry, ok := s.lockExisting(documentID)
		if !ok {
			continue
		}
		now := s.clock.Now()
		for userID, token := range entry.byUser {
			if token.IsExpired(now) {
				delete(entry.byUser, userID)
				removed++
			}
		}
		s.unlock(documentID, entry)
	}
	return removed
}

// Len returns the number of stored tokens, expired ones included.
func (s *tokenStore) Len() int {
	total := 0
	s.documents.Range(func(_, value any) bool {
		entry := value.(*documentTokens)
		entry.mu.Lock()
		total += len(entry.byUser)
		entry.mu.Unlock()
		return true
	})
	return total
}

// NewTokenStore creates a TokenStore issuing tokens valid for ttl. A non-positive ttl
// falls back to the default of 24 hours.
func NewTokenStore(
	generator service.TokenGenerator,
	clock service.Clock,
	ttl time.Duration,
	logger *slog.Logger,
) TokenStore {
	if ttl <= 0 {
		ttl = wopiDomain.DefaultTokenTTL
	}
	return &tokenStore{
		generator: generator,
		clock:     clock,
		ttl:       ttl,
		logger:    logger,
	}
}
