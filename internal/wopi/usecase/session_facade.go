package usecase

import (
	"context"
	"log/slog"
	"strings"

	wopiDomain "github.com/allisson/wopihost/internal/wopi/domain"
	"github.com/allisson/wopihost/internal/wopi/service"
)

// sessionFacade implements SessionFacade by composing the token store and lock coordinator.
type sessionFacade struct {
	tokens    TokenStore
	locks     LockCoordinator
	documents DocumentReader
	urls      *service.URLBuilder
	logger    *slog.Logger
}

// IssueToken creates or renews the token of the pair once the document is known to exist.
func (f *sessionFacade) IssueToken(
	ctx context.Context,
	documentID, userID string,
) (*wopiDomain.IssueTokenOutput, error) {
	if strings.TrimSpace(documentID) == "" || strings.TrimSpace(userID) == "" {
		return nil, wopiDomain.ErrInvalidRequestParameters
	}

	if _, err := f.documents.Get(ctx, documentID); err != nil {
		return nil, err
	}

	token, err := f.tokens.CreateOrRenew(ctx, documentID, userID)
	if err != nil {
		return nil, err
	}

	return &wopiDomain.IssueTokenOutput{
		AccessToken: token,
		WOPISrcURL:  f.urls.WOPISrc(documentID),
	}, nil
}

// OpenForWrite resolves the token and acquires the collaborative lock for its user.
func (f *sessionFacade) OpenForWrite(ctx context.Context, documentID, tokenValue string) (string, error) {
	token, err := f.resolve(ctx, documentID, tokenValue)
	if err != nil {
		return "", err
	}

	if err := f.locks.Acquire(ctx, documentID, token.UserID); err != nil {
		return "", err
	}

	return token.UserID, nil
}

// OpenForRead resolves the token without touching locks.
func (f *sessionFacade) OpenForRead(ctx context.Context, documentID, tokenValue string) (string, error) {
	token, err := f.resolve(ctx, documentID, tokenValue)
	if err != nil {
		return "", err
	}
	return token.UserID, nil
}

// Close releases the collaborative lock. Closing an unlocked document returns false.
func (f *sessionFacade) Close(ctx context.Context, documentID string) (bool, error) {
	return f.locks.Release(ctx, documentID)
}

// IsLocked reports whether userID is blocked from editing the document.
func (f *sessionFacade) IsLocked(ctx context.Context, documentID, userID string) (bool, error) {
	return f.locks.IsLocked(ctx, documentID, userID)
}

func (f *sessionFacade) resolve(
	ctx context.Context,
	documentID, tokenValue string,
) (*wopiDomain.AccessToken, error) {
	if strings.TrimSpace(documentID) == "" || tokenValue == "" {
		return nil, wopiDomain.ErrInvalidRequestParameters
	}

	token, err := f.tokens.Resolve(ctx, tokenValue, documentID)
	if err != nil {
		f.logger.Debug("access token rejected",
			slog.String("document_id", documentID),
			slog.Any("error", err),
		)
		return nil, err
	}
	return token, nil
}

// NewSessionFacade creates a SessionFacade.
func NewSessionFacade(
	tokens TokenStore,
	locks LockCoordinator,
	documents DocumentReader,
	urls *service.URLBuilder,
	logger *slog.Logger,
) SessionFacade {
	return &sessionFacade{
		tokens:    tokens,
		locks:     locks,
		documents: documents,
		urls:      urls,
		logger:    logger,
	}
}
