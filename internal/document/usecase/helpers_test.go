package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"

	documentDomain "github.com/allisson/wopihost/internal/document/domain"
	"github.com/allisson/wopihost/internal/document/service"
	wopiService "github.com/allisson/wopihost/internal/wopi/service"
	wopiUsecase "github.com/allisson/wopihost/internal/wopi/usecase"
)

// passthroughTxManager runs fn without a transaction.
type passthroughTxManager struct{}

func (passthroughTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// memoryDocumentRepository is an in-memory DocumentRepository.
type memoryDocumentRepository struct {
	mu        sync.Mutex
	documents map[uuid.UUID]documentDomain.Document
}

func newMemoryDocumentRepository() *memoryDocumentRepository {
	return &memoryDocumentRepository{documents: make(map[uuid.UUID]documentDomain.Document)}
}

func (r *memoryDocumentRepository) Create(ctx context.Context, document *documentDomain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.documents[document.ID] = *document
	return nil
}

func (r *memoryDocumentRepository) Update(ctx context.Context, document *documentDomain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.documents[document.ID]; !ok {
		return documentDomain.ErrDocumentNotFound
	}
	r.documents[document.ID] = *document
	return nil
}

func (r *memoryDocumentRepository) Get(ctx context.Context, documentID uuid.UUID) (*documentDomain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	document, ok := r.documents[documentID]
	if !ok {
		return nil, documentDomain.ErrDocumentNotFound
	}
	return &document, nil
}

func (r *memoryDocumentRepository) List(ctx context.Context, offset, limit int) ([]*documentDomain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	documents := make([]*documentDomain.Document, 0, len(r.documents))
	for _, document := range r.documents {
		copied := document
		documents = append(documents, &copied)
	}
	return documents, nil
}

func (r *memoryDocumentRepository) Delete(ctx context.Context, documentID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.documents[documentID]; !ok {
		return documentDomain.ErrDocumentNotFound
	}
	delete(r.documents, documentID)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testEnv wires the document lock service to a real lock coordinator over in-memory storage.
type testEnv struct {
	repo        *memoryDocumentRepository
	content     service.ContentStore
	coordinator wopiUsecase.LockCoordinator
	useCase     DocumentUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := newMemoryDocumentRepository()
	content := service.NewContentStoreFromBucket(memblob.OpenBucket(nil), nil)
	t.Cleanup(func() {
		_ = content.Close()
	})

	coordinator := wopiUsecase.NewLockCoordinator(
		NewDocumentReader(repo),
		wopiService.NewMonotonicClock(nil),
		discardLogger(),
	)

	return &testEnv{
		repo:        repo,
		content:     content,
		coordinator: coordinator,
		useCase:     NewDocumentUseCase(passthroughTxManager{}, repo, content, coordinator, discardLogger()),
	}
}

func (e *testEnv) createDocument(t *testing.T, name string) *documentDomain.Document {
	t.Helper()
	document, err := e.useCase.Create(context.Background(), name, "text/plain", "owner", []byte("initial"))
	require.NoError(t, err)
	return document
}
