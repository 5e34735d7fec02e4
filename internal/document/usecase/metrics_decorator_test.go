package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	documentDomain "github.com/allisson/wopihost/internal/document/domain"
	"github.com/allisson/wopihost/internal/document/usecase/mocks"
)

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func expectMetrics(ctx context.Context, m *mockBusinessMetrics, operation, status string) {
	m.On("RecordOperation", ctx, "documents", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "documents", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestDocumentUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	documentID := uuid.Must(uuid.NewV7())

	t.Run("Success_Lock", func(t *testing.T) {
		useCase := &mocks.MockDocumentUseCase{}
		m := &mockBusinessMetrics{}
		decorator := NewDocumentUseCaseWithMetrics(useCase, m)

		expected := &documentDomain.Document{ID: documentID, LockOwner: "alice"}
		useCase.On("Lock", ctx, documentID, "alice", time.Hour).Return(expected, nil).Once()
		expectMetrics(ctx, m, "document_lock", "success")

		document, err := decorator.Lock(ctx, documentID, "alice", time.Hour)
		require.NoError(t, err)
		assert.Equal(t, expected, document)

		useCase.AssertExpectations(t)
		m.AssertExpectations(t)
	})

	t.Run("Error_Delete", func(t *testing.T) {
		useCase := &mocks.MockDocumentUseCase{}
		m := &mockBusinessMetrics{}
		decorator := NewDocumentUseCaseWithMetrics(useCase, m)

		useCase.On("Delete", ctx, documentID, "alice").Return(documentDomain.ErrDocumentLocked).Once()
		expectMetrics(ctx, m, "document_delete", "error")

		err := decorator.Delete(ctx, documentID, "alice")
		assert.ErrorIs(t, err, documentDomain.ErrDocumentLocked)

		useCase.AssertExpectations(t)
		m.AssertExpectations(t)
	})

	t.Run("Success_ReadContent", func(t *testing.T) {
		useCase := &mocks.MockDocumentUseCase{}
		m := &mockBusinessMetrics{}
		decorator := NewDocumentUseCaseWithMetrics(useCase, m)

		expected := &documentDomain.Document{ID: documentID}
		useCase.On("ReadContent", ctx, documentID).Return(expected, []byte("data"), nil).Once()
		expectMetrics(ctx, m, "content_read", "success")

		document, data, err := decorator.ReadContent(ctx, documentID)
		require.NoError(t, err)
		assert.Equal(t, expected, document)
		assert.Equal(t, []byte("data"), data)

		useCase.AssertExpectations(t)
		m.AssertExpectations(t)
	})

	t.Run("Error_WriteContent", func(t *testing.T) {
		useCase := &mocks.MockDocumentUseCase{}
		m := &mockBusinessMetrics{}
		decorator := NewDocumentUseCaseWithMetrics(useCase, m)

		useCase.On("WriteContent", ctx, documentID, "alice", []byte("x")).
			Return(nil, documentDomain.ErrDocumentNotFound).
			Once()
		expectMetrics(ctx, m, "content_write", "error")

		document, err := decorator.WriteContent(ctx, documentID, "alice", []byte("x"))
		assert.Nil(t, document)
		assert.ErrorIs(t, err, documentDomain.ErrDocumentNotFound)

		useCase.AssertExpectations(t)
		m.AssertExpectations(t)
	})
}
