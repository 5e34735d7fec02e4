// Package mocks provides mock implementations of the document interfaces for testing.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	documentDomain "github.com/allisson/wopihost/internal/document/domain"
)

// MockDocumentRepository is a mock implementation of DocumentRepository.
type MockDocumentRepository struct {
	mock.Mock
}

// Create mocks the Create method of DocumentRepository.
func (m *MockDocumentRepository) Create(ctx context.Context, document *documentDomain.Document) error {
	args := m.Called(ctx, document)
	return args.Error(0)
}

// Update mocks the Update method of DocumentRepository.
func (m *MockDocumentRepository) Update(ctx context.Context, document *documentDomain.Document) error {
	args := m.Called(ctx, document)
	return args.Error(0)
}

// Get mocks the Get method of DocumentRepository.
func (m *MockDocumentRepository) Get(ctx context.Context, documentID uuid.UUID) (*documentDomain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentDomain.Document), args.Error(1)
}

// List mocks the List method of DocumentRepository.
func (m *MockDocumentRepository) List(ctx context.Context, offset, limit int) ([]*documentDomain.Document, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*documentDomain.Document), args.Error(1)
}

// Delete mocks the Delete method of DocumentRepository.
func (m *MockDocumentRepository) Delete(ctx context.Context, documentID uuid.UUID) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}

// MockDocumentUseCase is a mock implementation of DocumentUseCase.
type MockDocumentUseCase struct {
	mock.Mock
}

func documentResult(args mock.Arguments) (*documentDomain.Document, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentDomain.Document), args.Error(1)
}

// Create mocks the Create method of DocumentUseCase.
func (m *MockDocumentUseCase) Create(
	ctx context.Context,
	name, mimeType, ownerID string,
	content []byte,
) (*documentDomain.Document, error) {
	return documentResult(m.Called(ctx, name, mimeType, ownerID, content))
}

// Get mocks the Get method of DocumentUseCase.
func (m *MockDocumentUseCase) Get(ctx context.Context, documentID uuid.UUID) (*documentDomain.Document, error) {
	return documentResult(m.Called(ctx, documentID))
}

// List mocks the List method of DocumentUseCase.
func (m *MockDocumentUseCase) List(ctx context.Context, offset, limit int) ([]*documentDomain.Document, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*documentDomain.Document), args.Error(1)
}

// Lock mocks the Lock method of DocumentUseCase.
func (m *MockDocumentUseCase) Lock(
	ctx context.Context,
	documentID uuid.UUID,
	userID string,
	ttl time.Duration,
) (*documentDomain.Document, error) {
	return documentResult(m.Called(ctx, documentID, userID, ttl))
}

// Unlock mocks the Unlock method of DocumentUseCase.
func (m *MockDocumentUseCase) Unlock(
	ctx context.Context,
	documentID uuid.UUID,
	userID string,
) (*documentDomain.Document, error) {
	return documentResult(m.Called(ctx, documentID, userID))
}

// CheckOut mocks the CheckOut method of DocumentUseCase.
func (m *MockDocumentUseCase) CheckOut(
	ctx context.Context,
	documentID uuid.UUID,
	userID string,
) (*documentDomain.Document, error) {
	return documentResult(m.Called(ctx, documentID, userID))
}

// CheckIn mocks the CheckIn method of DocumentUseCase.
func (m *MockDocumentUseCase) CheckIn(
	ctx context.Context,
	documentID uuid.UUID,
	userID string,
) (*documentDomain.Document, error) {
	return documentResult(m.Called(ctx, documentID, userID))
}

// Move mocks the Move method of DocumentUseCase.
func (m *MockDocumentUseCase) Move(
	ctx context.Context,
	documentID uuid.UUID,
	userID, name string,
) (*documentDomain.Document, error) {
	return documentResult(m.Called(ctx, documentID, userID, name))
}

// Delete mocks the Delete method of DocumentUseCase.
func (m *MockDocumentUseCase) Delete(ctx context.Context, documentID uuid.UUID, userID string) error {
	args := m.Called(ctx, documentID, userID)
	return args.Error(0)
}

// ReadContent mocks the ReadContent method of DocumentUseCase.
func (m *MockDocumentUseCase) ReadContent(
	ctx context.Context,
	documentID uuid.UUID,
) (*documentDomain.Document, []byte, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var data []byte
	if args.Get(1) != nil {
		data = args.Get(1).([]byte)
	}
	return args.Get(0).(*documentDomain.Document), data, args.Error(2)
}

// WriteContent mocks the WriteContent method of DocumentUseCase.
func (m *MockDocumentUseCase) WriteContent(
	ctx context.Context,
	documentID uuid.UUID,
	userID string,
	data []byte,
) (*documentDomain.Document, error) {
	return documentResult(m.Called(ctx, documentID, userID, data))
}
