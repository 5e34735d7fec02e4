// Package mocks provides mock implementations of the WOPI session interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	documentDomain "github.com/allisson/wopihost/internal/document/domain"
	wopiDomain "github.com/allisson/wopihost/internal/wopi/domain"
)

// MockSessionFacade is a mock implementation of SessionFacade.
type MockSessionFacade struct {
	mock.Mock
}

// IssueToken mocks the IssueToken method of SessionFacade.
func (m *MockSessionFacade) IssueToken(
	ctx context.Context,
	documentID, userID string,
) (*wopiDomain.IssueTokenOutput, error) {
	args := m.Called(ctx, documentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wopiDomain.IssueTokenOutput), args.Error(1)
}

// OpenForWrite mocks the OpenForWrite method of SessionFacade.
func (m *MockSessionFacade) OpenForWrite(ctx context.Context, documentID, tokenValue string) (string, error) {
	args := m.Called(ctx, documentID, tokenValue)
	return args.String(0), args.Error(1)
}

// OpenForRead mocks the OpenForRead method of SessionFacade.
func (m *MockSessionFacade) OpenForRead(ctx context.Context, documentID, tokenValue string) (string, error) {
	args := m.Called(ctx, documentID, tokenValue)
	return args.String(0), args.Error(1)
}

// Close mocks the Close method of SessionFacade.
func (m *MockSessionFacade) Close(ctx context.Context, documentID string) (bool, error) {
	args := m.Called(ctx, documentID)
	return args.Bool(0), args.Error(1)
}

// IsLocked mocks the IsLocked method of SessionFacade.
func (m *MockSessionFacade) IsLocked(ctx context.Context, documentID, userID string) (bool, error) {
	args := m.Called(ctx, documentID, userID)
	return args.Bool(0), args.Error(1)
}

// MockLockCoordinator is a mock implementation of LockCoordinator. Guard runs fn when the
// mocked error is nil, mirroring the real coordinator.
type MockLockCoordinator struct {
	mock.Mock
}

// Acquire mocks the Acquire method of LockCoordinator.
func (m *MockLockCoordinator) Acquire(ctx context.Context, documentID, userID string) error {
	args := m.Called(ctx, documentID, userID)
	return args.Error(0)
}

// Release mocks the Release method of LockCoordinator.
func (m *MockLockCoordinator) Release(ctx context.Context, documentID string) (bool, error) {
	args := m.Called(ctx, documentID)
	return args.Bool(0), args.Error(1)
}

// IsLocked mocks the IsLocked method of LockCoordinator.
func (m *MockLockCoordinator) IsLocked(ctx context.Context, documentID, userID string) (bool, error) {
	args := m.Called(ctx, documentID, userID)
	return args.Bool(0), args.Error(1)
}

// BeforeExclusiveLock mocks the BeforeExclusiveLock method of LockCoordinator.
func (m *MockLockCoordinator) BeforeExclusiveLock(ctx context.Context, documentID string) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}

// BeforeDelete mocks the BeforeDelete method of LockCoordinator.
func (m *MockLockCoordinator) BeforeDelete(ctx context.Context, documentID string) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}

// BeforeMove mocks the BeforeMove method of LockCoordinator.
func (m *MockLockCoordinator) BeforeMove(ctx context.Context, documentID string) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}

// Guard mocks the Guard method of LockCoordinator.
func (m *MockLockCoordinator) Guard(
	ctx context.Context,
	documentID string,
	op wopiDomain.GuardedOperation,
	fn func(ctx context.Context) error,
) error {
	args := m.Called(ctx, documentID, op)
	if err := args.Error(0); err != nil {
		return err
	}
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// State mocks the State method of LockCoordinator.
func (m *MockLockCoordinator) State(ctx context.Context, documentID string) (*wopiDomain.LockInfo, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wopiDomain.LockInfo), args.Error(1)
}

// MockDocumentReader is a mock implementation of DocumentReader.
type MockDocumentReader struct {
	mock.Mock
}

// Get mocks the Get method of DocumentReader.
func (m *MockDocumentReader) Get(ctx context.Context, documentID string) (*documentDomain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentDomain.Document), args.Error(1)
}
