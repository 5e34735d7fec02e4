package usecase

import (
	"context"
	"time"

	"github.com/allisson/wopihost/internal/metrics"
	wopiDomain "github.com/allisson/wopihost/internal/wopi/domain"
)

const metricsDomain = "wopi"

// sessionFacadeWithMetrics decorates SessionFacade with metrics instrumentation.
type sessionFacadeWithMetrics struct {
	next    SessionFacade
	metrics metrics.BusinessMetrics
}

// NewSessionFacadeWithMetrics wraps a SessionFacade with metrics recording.
func NewSessionFacadeWithMetrics(facade SessionFacade, m metrics.BusinessMetrics) SessionFacade {
	return &sessionFacadeWithMetrics{
		next:    facade,
		metrics: m,
	}
}

func (s *sessionFacadeWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusFor(err)

	s.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	s.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// IssueToken records metrics for token issuance and renewal.
func (s *sessionFacadeWithMetrics) IssueToken(
	ctx context.Context,
	documentID, userID string,
) (*wopiDomain.IssueTokenOutput, error) {
	start := time.Now()
	output, err := s.next.IssueToken(ctx, documentID, userID)
	s.record(ctx, "token_issue", start, err)
	return output, err
}

// OpenForWrite records metrics for write session opening.
func (s *sessionFacadeWithMetrics) OpenForWrite(ctx context.Context, documentID, tokenValue string) (string, error) {
	start := time.Now()
	userID, err := s.next.OpenForWrite(ctx, documentID, tokenValue)
	s.record(ctx, "session_open_write", start, err)
	return userID, err
}

// OpenForRead records metrics for read session opening.
func (s *sessionFacadeWithMetrics) OpenForRead(ctx context.Context, documentID, tokenValue string) (string, error) {
	start := time.Now()
	userID, err := s.next.OpenForRead(ctx, documentID, tokenValue)
	s.record(ctx, "session_open_read", start, err)
	return userID, err
}

// Close records metrics for session teardown.
func (s *sessionFacadeWithMetrics) Close(ctx context.Context, documentID string) (bool, error) {
	start := time.Now()
	removed, err := s.next.Close(ctx, documentID)
	s.record(ctx, "session_close", start, err)
	return removed, err
}

// IsLocked records metrics for lock state queries.
func (s *sessionFacadeWithMetrics) IsLocked(ctx context.Context, documentID, userID string) (bool, error) {
	start := time.Now()
	locked, err := s.next.IsLocked(ctx, documentID, userID)
	s.record(ctx, "lock_query", start, err)
	return locked, err
}

// lockCoordinatorWithMetrics decorates LockCoordinator with metrics instrumentation.
type lockCoordinatorWithMetrics struct {
	next    LockCoordinator
	metrics metrics.BusinessMetrics
}

// NewLockCoordinatorWithMetrics wraps a LockCoordinator with metrics recording.
func NewLockCoordinatorWithMetrics(coordinator LockCoordinator, m metrics.BusinessMetrics) LockCoordinator {
	return &lockCoordinatorWithMetrics{
		next:    coordinator,
		metrics: m,
	}
}

func (l *lockCoordinatorWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusFor(err)

	l.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	l.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// Acquire records metrics for collaborative lock acquisition.
func (l *lockCoordinatorWithMetrics) Acquire(ctx context.Context, documentID, userID string) error {
	start := time.Now()
	err := l.next.Acquire(ctx, documentID, userID)
	l.record(ctx, "lock_acquire", start, err)
	return err
}

// Release records metrics for collaborative lock release.
func (l *lockCoordinatorWithMetrics) Release(ctx context.Context, documentID string) (bool, error) {
	start := time.Now()
	removed, err := l.next.Release(ctx, documentID)
	l.record(ctx, "lock_release", start, err)
	return removed, err
}

// IsLocked records metrics for lock state queries.
func (l *lockCoordinatorWithMetrics) IsLocked(ctx context.Context, documentID, userID string) (bool, error) {
	start := time.Now()
	locked, err := l.next.IsLocked(ctx, documentID, userID)
	l.record(ctx, "lock_query", start, err)
	return locked, err
}

// BeforeExclusiveLock records metrics for the exclusive lock guard.
func (l *lockCoordinatorWithMetrics) BeforeExclusiveLock(ctx context.Context, documentID string) error {
	start := time.Now()
	err := l.next.BeforeExclusiveLock(ctx, documentID)
	l.record(ctx, "guard_exclusive_lock", start, err)
	return err
}

// BeforeDelete records metrics for the delete guard.
func (l *lockCoordinatorWithMetrics) BeforeDelete(ctx context.Context, documentID string) error {
	start := time.Now()
	err := l.next.BeforeDelete(ctx, documentID)
	l.record(ctx, "guard_delete", start, err)
	return err
}

// BeforeMove records metrics for the move guard.
func (l *lockCoordinatorWithMetrics) BeforeMove(ctx context.Context, documentID string) error {
	start := time.Now()
	err := l.next.BeforeMove(ctx, documentID)
	l.record(ctx, "guard_move", start, err)
	return err
}

// Guard records metrics for guarded mutations, labelled by operation.
func (l *lockCoordinatorWithMetrics) Guard(
	ctx context.Context,
	documentID string,
	op wopiDomain.GuardedOperation,
	fn func(ctx context.Context) error,
) error {
	start := time.Now()
	err := l.next.Guard(ctx, documentID, op, fn)
	l.record(ctx, "guard_"+string(op), start, err)
	return err
}

// State records metrics for lock state snapshots.
func (l *lockCoordinatorWithMetrics) State(ctx context.Context, documentID string) (*wopiDomain.LockInfo, error) {
	start := time.Now()
	info, err := l.next.State(ctx, documentID)
	l.record(ctx, "lock_state", start, err)
	return info, err
}
