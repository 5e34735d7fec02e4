package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	documentDomain "github.com/allisson/wopihost/internal/document/domain"
)

// fakeClock is a settable clock for expiry tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// sequenceGenerator returns token-1, token-2, ... so tests can assert on token values.
type sequenceGenerator struct {
	mu   sync.Mutex
	next int
}

func (g *sequenceGenerator) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("token-%d", g.next), nil
}

type failingGenerator struct{}

func (failingGenerator) Generate() (string, error) {
	return "", errors.New("entropy source unavailable")
}

// fakeDocumentReader is an in-memory DocumentReader whose documents tests can mutate.
type fakeDocumentReader struct {
	mu        sync.Mutex
	documents map[string]*documentDomain.Document
}

func newFakeDocumentReader() *fakeDocumentReader {
	return &fakeDocumentReader{documents: make(map[string]*documentDomain.Document)}
}

func (r *fakeDocumentReader) Get(ctx context.Context, documentID string) (*documentDomain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	document, ok := r.documents[documentID]
	if !ok {
		return nil, documentDomain.ErrDocumentNotFound
	}
	copied := *document
	return &copied, nil
}

func (r *fakeDocumentReader) add(name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := uuid.Must(uuid.NewV7())
	r.documents[id.String()] = &documentDomain.Document{
		ID:        id,
		Name:      name,
		OwnerID:   "owner",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	return id.String()
}

func (r *fakeDocumentReader) update(documentID string, fn func(d *documentDomain.Document)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.documents[documentID])
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
