package service

import (
	"sync"
	"time"
)

// monotonicClock wraps a time source and never returns a value that is equal to or
// earlier than one it already returned.
type monotonicClock struct {
	mu     sync.Mutex
	source func() time.Time
	last   time.Time
}

// Now returns the source time, nudged one nanosecond past the previous reading when the
// source stalls or steps backwards.
func (c *monotonicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.source()
	if !c.last.IsZero() && !now.After(c.last) {
		now = c.last.Add(time.Nanosecond)
	}
	c.last = now
	return now
}

// NewMonotonicClock creates a Clock over source. A nil source means time.Now.
func NewMonotonicClock(source func() time.Time) Clock {
	if source == nil {
		source = time.Now
	}
	return &monotonicClock{source: source}
}
