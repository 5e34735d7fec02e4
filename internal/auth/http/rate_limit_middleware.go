package http

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apperrors "github.com/allisson/wopihost/internal/errors"
	"github.com/allisson/wopihost/internal/httputil"
)

const (
	limiterSweepInterval = 5 * time.Minute
	limiterIdleTimeout   = time.Hour
)

// rateLimiterStore holds per-user rate limiters. Idle limiters are swept on access.
type rateLimiterStore struct {
	mu        sync.Mutex
	limiters  map[string]*rateLimiterEntry
	lastSweep time.Time
	rps       float64
	burst     int
	now       func() time.Time
}

type rateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

func newRateLimiterStore(rps float64, burst int, now func() time.Time) *rateLimiterStore {
	return &rateLimiterStore{
		limiters:  make(map[string]*rateLimiterEntry),
		lastSweep: now(),
		rps:       rps,
		burst:     burst,
		now:       now,
	}
}

// getLimiter returns the limiter for userID, creating it on first use.
func (s *rateLimiterStore) getLimiter(userID string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= limiterSweepInterval {
		s.sweep(now)
	}

	entry, ok := s.limiters[userID]
	if !ok {
		entry = &rateLimiterEntry{limiter: rate.NewLimiter(rate.Limit(s.rps), s.burst)}
		s.limiters[userID] = entry
	}
	entry.lastAccess = now
	return entry.limiter
}

// sweep drops limiters idle for longer than limiterIdleTimeout. Callers hold s.mu.
func (s *rateLimiterStore) sweep(now time.Time) {
	threshold := now.Add(-limiterIdleTimeout)
	for userID, entry := range s.limiters {
		if entry.lastAccess.Before(threshold) {
			delete(s.limiters, userID)
		}
	}
	s.lastSweep = now
}

func (s *rateLimiterStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

// RateLimitMiddleware enforces per-user rate limiting with a token bucket from
// golang.org/x/time/rate. It must run after AuthenticationMiddleware.
//
// Requests over the limit get 429 Too Many Requests with a Retry-After header.
func RateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newRateLimiterStore(rps, burst, time.Now)

	return func(c *gin.Context) {
		userID, ok := GetUserID(c.Request.Context())
		if !ok {
			logger.Error("rate limit middleware: no authenticated user in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		limiter := store.getLimiter(userID)
		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := int(math.Ceil(reservation.Delay().Seconds()))
			reservation.Cancel()

			logger.Debug("rate limit exceeded",
				slog.String("user_id", userID),
				slog.Int("retry_after", retryAfter))

			httputil.HandleTooManyRequestsGin(c, retryAfter)
			c.Abort()
			return
		}

		c.Next()
	}
}
