package usecase

import (
	"context"
	"log/slog"
	"time"
)

// TokenJanitor periodically purges expired access tokens so documents that are never
// reopened do not keep their tokens in memory.
type TokenJanitor struct {
	interval time.Duration
	tokens   TokenStore
	logger   *slog.Logger
}

// NewTokenJanitor creates a TokenJanitor sweeping every interval.
func NewTokenJanitor(interval time.Duration, tokens TokenStore, logger *slog.Logger) *TokenJanitor {
	return &TokenJanitor{
		interval: interval,
		tokens:   tokens,
		logger:   logger,
	}
}

// Start runs the sweep loop until ctx is cancelled.
func (j *TokenJanitor) Start(ctx context.Context) error {
	j.logger.Info("starting access token janitor", slog.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("stopping access token janitor")
			return ctx.Err()
		case <-ticker.C:
			j.Sweep(ctx)
		}
	}
}

// Sweep purges expired tokens once and returns how many were removed.
func (j *TokenJanitor) Sweep(ctx context.Context) int {
	removed := j.tokens.PurgeExpired(ctx)
	if removed > 0 {
		j.logger.Info("expired access tokens purged",
			slog.Int("count", removed),
			slog.Int("remaining", j.tokens.Len()),
		)
	}
	return removed
}
