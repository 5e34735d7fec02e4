package commands

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	authService "github.com/allisson/wopihost/internal/auth/service"
)

// RunIssueUserToken signs a host user JWT for userID. Operators use it to provision the
// editor-side session watcher and for local testing.
func RunIssueUserToken(
	tokenService authService.TokenService,
	logger *slog.Logger,
	w io.Writer,
	userID string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	issued, err := tokenService.Issue(userID)
	if err != nil {
		return fmt.Errorf("failed to issue user token: %w", err)
	}

	logger.Info("user token issued",
		slog.String("user_id", issued.UserID),
		slog.Time("expires_at", issued.ExpiresAt),
	)

	if format == "json" {
		return writeJSON(w, map[string]any{
			"token":      issued.Token,
			"user_id":    issued.UserID,
			"expires_at": issued.ExpiresAt.UTC().Format(time.RFC3339),
		})
	}

	_, err = fmt.Fprintf(w, "%s\n", issued.Token)
	return err
}
