package main

import (
	"context"
	"log/slog"
	"time"

	"id-photo-studio/internal/session"
)

func sweepSessions(ctx context.Context, store *session.Store, ttl time.Duration, logger *slog.Logger) {
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.Sweep(ttl); n > 0 {
				logger.Debug("sessions swept", "removed", n, "remaining", store.Len())
			}
		}
	}
}
