package iostore

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/gndash/pkg/dataset"
)

// JanitorInterval returns how often expired sessions are purged for a
// session TTL.
func JanitorInterval(ttl time.Duration) time.Duration {
	return min(max(ttl/4, time.Minute), time.Hour)
}

// RunJanitor removes sessions idle longer than ttl every interval until
// ctx is cancelled. Purge failures are logged and retried on the next
// tick.
func RunJanitor(
	ctx context.Context,
	store dataset.Store,
	ttl, interval time.Duration,
) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			n, err := store.Purge(ctx, now.Add(-ttl))
			if err != nil {
				slog.Error("Cannot purge expired sessions", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("Purged expired sessions", "count", n)
			}
		}
	}
}
