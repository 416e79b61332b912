package internal

import (
	"context"
	"time"
)

const defaultQueryTimeout = 5 * time.Second

// WithQueryTimeout bounds a database-facing context, falling back to the
// default when the configured duration is zero or negative.
func WithQueryTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = defaultQueryTimeout
	}
	return context.WithTimeout(ctx, duration)
}
