package ports

import (
	"context"
	"time"
)

// ReminderGuard suppresses repeated reminder broadcasts for the same work
// item within a window.
type ReminderGuard interface {
	// Acquire returns true when no reminder was sent for workID within window,
	// and records this one.
	Acquire(ctx context.Context, workID string, window time.Duration) (bool, error)
}
