package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/asservice/shiftboard/internal/core/ports"
)

// ReminderGuard throttles reminder broadcasts with a Redis lock per work item.
// Key format: reminder:<work_id>
type ReminderGuard struct {
	client *redis.Client
}

// NewReminderGuard creates a ReminderGuard wrapping the given Redis client.
func NewReminderGuard(client *redis.Client) ports.ReminderGuard {
	return &ReminderGuard{client: client}
}

// Acquire takes the lock for workID for the length of window. It reports
// false when the lock is already held.
func (g *ReminderGuard) Acquire(ctx context.Context, workID string, window time.Duration) (bool, error) {
	ok, err := g.client.SetNX(ctx, reminderKey(workID), time.Now().UTC().Format(time.RFC3339), window).Result()
	if err != nil {
		return false, fmt.Errorf("reminder guard: %w", err)
	}
	return ok, nil
}

func reminderKey(workID string) string {
	return fmt.Sprintf("reminder:%s", workID)
}
