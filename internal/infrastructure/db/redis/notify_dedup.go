package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/developia/translation-office/internal/core/domain"
)

const dedupTTL = 24 * time.Hour

// NotificationDedup keeps notification delivery at-most-once across
// redeliveries. Key format: notify:<project_id>:<kind>:<unix_timestamp>
type NotificationDedup struct {
	client *redis.Client
}

func NewNotificationDedup(client *redis.Client) *NotificationDedup {
	return &NotificationDedup{client: client}
}

// Claim atomically marks the event as handled and reports whether this call
// won the claim. A second call for the same event returns false.
func (d *NotificationDedup) Claim(ctx context.Context, event domain.Event) (bool, error) {
	ok, err := d.client.SetNX(ctx, d.key(event), "1", dedupTTL).Result()
	if err != nil {
		return false, fmt.Errorf("notification dedup: %w", err)
	}
	return ok, nil
}

func (d *NotificationDedup) key(e domain.Event) string {
	return fmt.Sprintf("notify:%s:%s:%d", e.ProjectID, e.Kind, e.OccurredAt.Unix())
}
