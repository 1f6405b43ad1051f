// Package notify provides the production Notifier implementation. Delivery
// itself (email, SMS, web push) is someone else's problem: this package only
// hands the message to a per-owner Redis pub/sub channel that downstream
// delivery workers subscribe to.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "notifications:"

// RedisNotifier publishes notification payloads to Redis pub/sub.
type RedisNotifier struct {
	client *redis.Client
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

type payload struct {
	UserID         string    `json:"user_id"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	TrackingNumber string    `json:"tracking_number"`
	SentAt         time.Time `json:"sent_at"`
}

// Notify publishes the notification to the owner's channel. An error here is
// informational only; callers must not block or retry on it.
func (n *RedisNotifier) Notify(ctx context.Context, userID, title, message, trackingNumber string) error {
	raw, err := json.Marshal(payload{
		UserID:         userID,
		Title:          title,
		Message:        message,
		TrackingNumber: trackingNumber,
		SentAt:         time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("notify marshal: %w", err)
	}

	if err := n.client.Publish(ctx, channelPrefix+userID, raw).Err(); err != nil {
		return fmt.Errorf("notify publish: %w", err)
	}
	return nil
}
