package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/swiftcourier/tracking-api/internal/core/ports"
)

const cacheTTL = 5 * time.Minute

// TrackingCache caches public tracking lookup responses in Redis.
// Key format: track:<tracking_number>
type TrackingCache struct {
	client *redis.Client
}

// NewTrackingCache creates a TrackingCache wrapping the given Redis client.
func NewTrackingCache(client *redis.Client) *TrackingCache {
	return &TrackingCache{client: client}
}

// Get returns the cached detail, or nil on a miss.
func (c *TrackingCache) Get(ctx context.Context, trackingNumber string) (*ports.TrackingDetail, error) {
	raw, err := c.client.Get(ctx, c.key(trackingNumber)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("tracking cache get: %w", err)
	}

	var detail ports.TrackingDetail
	if err := json.Unmarshal(raw, &detail); err != nil {
		// A corrupt entry behaves like a miss; it will be overwritten.
		return nil, nil
	}
	return &detail, nil
}

// Set stores the detail for cacheTTL.
func (c *TrackingCache) Set(ctx context.Context, trackingNumber string, detail *ports.TrackingDetail) error {
	raw, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("tracking cache marshal: %w", err)
	}
	return c.client.Set(ctx, c.key(trackingNumber), raw, cacheTTL).Err()
}

// Invalidate drops the cached entry after an event append.
func (c *TrackingCache) Invalidate(ctx context.Context, trackingNumber string) error {
	return c.client.Del(ctx, c.key(trackingNumber)).Err()
}

func (c *TrackingCache) key(trackingNumber string) string {
	return "track:" + trackingNumber
}
