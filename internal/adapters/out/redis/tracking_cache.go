// Package redis keeps public tracking views in Redis so the tracking page
// does not hit PostgreSQL on every refresh.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"parcelmybox/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "parcelmybox:tracking:"

// TrackingCache implements ports.TrackingCache. Entries expire after ttl and
// are dropped explicitly whenever the shipment changes status.
type TrackingCache struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

func NewTrackingCache(client goredis.UniversalClient, ttl time.Duration) (*TrackingCache, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("tracking ttl must be positive, got %s", ttl)
	}
	return &TrackingCache{client: client, ttl: ttl}, nil
}

// NewClient connects to addr and pings it.
func NewClient(ctx context.Context, addr string) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

func key(trackingNumber string) string {
	return keyPrefix + trackingNumber
}

func (c *TrackingCache) Get(ctx context.Context, trackingNumber string) (*ports.TrackingView, error) {
	raw, err := c.client.Get(ctx, key(trackingNumber)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var view ports.TrackingView
	if err = json.Unmarshal(raw, &view); err != nil {
		// a stale layout is treated as a miss and overwritten on the next Set
		return nil, nil //nolint:nilerr // undecodable entries are misses
	}
	return &view, nil
}

func (c *TrackingCache) Set(ctx context.Context, view *ports.TrackingView) error {
	if view == nil {
		return errors.New("tracking view is required")
	}
	raw, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(view.TrackingNumber), raw, c.ttl).Err()
}

func (c *TrackingCache) Invalidate(ctx context.Context, trackingNumber string) error {
	return c.client.Del(ctx, key(trackingNumber)).Err()
}

var _ ports.TrackingCache = (*TrackingCache)(nil)
