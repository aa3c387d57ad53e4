package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/raingor/anime-site-api/internal/core/domain"
)

const viewTTL = 5 * time.Minute

// ViewCache holds serialized user views at the HTTP boundary. The account
// core stays cache-free; handlers consult the cache on reads and drop entries
// on every write to the same identifier.
// Key format: userview:<id>
type ViewCache struct {
	client *redis.Client
}

// NewViewCache creates a ViewCache wrapping the given Redis client.
func NewViewCache(client *redis.Client) *ViewCache {
	return &ViewCache{client: client}
}

// Get returns the cached view for id, or (nil, nil) on a miss.
func (c *ViewCache) Get(ctx context.Context, id int64) (*domain.UserView, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("view cache get: %w", err)
	}

	var view domain.UserView
	if err := json.Unmarshal(raw, &view); err != nil {
		return nil, fmt.Errorf("view cache decode: %w", err)
	}
	return &view, nil
}

// Set stores the view under its identifier (expires after viewTTL).
func (c *ViewCache) Set(ctx context.Context, view domain.UserView) error {
	raw, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("view cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(view.ID), raw, viewTTL).Err()
}

// Invalidate drops the cached view for id, if any.
func (c *ViewCache) Invalidate(ctx context.Context, id int64) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *ViewCache) key(id int64) string {
	return fmt.Sprintf("userview:%d", id)
}
