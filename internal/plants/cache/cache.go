// Package cache keeps a short-lived Redis copy of the full plant catalog so
// the public listing does not hit Postgres on every request. Every cache
// failure degrades to the database; none surface to clients.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/plantkeeper/plantkeeper-backend/internal/plants/domain"
)

const catalogKey = "plants:catalog"

const defaultTTL = 60 * time.Second

// CatalogCache is a Redis-backed cache of the full catalog listing.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a catalog cache. A non-positive ttl falls back to the default.
func New(client *redis.Client, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &CatalogCache{client: client, ttl: ttl}
}

// Get returns the cached catalog and whether it was present.
func (c *CatalogCache) Get(ctx context.Context) ([]domain.Plant, bool, error) {
	data, err := c.client.Get(ctx, catalogKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read catalog cache: %w", err)
	}

	var plants []domain.Plant
	if err := json.Unmarshal([]byte(data), &plants); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal catalog cache: %w", err)
	}
	return plants, true, nil
}

// Set stores the catalog snapshot with the configured TTL.
func (c *CatalogCache) Set(ctx context.Context, plants []domain.Plant) error {
	data, err := json.Marshal(plants)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	if err := c.client.Set(ctx, catalogKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write catalog cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached catalog. Called after every successful
// create, update or delete.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, catalogKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate catalog cache: %w", err)
	}
	return nil
}
