package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// metaTTL bounds staleness of the cached filter option lists; mutations
// invalidate eagerly, the TTL only covers writes from outside this process.
const metaTTL = 5 * time.Minute

// MetaCache stores the catalog's distinct category/brand lists in Redis as
// JSON arrays. Keys are owned by the service layer.
type MetaCache struct {
	client *redis.Client
}

// NewMetaCache creates a MetaCache wrapping the given Redis client.
func NewMetaCache(client *redis.Client) *MetaCache {
	return &MetaCache{client: client}
}

// Get returns the cached list for key. The second return value is false on
// a cache miss.
func (m *MetaCache) Get(ctx context.Context, key string) ([]string, bool, error) {
	raw, err := m.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("meta cache get: %w", err)
	}

	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, false, fmt.Errorf("meta cache decode: %w", err)
	}
	return values, true, nil
}

// Set stores the list under key (expires after metaTTL).
func (m *MetaCache) Set(ctx context.Context, key string, values []string) error {
	b, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("meta cache encode: %w", err)
	}
	return m.client.Set(ctx, key, b, metaTTL).Err()
}

// Invalidate drops the given keys after a catalog mutation.
func (m *MetaCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return m.client.Del(ctx, keys...).Err()
}
