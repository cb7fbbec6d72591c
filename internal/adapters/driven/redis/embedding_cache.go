package redis

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/medassist-labs/medassist-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.EmbeddingCache = (*EmbeddingCache)(nil)

const (
	embeddingKeyPrefix = "medassist:embedding:"
	defaultCacheTTL    = 7 * 24 * time.Hour
)

// EmbeddingCache implements driven.EmbeddingCache using Redis.
// Keys are derived from the model name and a hash of the text, so the
// cache survives re-ingestion of unchanged documents without holding
// the full chunk text in the keyspace.
type EmbeddingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewEmbeddingCache creates a new Redis-backed embedding cache.
func NewEmbeddingCache(client *redis.Client, ttl time.Duration) *EmbeddingCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &EmbeddingCache{client: client, ttl: ttl}
}

// Get returns the cached vector for (model, text), or nil on miss.
// Undecodable entries count as misses and are evicted.
func (c *EmbeddingCache) Get(ctx context.Context, model, text string) ([]float32, error) {
	key := cacheKey(model, text)

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached embedding: %w", err)
	}

	var vector []float32
	if err := json.Unmarshal(data, &vector); err != nil {
		c.client.Del(ctx, key)
		return nil, nil
	}
	return vector, nil
}

// Set stores a vector for (model, text) with the configured TTL.
func (c *EmbeddingCache) Set(ctx context.Context, model, text string, vector []float32) error {
	data, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("failed to marshal embedding: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(model, text), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache embedding: %w", err)
	}
	return nil
}

// Close releases cache resources.
// The Redis client is shared, so it is not closed here.
func (c *EmbeddingCache) Close() error {
	return nil
}

func cacheKey(model, text string) string {
	h := sha1.Sum([]byte(text))
	return embeddingKeyPrefix + model + ":" + hex.EncodeToString(h[:])
}
