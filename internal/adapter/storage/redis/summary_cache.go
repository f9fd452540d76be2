package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const summaryKey = "wallet:summary"

// SummaryCache implements ports.WalletSummaryCache using Redis. The wallet is
// a singleton, so a single fixed key holds the cached snapshot.
type SummaryCache struct {
	client *goredis.Client
}

// NewSummaryCache creates a new Redis-backed wallet summary cache.
func NewSummaryCache(client *goredis.Client) *SummaryCache {
	return &SummaryCache{client: client}
}

// Get retrieves the cached summary. Returns nil, nil on a miss.
func (c *SummaryCache) Get(ctx context.Context) ([]byte, error) {
	val, err := c.client.Get(ctx, summaryKey).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis summary get: %w", err)
	}
	return val, nil
}

// Set stores a summary snapshot with TTL.
func (c *SummaryCache) Set(ctx context.Context, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, summaryKey, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis summary set: %w", err)
	}
	return nil
}

// Invalidate drops the cached summary after a wallet mutation.
func (c *SummaryCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, summaryKey).Err(); err != nil {
		return fmt.Errorf("redis summary del: %w", err)
	}
	return nil
}
