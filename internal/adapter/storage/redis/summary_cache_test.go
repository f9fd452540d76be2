package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryCache_SetAndGet(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewSummaryCache(client)
	ctx := context.Background()

	value := []byte(`{"balance":"4422.5","withdrawable_profit":"2653.5"}`)

	// Get before set => nil
	result, err := cache.Get(ctx)
	assert.NoError(t, err)
	assert.Nil(t, result)

	err = cache.Set(ctx, value, 5*time.Minute)
	require.NoError(t, err)

	result, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, value, result)
}

func TestSummaryCache_TTLExpiry(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewSummaryCache(client)
	ctx := context.Background()

	err := cache.Set(ctx, []byte(`{"balance":"100"}`), 1*time.Second)
	require.NoError(t, err)

	// Fast-forward time in miniredis
	s.FastForward(2 * time.Second)

	result, err := cache.Get(ctx)
	assert.NoError(t, err)
	assert.Nil(t, result, "expired snapshot should return nil")
}

func TestSummaryCache_Invalidate(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewSummaryCache(client)
	ctx := context.Background()

	err := cache.Set(ctx, []byte(`{"balance":"100"}`), 5*time.Minute)
	require.NoError(t, err)

	err = cache.Invalidate(ctx)
	require.NoError(t, err)

	result, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, result, "invalidated snapshot should return nil")
}

func TestSummaryCache_InvalidateMissingKey(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewSummaryCache(client)

	// Deleting a key that was never set is not an error.
	err := cache.Invalidate(context.Background())
	assert.NoError(t, err)
}
