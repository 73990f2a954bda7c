package cache

import (
	"context"
	"testing"
	"time"

	"github.com/claimcheck/backend/internal/domain"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisCache_InvalidURL(t *testing.T) {
	cache, err := NewRedisCache(context.Background(), "not-a-redis-url")

	assert.Nil(t, cache)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid redis URL")
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	// Port 1 is reserved and never runs Redis
	cache, err := NewRedisCache(ctx, "redis://127.0.0.1:1/0")

	assert.Nil(t, cache)
	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)
}

func TestRedisCache_UnavailableServerErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	cache := NewRedisCacheFromClient(client)
	defer cache.Close()
	ctx := context.Background()

	_, err := cache.Get(ctx, "product:123")
	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)

	err = cache.Set(ctx, "product:123", "value", time.Minute)
	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)

	_, err = cache.Exists(ctx, "product:123")
	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)

	err = cache.Delete(ctx, "product:123")
	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)
}

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "claimcheck:product:737628064502", redisKey("product:737628064502"))
}
