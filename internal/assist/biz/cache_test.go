package biz

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketx/seller-assist/internal/model"
)

func setupTestRedis(t *testing.T) (*goredis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestNewAnswerCache_NilConfigDisabled(t *testing.T) {
	cache := NewAnswerCache(nil, nil)
	assert.NotNil(t, cache)
	assert.False(t, cache.config.Enabled)
	assert.Equal(t, 1*time.Hour, cache.config.TTL)
	assert.Equal(t, "assist:ask:", cache.config.KeyPrefix)
}

func TestAnswerCache_DisabledDegradesToMiss(t *testing.T) {
	cache := NewAnswerCache(nil, nil)
	ctx := context.Background()

	resp := model.NewAgentResponse(model.IntentPolicy)
	resp.Answer = "cached answer"

	cache.Set(ctx, "question", resp)
	assert.Nil(t, cache.Get(ctx, "question"))
	assert.NoError(t, cache.Clear(ctx))

	stats := cache.Stats(ctx)
	assert.Equal(t, false, stats["enabled"])
}

func TestAnswerCache_GenerateCacheKey(t *testing.T) {
	cache := NewAnswerCache(nil, &AnswerCacheConfig{
		Enabled:   true,
		TTL:       time.Hour,
		KeyPrefix: "test:ask:",
	})

	key1 := cache.generateCacheKey("What is the return window?")
	key2 := cache.generateCacheKey("What is the return window?")
	key3 := cache.generateCacheKey("What are the fees?")

	assert.Equal(t, key1, key2)
	assert.NotEqual(t, key1, key3)
	assert.Contains(t, key1, "test:ask:")
}

func TestAnswerCache_SetAndGet(t *testing.T) {
	client, _ := setupTestRedis(t)

	cache := NewAnswerCache(client, &AnswerCacheConfig{
		Enabled:   true,
		TTL:       time.Hour,
		KeyPrefix: "test:ask:",
	})
	ctx := context.Background()

	assert.Nil(t, cache.Get(ctx, "What is the return window?"))

	resp := model.NewAgentResponse(model.IntentPolicy)
	resp.Answer = "Returns are accepted within 30 days."
	resp.Citations = []string{"[policies > Returns > policies_002]"}
	resp.Confidence = 1.0

	cache.Set(ctx, "What is the return window?", resp)

	cached := cache.Get(ctx, "What is the return window?")
	require.NotNil(t, cached)
	assert.Equal(t, model.IntentPolicy, cached.Intent)
	assert.Equal(t, resp.Answer, cached.Answer)
	assert.Equal(t, resp.Citations, cached.Citations)
	assert.Equal(t, 1.0, cached.Confidence)

	// A different question misses.
	assert.Nil(t, cache.Get(ctx, "What are the fees?"))
}

func TestAnswerCache_CorruptEntryDeleted(t *testing.T) {
	client, _ := setupTestRedis(t)

	cache := NewAnswerCache(client, &AnswerCacheConfig{
		Enabled:   true,
		TTL:       time.Hour,
		KeyPrefix: "test:ask:",
	})
	ctx := context.Background()

	key := cache.generateCacheKey("broken")
	require.NoError(t, client.Set(ctx, key, "not-json{", time.Hour).Err())

	assert.Nil(t, cache.Get(ctx, "broken"))
	exists, err := client.Exists(ctx, key).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), exists)
}

func TestAnswerCache_ClearAndStats(t *testing.T) {
	client, _ := setupTestRedis(t)

	cache := NewAnswerCache(client, &AnswerCacheConfig{
		Enabled:   true,
		TTL:       time.Hour,
		KeyPrefix: "test:ask:",
	})
	ctx := context.Background()

	resp := model.NewAgentResponse(model.IntentPolicy)
	resp.Answer = "answer"
	cache.Set(ctx, "q1", resp)
	cache.Set(ctx, "q2", resp)

	stats := cache.Stats(ctx)
	assert.Equal(t, true, stats["enabled"])
	assert.Equal(t, 2, stats["key_count"])

	require.NoError(t, cache.Clear(ctx))

	stats = cache.Stats(ctx)
	assert.Equal(t, 0, stats["key_count"])
}

func TestAnswerCache_GetErrorDegradesToMiss(t *testing.T) {
	client, mr := setupTestRedis(t)

	cache := NewAnswerCache(client, &AnswerCacheConfig{
		Enabled:   true,
		TTL:       time.Hour,
		KeyPrefix: "test:ask:",
	})
	ctx := context.Background()

	resp := model.NewAgentResponse(model.IntentPolicy)
	resp.Answer = "answer"
	cache.Set(ctx, "q", resp)

	mr.SetError("connection refused")
	assert.Nil(t, cache.Get(ctx, "q"))
}

func TestAnswerCache_SetErrorDoesNotPropagate(t *testing.T) {
	client, mr := setupTestRedis(t)

	cache := NewAnswerCache(client, &AnswerCacheConfig{
		Enabled:   true,
		TTL:       time.Hour,
		KeyPrefix: "test:ask:",
	})
	ctx := context.Background()

	mr.SetError("connection refused")

	resp := model.NewAgentResponse(model.IntentPolicy)
	resp.Answer = "answer"
	cache.Set(ctx, "q", resp)

	mr.SetError("")
	assert.Nil(t, cache.Get(ctx, "q"))
}
